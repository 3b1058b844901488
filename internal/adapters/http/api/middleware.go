package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/scout/pkg/metrics"
)

// MetricsMiddleware records request count, latency and error class for one
// route. endpoint is the metrics label, not the URL, so path values such as
// player names never become label values.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		status := strconv.Itoa(rec.status)

		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, durationMs)

		if rec.status >= http.StatusBadRequest {
			metrics.RecordErrorByComponent("http_"+endpoint, errorClass(rec.status))
		}
	}
}

// errorClass maps an error status onto the error codes the API writes.
func errorClass(status int) string {
	switch {
	case status == http.StatusServiceUnavailable:
		return codeUnavailable
	case status >= http.StatusInternalServerError:
		return codeInternal
	case status == http.StatusNotFound:
		return codeNotFound
	case status == http.StatusConflict:
		return codeConflict
	case status == http.StatusBadRequest:
		return codeBadRequest
	default:
		return "client_error"
	}
}

// statusRecorder remembers the first status written.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

package api

import (
	"net/http"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a stats handler; a nil provider answers 503.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats writes the provider's stats map as JSON.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	if h.statsProvider == nil {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, NewKind("stats", ErrUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

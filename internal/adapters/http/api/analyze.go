package api

import (
	"net/http"

	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/scoring"
)

// AnalyzeDependencies defines the ad-hoc analysis operation.
type AnalyzeDependencies interface {
	Analyze(s *attributes.Snapshot) scoring.Analysis
}

// AnalyzeHandler scores a snapshot that is not on the roster.
type AnalyzeHandler struct {
	deps AnalyzeDependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps AnalyzeDependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandleAnalyze handles POST /analyze requests with a snapshot body.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	var s attributes.Snapshot
	if err := decodeJSON(w, r, &s); err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Analyze(&s))
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/scout/internal/app"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RoleDependencies
	PlayerDependencies
	AnalyzeDependencies
	RankingDependencies
	SquadDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	rolesHandler   *RolesHandler
	playersHandler *PlayersHandler
	analyzeHandler *AnalyzeHandler
	rankingHandler *RankingHandler
	squadHandler   *SquadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		rolesHandler:   NewRolesHandler(deps),
		playersHandler: NewPlayersHandler(deps),
		analyzeHandler: NewAnalyzeHandler(deps),
		rankingHandler: NewRankingHandler(deps),
		squadHandler:   NewSquadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /roles", MetricsMiddleware(s.rolesHandler.HandleList, "roles"))
	mux.HandleFunc("PUT /roles", MetricsMiddleware(s.rolesHandler.HandleSave, "roles"))
	mux.HandleFunc("POST /roles/reset", MetricsMiddleware(s.rolesHandler.HandleReset, "roles_reset"))
	mux.HandleFunc("POST /roles/reload", MetricsMiddleware(s.rolesHandler.HandleReload, "roles_reload"))
	mux.HandleFunc("GET /attributes", MetricsMiddleware(s.rolesHandler.HandleAttributes, "attributes"))

	mux.HandleFunc("GET /players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
	mux.HandleFunc("GET /players/{name}", MetricsMiddleware(s.playersHandler.HandleGet, "player"))
	mux.HandleFunc("PUT /players/{name}", MetricsMiddleware(s.playersHandler.HandleUpsert, "player"))
	mux.HandleFunc("DELETE /players/{name}", MetricsMiddleware(s.playersHandler.HandleDelete, "player"))
	mux.HandleFunc("GET /players/{name}/report", MetricsMiddleware(s.playersHandler.HandleReport, "player_report"))

	mux.HandleFunc("GET /tags", MetricsMiddleware(s.squadHandler.HandleListTags, "tags"))
	mux.HandleFunc("POST /tags", MetricsMiddleware(s.squadHandler.HandleSaveTag, "tags"))
	mux.HandleFunc("DELETE /tags/{id}", MetricsMiddleware(s.squadHandler.HandleDeleteTag, "tag"))

	mux.HandleFunc("GET /positions", MetricsMiddleware(s.squadHandler.HandleListPositions, "positions"))
	mux.HandleFunc("POST /positions", MetricsMiddleware(s.squadHandler.HandleSavePosition, "positions"))
	mux.HandleFunc("GET /positions/{id}", MetricsMiddleware(s.squadHandler.HandleGetPosition, "position"))
	mux.HandleFunc("DELETE /positions/{id}", MetricsMiddleware(s.squadHandler.HandleDeletePosition, "position"))

	mux.HandleFunc("GET /tactics", MetricsMiddleware(s.squadHandler.HandleListTactics, "tactics"))
	mux.HandleFunc("POST /tactics", MetricsMiddleware(s.squadHandler.HandleSaveTactic, "tactics"))
	mux.HandleFunc("GET /tactics/{id}", MetricsMiddleware(s.squadHandler.HandleGetTactic, "tactic"))
	mux.HandleFunc("DELETE /tactics/{id}", MetricsMiddleware(s.squadHandler.HandleDeleteTactic, "tactic"))

	mux.HandleFunc("POST /analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("GET /rankings/{roleID}", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "rankings"))
}

// Error codes written in the JSON error body.
const (
	codeBadRequest  = "bad_request"
	codeNotFound    = "not_found"
	codeConflict    = "conflict"
	codeUnavailable = "unavailable"
	codeInternal    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service and API error kinds to a status.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, ErrNotFound), errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, WrapKind(op, ErrNotFound, err))
	case errors.Is(err, ErrConflict), errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, WrapKind(op, ErrConflict, err))
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, service.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, WrapKind(op, ErrInternal, err))
	}
}

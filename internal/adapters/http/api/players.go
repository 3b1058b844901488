package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/types"
)

// PlayerDependencies defines the roster operations.
type PlayerDependencies interface {
	Players(ctx context.Context) ([]model.Player, error)
	Player(ctx context.Context, name string) (model.Player, error)
	UpsertPlayer(ctx context.Context, p model.Player) error
	DeletePlayer(ctx context.Context, name string) error
	PlayerReport(ctx context.Context, name, phase string) (types.Report, error)
	TacticReport(ctx context.Context, name, phase, tacticID string) (types.Report, error)
}

// PlayersHandler handles roster requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleList handles GET /players requests.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	players, err := h.deps.Players(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleGet handles GET /players/{name} requests.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	name, err := pathParam(r, "name")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	p, err := h.deps.Player(r.Context(), name)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUpsert handles PUT /players/{name} requests. The path name wins
// over any name in the body.
func (h *PlayersHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	const op = "api.upsert_player"
	name, err := pathParam(r, "name")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	var p model.Player
	if err := decodeJSON(w, r, &p); err != nil {
		writeServiceError(w, op, err)
		return
	}
	p.Name = name
	if err := h.deps.UpsertPlayer(r.Context(), p); err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /players/{name} requests.
func (h *PlayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_player"
	name, err := pathParam(r, "name")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if err := h.deps.DeletePlayer(r.Context(), name); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReport handles GET /players/{name}/report?phase=&tactic= requests.
// A tactic narrows the matrix to that tactic's roles.
func (h *PlayersHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_report"
	name, err := pathParam(r, "name")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	q := r.URL.Query()
	var report types.Report
	if tactic := strings.TrimSpace(q.Get("tactic")); tactic != "" {
		report, err = h.deps.TacticReport(r.Context(), name, q.Get("phase"), tactic)
	} else {
		report, err = h.deps.PlayerReport(r.Context(), name, q.Get("phase"))
	}
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

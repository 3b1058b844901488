package api

import (
	"context"
	"net/http"

	"github.com/okian/scout/internal/domain/model"
)

// SquadDependencies defines the tag, position and tactic operations.
type SquadDependencies interface {
	Tags(ctx context.Context) ([]model.Tag, error)
	SaveTag(ctx context.Context, t model.Tag) (model.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	Positions(ctx context.Context) ([]model.Position, error)
	Position(ctx context.Context, id string) (model.Position, error)
	SavePosition(ctx context.Context, p model.Position) (model.Position, error)
	DeletePosition(ctx context.Context, id string) error

	Tactics(ctx context.Context) ([]model.Tactic, error)
	Tactic(ctx context.Context, id string) (model.Tactic, error)
	SaveTactic(ctx context.Context, t model.Tactic) (model.Tactic, error)
	DeleteTactic(ctx context.Context, id string) error
}

// SquadHandler handles tag, position and tactic requests. Saves are
// upserts keyed by the body's id; a blank id creates a new record.
type SquadHandler struct {
	deps SquadDependencies
}

// NewSquadHandler creates a new squad handler.
func NewSquadHandler(deps SquadDependencies) *SquadHandler {
	return &SquadHandler{deps: deps}
}

func list[T any](w http.ResponseWriter, op string, items []T, err error) {
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func save[T any](w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, T) (T, error)) {
	var in T
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, op, err)
		return
	}
	out, err := fn(r.Context(), in)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func get[T any](w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, string) (T, error)) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	out, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func remove(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, string) error) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListTags handles GET /tags requests.
func (h *SquadHandler) HandleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.deps.Tags(r.Context())
	list(w, "api.list_tags", tags, err)
}

// HandleSaveTag handles POST /tags requests.
func (h *SquadHandler) HandleSaveTag(w http.ResponseWriter, r *http.Request) {
	save(w, r, "api.save_tag", h.deps.SaveTag)
}

// HandleDeleteTag handles DELETE /tags/{id} requests. A tag still carried
// by a player is a conflict.
func (h *SquadHandler) HandleDeleteTag(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "api.delete_tag", h.deps.DeleteTag)
}

// HandleListPositions handles GET /positions requests.
func (h *SquadHandler) HandleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.deps.Positions(r.Context())
	list(w, "api.list_positions", positions, err)
}

// HandleGetPosition handles GET /positions/{id} requests.
func (h *SquadHandler) HandleGetPosition(w http.ResponseWriter, r *http.Request) {
	get(w, r, "api.get_position", h.deps.Position)
}

// HandleSavePosition handles POST /positions requests.
func (h *SquadHandler) HandleSavePosition(w http.ResponseWriter, r *http.Request) {
	save(w, r, "api.save_position", h.deps.SavePosition)
}

// HandleDeletePosition handles DELETE /positions/{id} requests.
func (h *SquadHandler) HandleDeletePosition(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "api.delete_position", h.deps.DeletePosition)
}

// HandleListTactics handles GET /tactics requests.
func (h *SquadHandler) HandleListTactics(w http.ResponseWriter, r *http.Request) {
	tactics, err := h.deps.Tactics(r.Context())
	list(w, "api.list_tactics", tactics, err)
}

// HandleGetTactic handles GET /tactics/{id} requests.
func (h *SquadHandler) HandleGetTactic(w http.ResponseWriter, r *http.Request) {
	get(w, r, "api.get_tactic", h.deps.Tactic)
}

// HandleSaveTactic handles POST /tactics requests.
func (h *SquadHandler) HandleSaveTactic(w http.ResponseWriter, r *http.Request) {
	save(w, r, "api.save_tactic", h.deps.SaveTactic)
}

// HandleDeleteTactic handles DELETE /tactics/{id} requests.
func (h *SquadHandler) HandleDeleteTactic(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "api.delete_tactic", h.deps.DeleteTactic)
}

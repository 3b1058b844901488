package api

import (
	"context"
	"net/http"

	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/domain/roles"
)

// RoleDependencies defines the role catalog operations.
type RoleDependencies interface {
	Roles(phase string) ([]roles.Definition, error)
	SaveRoles(ctx context.Context, defs []roles.Definition) ([]roles.Warning, error)
	ResetRoles(ctx context.Context) ([]roles.Definition, error)
	ReloadRoles(ctx context.Context, source string) error
	AttributeNames() []string
}

type saveRolesResponse struct {
	Roles    []roles.Definition `json:"roles"`
	Warnings []roles.Warning    `json:"warnings"`
}

// RolesHandler handles role catalog requests.
type RolesHandler struct {
	deps RoleDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RoleDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

// HandleList handles GET /roles?phase= requests.
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_roles"
	defs, err := h.deps.Roles(r.URL.Query().Get("phase"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

// HandleSave handles PUT /roles requests. The body replaces the whole set.
func (h *RolesHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_roles"
	var defs []roles.Definition
	if err := decodeJSON(w, r, &defs); err != nil {
		writeServiceError(w, op, err)
		return
	}
	if defs == nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, NewKind(op, ErrBadRequest))
		return
	}
	warnings, err := h.deps.SaveRoles(r.Context(), defs)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if warnings == nil {
		warnings = []roles.Warning{}
	}
	saved, err := h.deps.Roles("")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, saveRolesResponse{Roles: saved, Warnings: warnings})
}

// HandleReset handles POST /roles/reset requests.
func (h *RolesHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_roles"
	defs, err := h.deps.ResetRoles(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

// HandleReload handles POST /roles/reload requests.
func (h *RolesHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload_roles"
	if err := h.deps.ReloadRoles(r.Context(), service.SourceAPI); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAttributes handles GET /attributes requests.
func (h *RolesHandler) HandleAttributes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.AttributeNames())
}

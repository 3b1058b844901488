package api

import (
	"context"
	"net/http"

	"github.com/okian/scout/internal/domain/types"
)

// RankingDependencies defines the interface for ranking operations.
type RankingDependencies interface {
	RoleRanking(ctx context.Context, roleID string) (types.Ranking, error)
}

// RankingHandler handles ranking requests.
type RankingHandler struct {
	deps RankingDependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleGetRanking handles GET /rankings/{roleID} requests.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.role_ranking"
	roleID, err := pathParam(r, "roleID")
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	ranking, err := h.deps.RoleRanking(r.Context(), roleID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

package api

import (
	"context"
	"net/http"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// OwnerDependencies defines the per-owner queries. Owners may be named by id
// or display name.
type OwnerDependencies interface {
	Owners(ctx context.Context) []types.OwnerRow
	Trend(ctx context.Context, owner string) ([]types.TrendPoint, error)
	Streaks(ctx context.Context, owner string, scope types.Scope) (types.StreakRow, error)
}

// OwnerHandler handles owner requests.
type OwnerHandler struct {
	deps   OwnerDependencies
	logger logger.Logger
}

// NewOwnerHandler creates a new owner handler.
func NewOwnerHandler(deps OwnerDependencies, log logger.Logger) *OwnerHandler {
	return &OwnerHandler{deps: deps, logger: log}
}

// HandleOwners handles GET /owners.
func (h *OwnerHandler) HandleOwners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Owners(r.Context()))
}

// HandleTrend handles GET /trend/{owner}.
func (h *OwnerHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.deps.Trend(r.Context(), r.PathValue("owner"))
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleStreaks handles GET /streaks/{owner}.
func (h *OwnerHandler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	row, err := h.deps.Streaks(r.Context(), r.PathValue("owner"), scope)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

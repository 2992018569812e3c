package api

import (
	"context"
	"net/http"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// RivalryDependencies defines the pairwise queries.
type RivalryDependencies interface {
	HeadToHead(ctx context.Context, a, b string, scope types.Scope) (types.HeadToHeadRow, error)
	Rivalry(ctx context.Context, a, b string, scope types.Scope) (types.RivalryRow, error)
	Rivalries(ctx context.Context, minGames int, scope types.Scope) []types.RivalryRow
	Matrix(ctx context.Context, scope types.Scope) ([]types.HeadToHeadRow, error)
}

// RivalryHandler handles head-to-head and rivalry requests.
type RivalryHandler struct {
	deps   RivalryDependencies
	logger logger.Logger
}

// NewRivalryHandler creates a new rivalry handler.
func NewRivalryHandler(deps RivalryDependencies, log logger.Logger) *RivalryHandler {
	return &RivalryHandler{deps: deps, logger: log}
}

// pairParams reads the a and b owners plus the scope.
func pairParams(r *http.Request) (a, b string, scope types.Scope, err error) {
	if a, err = stringParam(r, "a"); err != nil {
		return
	}
	if b, err = stringParam(r, "b"); err != nil {
		return
	}
	scope, err = scopeParams(r)
	return
}

// HandleHeadToHead handles GET /h2h?a=&b=.
func (h *RivalryHandler) HandleHeadToHead(w http.ResponseWriter, r *http.Request) {
	a, b, scope, err := pairParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	row, err := h.deps.HeadToHead(r.Context(), a, b, scope)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// HandleRivalry handles GET /rivalry?a=&b=.
func (h *RivalryHandler) HandleRivalry(w http.ResponseWriter, r *http.Request) {
	a, b, scope, err := pairParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	row, err := h.deps.Rivalry(r.Context(), a, b, scope)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// HandleRivalries handles GET /rivalries?min_games=.
func (h *RivalryHandler) HandleRivalries(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	minGames, err := intParam(r, "min_games")
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	rows := h.deps.Rivalries(r.Context(), minGames, scope)
	if rows == nil {
		rows = []types.RivalryRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleMatrix handles GET /matrix.
func (h *RivalryHandler) HandleMatrix(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	rows, err := h.deps.Matrix(r.Context(), scope)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

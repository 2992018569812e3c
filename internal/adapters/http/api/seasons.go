package api

import (
	"context"
	"net/http"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// SeasonDependencies defines the season-level queries.
type SeasonDependencies interface {
	Championships(ctx context.Context) []types.ChampionshipRow
	Playoffs(ctx context.Context, scope types.Scope) []types.PlayoffRow
	Parity(ctx context.Context, scope types.Scope) []types.ParityRow
	BadBeats(ctx context.Context, scope types.Scope) []types.BadBeatRow
	Kryptonite(ctx context.Context, scope types.Scope) []types.KryptoniteRow
}

// SeasonHandler handles championship, playoff and parity requests.
type SeasonHandler struct {
	deps   SeasonDependencies
	logger logger.Logger
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(deps SeasonDependencies, log logger.Logger) *SeasonHandler {
	return &SeasonHandler{deps: deps, logger: log}
}

// HandleChampionships handles GET /championships.
func (h *SeasonHandler) HandleChampionships(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Championships(r.Context()))
}

// HandlePlayoffs handles GET /playoffs.
func (h *SeasonHandler) HandlePlayoffs(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Playoffs(r.Context(), scope))
}

// HandleParity handles GET /parity.
func (h *SeasonHandler) HandleParity(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Parity(r.Context(), scope))
}

// HandleBadBeats handles GET /bad-beats.
func (h *SeasonHandler) HandleBadBeats(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	rows := h.deps.BadBeats(r.Context(), scope)
	if rows == nil {
		rows = []types.BadBeatRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleKryptonite handles GET /kryptonite.
func (h *SeasonHandler) HandleKryptonite(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	rows := h.deps.Kryptonite(r.Context(), scope)
	if rows == nil {
		rows = []types.KryptoniteRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

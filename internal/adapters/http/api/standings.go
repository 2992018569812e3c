package api

import (
	"context"
	"net/http"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// StandingsDependencies defines the league-wide ranking queries.
type StandingsDependencies interface {
	Standings(ctx context.Context, scope types.Scope) []types.StandingsRow
	Leaders(ctx context.Context, season int, scope types.Scope) []types.PointsLeaderRow
	Summary(ctx context.Context, scope types.Scope) types.SummaryRow
}

// StandingsHandler handles standings, points leaders and summary requests.
type StandingsHandler struct {
	deps   StandingsDependencies
	logger logger.Logger
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies, log logger.Logger) *StandingsHandler {
	return &StandingsHandler{deps: deps, logger: log}
}

// HandleStandings handles GET /standings[?from=&to=&regular=].
func (h *StandingsHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Standings(r.Context(), scope))
}

// HandleLeaders handles GET /leaders[?season=]. Without a season every
// season in scope counts.
func (h *StandingsHandler) HandleLeaders(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	season, err := intParam(r, "season")
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Leaders(r.Context(), season, scope))
}

// HandleSummary handles GET /summary.
func (h *StandingsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParams(r)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Summary(r.Context(), scope))
}

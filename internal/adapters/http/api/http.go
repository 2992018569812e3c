// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/billyessing/nfl-fantasy/internal/app"
	"github.com/billyessing/nfl-fantasy/internal/domain/analytics"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the league implementation.
type Dependencies interface {
	StandingsDependencies
	RivalryDependencies
	OwnerDependencies
	SeasonDependencies
	StatsProvider
}

// Server wires HTTP routes for the league history API.
type Server struct {
	logger           logger.Logger
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	standingsHandler *StandingsHandler
	rivalryHandler   *RivalryHandler
	ownerHandler     *OwnerHandler
	seasonHandler    *SeasonHandler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.standingsHandler = NewStandingsHandler(deps, s.logger)
	s.rivalryHandler = NewRivalryHandler(deps, s.logger)
	s.ownerHandler = NewOwnerHandler(deps, s.logger)
	s.seasonHandler = NewSeasonHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /owners", MetricsMiddleware(s.ownerHandler.HandleOwners, "owners"))
	mux.HandleFunc("GET /trend/{owner}", MetricsMiddleware(s.ownerHandler.HandleTrend, "trend"))
	mux.HandleFunc("GET /streaks/{owner}", MetricsMiddleware(s.ownerHandler.HandleStreaks, "streaks"))

	mux.HandleFunc("GET /standings", MetricsMiddleware(s.standingsHandler.HandleStandings, "standings"))
	mux.HandleFunc("GET /leaders", MetricsMiddleware(s.standingsHandler.HandleLeaders, "leaders"))
	mux.HandleFunc("GET /summary", MetricsMiddleware(s.standingsHandler.HandleSummary, "summary"))

	mux.HandleFunc("GET /h2h", MetricsMiddleware(s.rivalryHandler.HandleHeadToHead, "h2h"))
	mux.HandleFunc("GET /rivalry", MetricsMiddleware(s.rivalryHandler.HandleRivalry, "rivalry"))
	mux.HandleFunc("GET /rivalries", MetricsMiddleware(s.rivalryHandler.HandleRivalries, "rivalries"))
	mux.HandleFunc("GET /matrix", MetricsMiddleware(s.rivalryHandler.HandleMatrix, "matrix"))

	mux.HandleFunc("GET /championships", MetricsMiddleware(s.seasonHandler.HandleChampionships, "championships"))
	mux.HandleFunc("GET /playoffs", MetricsMiddleware(s.seasonHandler.HandlePlayoffs, "playoffs"))
	mux.HandleFunc("GET /parity", MetricsMiddleware(s.seasonHandler.HandleParity, "parity"))
	mux.HandleFunc("GET /bad-beats", MetricsMiddleware(s.seasonHandler.HandleBadBeats, "bad_beats"))
	mux.HandleFunc("GET /kryptonite", MetricsMiddleware(s.seasonHandler.HandleKryptonite, "kryptonite"))
}

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

// writeFailure maps a league error to its HTTP status.
func writeFailure(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrUnknownOwner):
		writeError(w, http.StatusNotFound, "unknown_owner", err)
	case errors.Is(err, analytics.ErrNoHistory):
		writeError(w, http.StatusNotFound, "no_history", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "canceled", err)
	default:
		log.Error(ctx, "request failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

package service

import (
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// Option applies a configuration option to a League build.
type Option func(*League)

// WithLogger sets a custom logger for the build and the league.
func WithLogger(l logger.Logger) Option {
	return func(lg *League) {
		if l != nil {
			lg.logger = l
		}
	}
}

// WithWorkerCount bounds the head-to-head matrix fan-out.
func WithWorkerCount(count int) Option {
	return func(lg *League) {
		if count > 0 {
			lg.workerCount = count
		}
	}
}

// WithAudit toggles the season record vs schedule audit.
func WithAudit(enabled bool) Option {
	return func(lg *League) {
		lg.audit = enabled
	}
}

// WithRivalryMinGames sets the default game threshold of the rivalries table.
func WithRivalryMinGames(n int) Option {
	return func(lg *League) {
		if n > 0 {
			lg.rivalryMinGames = n
		}
	}
}

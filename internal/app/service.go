// Package service builds the reconciled league history and implements the
// dependencies required by the HTTP API and the exporters.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/billyessing/nfl-fantasy/internal/adapters/repository"
	"github.com/billyessing/nfl-fantasy/internal/domain/analytics"
	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/reconcile"
	"github.com/billyessing/nfl-fantasy/internal/domain/registry"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
	"github.com/billyessing/nfl-fantasy/pkg/metrics"
)

// Build stages, used as log and metric labels.
const (
	StageRegistry  = "registry"
	StageStores    = "stores"
	StageAudit     = "audit"
	StageReconcile = "reconcile"
	StageAnalytics = "analytics"
)

// ErrUnknownOwner is returned for queries naming an owner the registry lacks.
var ErrUnknownOwner = errors.New("unknown owner")

// Input is the fully materialized scraped data plus the curated mapping.
type Input struct {
	Mapping       []model.MappingRow
	SeasonRecords []model.SeasonRecord
	Matchups      []model.Matchup
}

// League is an immutable, reconciled league history. Safe for concurrent use.
type League struct {
	logger          logger.Logger
	workerCount     int
	audit           bool
	rivalryMinGames int

	registry *registry.Registry
	seasons  *repository.SeasonStore
	matchups *repository.MatchupStore
	gameLog  []model.GameLogEntry
	engine   *analytics.Engine

	builtAt       time.Time
	buildDuration time.Duration
}

// Build runs registry -> stores -> audit -> reconcile -> analytics. Any
// fatal error aborts the build; nothing is partially reconciled.
func Build(ctx context.Context, in Input, opts ...Option) (*League, error) {
	l := &League{
		logger:          logger.Nop(),
		workerCount:     runtime.NumCPU(),
		audit:           true,
		rivalryMinGames: 3,
	}
	for _, opt := range opts {
		opt(l)
	}
	start := time.Now()
	l.logger.Info(ctx, "building league history",
		logger.Int("mapping_rows", len(in.Mapping)),
		logger.Int("season_records", len(in.SeasonRecords)),
		logger.Int("matchups", len(in.Matchups)),
	)

	err := l.stage(ctx, StageRegistry, func() error {
		reg, err := registry.FromMapping(in.Mapping)
		if err != nil {
			return err
		}
		l.registry = reg
		metrics.RecordRowsLoaded("mapping", len(in.Mapping))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = l.stage(ctx, StageStores, func() error {
		storeLog := repository.WithLogger(l.logger.Named("repository"))
		l.seasons = repository.NewSeasonStore(storeLog)
		if err := l.seasons.InsertAll(in.SeasonRecords); err != nil {
			return err
		}
		l.matchups = repository.NewMatchupStore(storeLog)
		if err := l.matchups.InsertAll(in.Matchups); err != nil {
			return err
		}
		metrics.RecordRowsLoaded("season_records", l.seasons.Len())
		metrics.RecordRowsLoaded("matchups", l.matchups.Len())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if l.audit {
		if err := l.stage(ctx, StageAudit, func() error {
			return repository.Audit(l.seasons, l.matchups)
		}); err != nil {
			return nil, err
		}
	}

	var ownerSeasons []model.OwnerSeason
	err = l.stage(ctx, StageReconcile, func() error {
		recLog := reconcile.WithLogger(l.logger.Named("reconcile"))
		gameLog, err := reconcile.BuildGameLog(l.matchups, l.registry, recLog)
		if err != nil {
			return err
		}
		ownerSeasons, err = reconcile.ResolveSeasons(l.seasons, l.registry, recLog)
		if err != nil {
			return err
		}
		l.gameLog = gameLog
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = l.stage(ctx, StageAnalytics, func() error {
		l.engine = analytics.New(l.logger.Named("analytics"), l.gameLog, ownerSeasons, l.registry.Owners(),
			analytics.WithWorkers(l.workerCount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.builtAt = time.Now()
	l.buildDuration = time.Since(start)
	metrics.SetLeagueSize(l.registry.Len(), len(l.Seasons()), len(l.gameLog))
	l.logger.Info(ctx, "league history built",
		logger.Int("owners", l.registry.Len()),
		logger.Int("game_log_entries", len(l.gameLog)),
		logger.Any("duration", l.buildDuration),
	)
	return l, nil
}

// stage runs fn, timing it and reporting a failure with its stage label.
func (l *League) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	metrics.ObserveBuildStage(name, time.Since(start))
	if err != nil {
		metrics.RecordBuildFailure(name)
		l.logger.Error(ctx, "league build failed", logger.String("stage", name), logger.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	l.logger.Debug(ctx, "build stage done", logger.String("stage", name), logger.Any("elapsed", time.Since(start)))
	return nil
}

// Registry returns the owner registry.
func (l *League) Registry() *registry.Registry { return l.registry }

// Engine returns the analytics engine over the full history.
func (l *League) Engine() *analytics.Engine { return l.engine }

// Seasons returns every season present in the records or the game log.
func (l *League) Seasons() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, list := range [][]int{l.seasons.Seasons(), l.matchups.Seasons()} {
		for _, s := range list {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	slices.Sort(out)
	return out
}

// GetStats returns build statistics for monitoring.
func (l *League) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"owners":            l.registry.Len(),
		"seasons":           len(l.Seasons()),
		"season_records":    l.seasons.Len(),
		"matchups":          l.matchups.Len(),
		"game_log_entries":  len(l.gameLog),
		"worker_count":      l.workerCount,
		"audit":             l.audit,
		"rivalry_min_games": l.rivalryMinGames,
		"built_at":          l.builtAt.UTC().Format(time.RFC3339),
		"build_duration_ms": l.buildDuration.Milliseconds(),
	}
}

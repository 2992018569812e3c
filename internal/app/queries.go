package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/billyessing/nfl-fantasy/internal/domain/analytics"
	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
	"github.com/billyessing/nfl-fantasy/pkg/metrics"
)

// engineFor narrows the full-history engine to scope.
func (l *League) engineFor(scope types.Scope) *analytics.Engine {
	e := l.engine
	if scope.From != 0 || scope.To != 0 {
		to := scope.To
		if to == 0 {
			to = math.MaxInt
		}
		e = e.Era(scope.From, to)
	}
	if scope.RegularSeason {
		e = e.RegularSeason()
	}
	return e
}

func observe(op string, start time.Time) {
	metrics.ObserveAnalytics(op, time.Since(start))
}

// ResolveOwner accepts an owner id or display name.
func (l *League) ResolveOwner(name string) (model.OwnerID, error) {
	if o, ok := l.registry.Owner(model.OwnerID(name)); ok {
		return o.ID, nil
	}
	if o, ok := l.registry.Lookup(name); ok {
		return o.ID, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOwner, name)
}

// Owners lists every owner with their team names.
func (l *League) Owners(_ context.Context) []types.OwnerRow {
	owners := l.registry.Owners()
	out := make([]types.OwnerRow, len(owners))
	for i, o := range owners {
		out[i] = types.NewOwnerRow(o)
	}
	return out
}

// Standings returns the overall standings within scope.
func (l *League) Standings(_ context.Context, scope types.Scope) []types.StandingsRow {
	defer observe("standings", time.Now())
	return l.engineFor(scope).OverallStandings()
}

// HeadToHead returns a's record against b within scope.
func (l *League) HeadToHead(ctx context.Context, a, b string, scope types.Scope) (types.HeadToHeadRow, error) {
	defer observe("head_to_head", time.Now())
	idA, idB, err := l.resolvePair(a, b)
	if err != nil {
		return types.HeadToHeadRow{}, err
	}
	h, err := l.engineFor(scope).HeadToHead(idA, idB)
	if err != nil {
		if errors.Is(err, analytics.ErrNoHistory) {
			metrics.RecordNoHistory()
		}
		l.logger.Debug(ctx, "no head-to-head history", logger.String("owner_a", string(idA)), logger.String("owner_b", string(idB)))
		return types.HeadToHeadRow{}, err
	}
	return types.NewHeadToHeadRow(h), nil
}

// Rivalry returns the rivalry row for a and b within scope.
func (l *League) Rivalry(_ context.Context, a, b string, scope types.Scope) (types.RivalryRow, error) {
	defer observe("rivalry", time.Now())
	idA, idB, err := l.resolvePair(a, b)
	if err != nil {
		return types.RivalryRow{}, err
	}
	row, err := l.engineFor(scope).Rivalry(idA, idB)
	if errors.Is(err, analytics.ErrNoHistory) {
		metrics.RecordNoHistory()
	}
	return row, err
}

func (l *League) resolvePair(a, b string) (model.OwnerID, model.OwnerID, error) {
	idA, err := l.ResolveOwner(a)
	if err != nil {
		return "", "", err
	}
	idB, err := l.ResolveOwner(b)
	if err != nil {
		return "", "", err
	}
	return idA, idB, nil
}

// Rivalries lists pairs with at least minGames games; zero uses the
// configured default.
func (l *League) Rivalries(_ context.Context, minGames int, scope types.Scope) []types.RivalryRow {
	defer observe("rivalries", time.Now())
	if minGames <= 0 {
		minGames = l.rivalryMinGames
	}
	return l.engineFor(scope).Rivalries(minGames)
}

// Matrix returns the head-to-head matrix within scope.
func (l *League) Matrix(ctx context.Context, scope types.Scope) ([]types.HeadToHeadRow, error) {
	defer observe("matrix", time.Now())
	records, err := l.engineFor(scope).HeadToHeadMatrix(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.HeadToHeadRow, len(records))
	for i, h := range records {
		out[i] = types.NewHeadToHeadRow(h)
	}
	return out, nil
}

// Trend returns the owner's season-by-season points.
func (l *League) Trend(_ context.Context, owner string) ([]types.TrendPoint, error) {
	defer observe("points_trend", time.Now())
	id, err := l.ResolveOwner(owner)
	if err != nil {
		return nil, err
	}
	out := []types.TrendPoint{}
	for p := range l.engine.PointsTrend(id) {
		out = append(out, p)
	}
	return out, nil
}

// Leaders ranks owners by points; season 0 means all seasons.
func (l *League) Leaders(_ context.Context, season int, scope types.Scope) []types.PointsLeaderRow {
	defer observe("points_leaders", time.Now())
	return l.engineFor(scope).PointsLeaders(season)
}

// Championships lists champions by season.
func (l *League) Championships(_ context.Context) []types.ChampionshipRow {
	defer observe("championships", time.Now())
	return l.engine.Championships()
}

// Playoffs summarizes playoff performance.
func (l *League) Playoffs(_ context.Context, scope types.Scope) []types.PlayoffRow {
	defer observe("playoffs", time.Now())
	return l.engineFor(scope).PlayoffPerformance()
}

// Parity returns per-season competitive balance.
func (l *League) Parity(_ context.Context, scope types.Scope) []types.ParityRow {
	defer observe("parity", time.Now())
	return l.engineFor(scope).Parity()
}

// BadBeats lists high-scoring losses within scope.
func (l *League) BadBeats(_ context.Context, scope types.Scope) []types.BadBeatRow {
	defer observe("bad_beats", time.Now())
	return l.engineFor(scope).BadBeats(analytics.BadBeatMargin)
}

// Kryptonite lists lopsided series within scope.
func (l *League) Kryptonite(_ context.Context, scope types.Scope) []types.KryptoniteRow {
	defer observe("kryptonite", time.Now())
	return l.engineFor(scope).Kryptonite(analytics.KryptoniteMinGames, analytics.KryptoniteMinWinPct)
}

// Streaks returns the owner's streaks within scope.
func (l *League) Streaks(_ context.Context, owner string, scope types.Scope) (types.StreakRow, error) {
	defer observe("streaks", time.Now())
	id, err := l.ResolveOwner(owner)
	if err != nil {
		return types.StreakRow{}, err
	}
	return l.engineFor(scope).Streaks(id), nil
}

// Summary returns league-wide totals.
func (l *League) Summary(_ context.Context, scope types.Scope) types.SummaryRow {
	defer observe("summary", time.Now())
	return l.engineFor(scope).Summary()
}

// Tables computes every result table for the exporters.
func (l *League) Tables(ctx context.Context) (types.Tables, error) {
	defer observe("tables", time.Now())
	matrix, err := l.Matrix(ctx, types.Scope{})
	if err != nil {
		return types.Tables{}, err
	}

	var trends []types.OwnerTrendRow
	for _, o := range l.registry.Owners() {
		for p := range l.engine.PointsTrend(o.ID) {
			trends = append(trends, types.OwnerTrendRow{OwnerID: o.ID, TrendPoint: p})
		}
	}
	slices.SortStableFunc(trends, func(a, b types.OwnerTrendRow) int { return a.Season - b.Season })

	return types.Tables{
		Owners:        l.Owners(ctx),
		GameLog:       l.engine.Games(),
		Standings:     l.engine.OverallStandings(),
		HeadToHead:    matrix,
		Rivalries:     l.engine.Rivalries(l.rivalryMinGames),
		Trends:        trends,
		PointsLeaders: l.engine.PointsLeaders(0),
		Championships: l.engine.Championships(),
		Playoffs:      l.engine.PlayoffPerformance(),
		Parity:        l.engine.Parity(),
		BadBeats:      l.engine.BadBeats(analytics.BadBeatMargin),
		Kryptonite:    l.engine.Kryptonite(analytics.KryptoniteMinGames, analytics.KryptoniteMinWinPct),
		Summary:       l.engine.Summary(),
	}, nil
}

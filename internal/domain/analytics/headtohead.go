package analytics

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// HeadToHead aggregates every game between a and b, seen from a's side.
// Each game counts once whatever its home/away order.
func (e *Engine) HeadToHead(a, b model.OwnerID) (model.HeadToHeadRecord, error) {
	h := e.headToHead(a, b)
	if h.Games == 0 {
		return h, &NoHistoryError{OwnerA: a, OwnerB: b}
	}
	return h, nil
}

func (e *Engine) headToHead(a, b model.OwnerID) model.HeadToHeadRecord {
	h := model.NewHeadToHead(a, b)
	if a == b {
		return h
	}
	for _, i := range e.byPair[pairOf(a, b)] {
		h.Add(e.games[i])
	}
	return h
}

// RivalryScore is 1 - |winsA - winsB| / games: 1 for an even series, 0 for
// a one-sided one. It is symmetric in a and b.
func (e *Engine) RivalryScore(a, b model.OwnerID) (float64, error) {
	h, err := e.HeadToHead(a, b)
	if err != nil {
		return 0, err
	}
	return rivalryScore(h), nil
}

func rivalryScore(h model.HeadToHeadRecord) float64 {
	return 1 - math.Abs(float64(h.WinsA-h.WinsB))/float64(h.Games)
}

// HeadToHeadMatrix returns both orientations of every pair that has played,
// ordered by OwnerA then OwnerB. Pairs are aggregated concurrently with at
// most the configured number of workers.
func (e *Engine) HeadToHeadMatrix(ctx context.Context) ([]model.HeadToHeadRecord, error) {
	start := time.Now()
	records := make([]model.HeadToHeadRecord, len(e.pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, p := range e.pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = e.headToHead(p.lo, p.hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.HeadToHeadRecord, 0, 2*len(records))
	for _, h := range records {
		out = append(out, h, h.Swap())
	}
	slices.SortFunc(out, func(x, y model.HeadToHeadRecord) int {
		if c := cmp.Compare(x.OwnerA, y.OwnerA); c != 0 {
			return c
		}
		return cmp.Compare(x.OwnerB, y.OwnerB)
	})

	e.log.Debug(ctx, "head-to-head matrix computed",
		logger.Int("pairs", len(records)), logger.Int("workers", e.workers), logger.Any("elapsed", time.Since(start)))
	return out, nil
}

// Rivalry summarizes the series between a and b.
func (e *Engine) Rivalry(a, b model.OwnerID) (types.RivalryRow, error) {
	h, err := e.HeadToHead(a, b)
	if err != nil {
		return types.RivalryRow{}, err
	}
	return rivalryRow(h), nil
}

func rivalryRow(h model.HeadToHeadRecord) types.RivalryRow {
	row := types.RivalryRow{
		OwnerA:          h.OwnerA,
		OwnerB:          h.OwnerB,
		Games:           h.Games,
		WinsA:           h.WinsA,
		WinsB:           h.WinsB,
		Ties:            h.Ties,
		Score:           rivalryScore(h),
		AvgDifferential: math.Abs(h.PointsA-h.PointsB) / float64(h.Games),
	}
	switch {
	case h.WinsA > h.WinsB:
		row.Leader = h.OwnerA
	case h.WinsB > h.WinsA:
		row.Leader = h.OwnerB
	}
	return row
}

// Rivalries lists every pair with at least minGames games, most competitive
// first, then by games played.
func (e *Engine) Rivalries(minGames int) []types.RivalryRow {
	var out []types.RivalryRow
	for _, p := range e.pairs {
		h := e.headToHead(p.lo, p.hi)
		if h.Games < minGames || h.Games == 0 {
			continue
		}
		out = append(out, rivalryRow(h))
	}
	slices.SortStableFunc(out, func(x, y types.RivalryRow) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return cmp.Compare(y.Games, x.Games)
	})
	return out
}

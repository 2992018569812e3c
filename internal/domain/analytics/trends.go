package analytics

import (
	"cmp"
	"iter"
	"slices"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
)

// PointsTrend yields owner's points for and against per season, ascending.
// The sequence is restartable: every range over it yields the same points.
func (e *Engine) PointsTrend(owner model.OwnerID) iter.Seq[types.TrendPoint] {
	return func(yield func(types.TrendPoint) bool) {
		for _, s := range e.seasons {
			if s.OwnerID != owner {
				continue
			}
			if !yield(types.TrendPoint{
				Season:        s.Season,
				TeamName:      s.TeamName,
				PointsFor:     s.PointsFor,
				PointsAgainst: s.PointsAgainst,
			}) {
				return
			}
		}
	}
}

// PointsLeaders ranks owners by total game points. Season 0 covers every season.
func (e *Engine) PointsLeaders(season int) []types.PointsLeaderRow {
	rows := make(map[model.OwnerID]*types.PointsLeaderRow)
	for _, g := range e.games {
		if season != 0 && g.Season != season {
			continue
		}
		for _, id := range [2]model.OwnerID{g.HomeOwner, g.AwayOwner} {
			row, ok := rows[id]
			if !ok {
				row = &types.PointsLeaderRow{OwnerID: id, DisplayName: e.displayName(id)}
				rows[id] = row
			}
			pf, _, _, _ := g.Side(id)
			if row.Games == 0 || pf > row.HighestGame {
				row.HighestGame = pf
			}
			row.Games++
			row.TotalPoints += pf
		}
	}

	out := make([]types.PointsLeaderRow, 0, len(rows))
	for _, row := range rows {
		row.AveragePoints = row.TotalPoints / float64(row.Games)
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b types.PointsLeaderRow) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.OwnerID, b.OwnerID)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Streaks returns owner's longest winning and losing runs and the current
// run, in game order. A tie ends any run.
func (e *Engine) Streaks(owner model.OwnerID) types.StreakRow {
	row := types.StreakRow{OwnerID: owner}
	var last model.Result
	run := 0
	for i, g := range e.ownerGames(owner) {
		_, _, result, _ := g.Side(owner)
		if i > 0 && result == last {
			run++
		} else {
			run = 1
		}
		last = result

		switch result {
		case model.Win:
			row.LongestWin = max(row.LongestWin, run)
		case model.Loss:
			row.LongestLoss = max(row.LongestLoss, run)
		}
	}
	if run > 0 {
		row.Current = last.String()
		row.CurrentLength = run
	}
	return row
}

package analytics

import (
	"cmp"
	"slices"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
)

// OverallStandings returns every owner with at least one game, ranked by
// win percentage (ties count half), then points-for, then earliest join
// season, then owner id. The order is total.
func (e *Engine) OverallStandings() []types.StandingsRow {
	rows := make(map[model.OwnerID]*types.StandingsRow)
	for _, g := range e.games {
		for _, id := range [2]model.OwnerID{g.HomeOwner, g.AwayOwner} {
			row, ok := rows[id]
			if !ok {
				row = &types.StandingsRow{OwnerID: id, DisplayName: e.displayName(id), JoinSeason: e.joinSeason(id, g.Season)}
				rows[id] = row
			}
			pf, pa, result, _ := g.Side(id)
			switch result {
			case model.Win:
				row.Wins++
			case model.Loss:
				row.Losses++
			default:
				row.Ties++
			}
			row.Games++
			row.PointsFor += pf
			row.PointsAgainst += pa
		}
	}

	out := make([]types.StandingsRow, 0, len(rows))
	for _, row := range rows {
		row.WinPct = winPct(row.Wins, row.Ties, row.Games)
		out = append(out, *row)
	}
	slices.SortFunc(out, compareStandings)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// compareStandings orders a before b when a ranks higher. Win percentages
// are compared as exact fractions (2W+T)/(2G) to avoid float ties.
func compareStandings(a, b types.StandingsRow) int {
	lhs := int64(2*a.Wins+a.Ties) * int64(b.Games)
	rhs := int64(2*b.Wins+b.Ties) * int64(a.Games)
	if c := cmp.Compare(rhs, lhs); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PointsFor, a.PointsFor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.JoinSeason, b.JoinSeason); c != 0 {
		return c
	}
	return cmp.Compare(a.OwnerID, b.OwnerID)
}

func (e *Engine) joinSeason(id model.OwnerID, fallback int) int {
	if o, ok := e.owners[id]; ok && o.JoinSeason > 0 {
		return o.JoinSeason
	}
	return fallback
}

func winPct(wins, ties, games int) float64 {
	if games == 0 {
		return 0
	}
	return (float64(wins) + 0.5*float64(ties)) / float64(games)
}

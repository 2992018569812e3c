package analytics

import (
	"cmp"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
)

// Championships lists the owner with final rank 1 for each season.
func (e *Engine) Championships() []types.ChampionshipRow {
	var out []types.ChampionshipRow
	for _, s := range e.seasons {
		if !s.Champion() {
			continue
		}
		out = append(out, types.ChampionshipRow{
			Season:      s.Season,
			OwnerID:     s.OwnerID,
			DisplayName: e.displayName(s.OwnerID),
			TeamName:    s.TeamName,
		})
	}
	return out
}

func (e *Engine) titles() map[model.OwnerID]int {
	out := make(map[model.OwnerID]int)
	for _, c := range e.Championships() {
		out[c.OwnerID]++
	}
	return out
}

// PlayoffPerformance summarizes playoff games per owner. Owners with a title
// but no recorded playoff games are included with zero games.
func (e *Engine) PlayoffPerformance() []types.PlayoffRow {
	rows := make(map[model.OwnerID]*types.PlayoffRow)
	seasons := make(map[model.OwnerID]map[int]struct{})
	row := func(id model.OwnerID) *types.PlayoffRow {
		r, ok := rows[id]
		if !ok {
			r = &types.PlayoffRow{OwnerID: id, DisplayName: e.displayName(id)}
			rows[id] = r
			seasons[id] = make(map[int]struct{})
		}
		return r
	}

	for _, g := range e.games {
		if !g.Playoff {
			continue
		}
		for _, id := range [2]model.OwnerID{g.HomeOwner, g.AwayOwner} {
			r := row(id)
			pf, _, result, _ := g.Side(id)
			switch result {
			case model.Win:
				r.Wins++
			case model.Loss:
				r.Losses++
			default:
				r.Ties++
			}
			r.Games++
			r.AveragePoints += pf
			seasons[id][g.Season] = struct{}{}
		}
	}
	for id, n := range e.titles() {
		row(id).Championships = n
	}

	out := make([]types.PlayoffRow, 0, len(rows))
	for id, r := range rows {
		r.Appearances = len(seasons[id])
		if r.Games > 0 {
			r.AveragePoints /= float64(r.Games)
		}
		r.WinPct = winPct(r.Wins, r.Ties, r.Games)
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b types.PlayoffRow) int {
		if c := cmp.Compare(b.Championships, a.Championships); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		if c := cmp.Compare(b.WinPct, a.WinPct); c != 0 {
			return c
		}
		return cmp.Compare(a.OwnerID, b.OwnerID)
	})
	return out
}

// Parity measures competitive balance per season from regular-season win
// percentages: population standard deviation, range, Gini coefficient and
// parity index max(0, 1 - sd/0.5).
func (e *Engine) Parity() []types.ParityRow {
	type tally struct{ wins, ties, games int }
	bySeason := make(map[int]map[model.OwnerID]*tally)
	for _, g := range e.games {
		if g.Playoff {
			continue
		}
		owners, ok := bySeason[g.Season]
		if !ok {
			owners = make(map[model.OwnerID]*tally)
			bySeason[g.Season] = owners
		}
		for _, id := range [2]model.OwnerID{g.HomeOwner, g.AwayOwner} {
			t, ok := owners[id]
			if !ok {
				t = &tally{}
				owners[id] = t
			}
			_, _, result, _ := g.Side(id)
			switch result {
			case model.Win:
				t.wins++
			case model.Draw:
				t.ties++
			}
			t.games++
		}
	}

	out := make([]types.ParityRow, 0, len(bySeason))
	for season, owners := range bySeason {
		pcts := make([]float64, 0, len(owners))
		for _, t := range owners {
			pcts = append(pcts, winPct(t.wins, t.ties, t.games))
		}
		sort.Float64s(pcts)
		sd := stat.PopStdDev(pcts, nil)
		out = append(out, types.ParityRow{
			Season:      season,
			Teams:       len(pcts),
			StdDev:      sd,
			Range:       floats.Max(pcts) - floats.Min(pcts),
			Gini:        gini(pcts),
			ParityIndex: max(0, 1-sd/0.5),
		})
	}
	slices.SortFunc(out, func(a, b types.ParityRow) int { return cmp.Compare(a.Season, b.Season) })
	return out
}

// gini expects sorted values.
func gini(sorted []float64) float64 {
	n := float64(len(sorted))
	total := floats.Sum(sorted)
	if n == 0 || total == 0 {
		return 0
	}
	var weighted float64
	for i, v := range sorted {
		weighted += float64(i+1) * v
	}
	return 2*weighted/(n*total) - (n+1)/n
}

// Summary returns league-wide totals and scoring extremes.
func (e *Engine) Summary() types.SummaryRow {
	row := types.SummaryRow{Owners: len(e.ids), Games: len(e.games)}

	seasons := make(map[int]struct{})
	for _, s := range e.seasons {
		seasons[s.Season] = struct{}{}
	}
	scores := make([]float64, 0, 2*len(e.games))
	for _, g := range e.games {
		seasons[g.Season] = struct{}{}
		scores = append(scores, g.HomeScore, g.AwayScore)
	}
	row.Seasons = len(seasons)
	for s := range seasons {
		if row.FirstSeason == 0 || s < row.FirstSeason {
			row.FirstSeason = s
		}
		row.LastSeason = max(row.LastSeason, s)
	}
	if len(scores) > 0 {
		row.HighestScore = floats.Max(scores)
		row.LowestScore = floats.Min(scores)
		row.AverageScore = stat.Mean(scores, nil)
	}

	titles := e.titles()
	leaders := make([]model.OwnerID, 0, len(titles))
	for id := range titles {
		leaders = append(leaders, id)
	}
	slices.SortFunc(leaders, func(a, b model.OwnerID) int {
		if c := cmp.Compare(titles[b], titles[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(leaders) > 0 {
		row.ChampionshipLeader = leaders[0]
		row.LeaderTitles = titles[leaders[0]]
	}
	return row
}

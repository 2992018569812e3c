package analytics

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
)

// Thresholds for BadBeats and Kryptonite.
const (
	BadBeatMargin       = 20.0
	KryptoniteMinGames  = 5
	KryptoniteMinWinPct = 0.8
	kryptoniteWinPct    = 0.9
)

// BadBeats lists losses where the loser scored at least margin points above
// the season's average score. Rows sort by points above average, then by
// losing margin, both descending.
func (e *Engine) BadBeats(margin float64) []types.BadBeatRow {
	scores := make(map[int][]float64)
	for _, g := range e.games {
		scores[g.Season] = append(scores[g.Season], g.HomeScore, g.AwayScore)
	}
	avg := make(map[int]float64, len(scores))
	for season, s := range scores {
		avg[season] = stat.Mean(s, nil)
	}

	var out []types.BadBeatRow
	for _, g := range e.games {
		for _, id := range [2]model.OwnerID{g.HomeOwner, g.AwayOwner} {
			pf, pa, result, _ := g.Side(id)
			if result != model.Loss || pf < avg[g.Season]+margin {
				continue
			}
			opp, team := g.HomeOwner, g.AwayTeam
			if id == g.HomeOwner {
				opp, team = g.AwayOwner, g.HomeTeam
			}
			out = append(out, types.BadBeatRow{
				Season:        g.Season,
				Week:          g.Week,
				OwnerID:       id,
				TeamName:      team,
				Score:         pf,
				Opponent:      opp,
				OpponentScore: pa,
				Margin:        pa - pf,
				SeasonAverage: avg[g.Season],
				AboveAverage:  pf - avg[g.Season],
				Playoff:       g.Playoff,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b types.BadBeatRow) int {
		if c := cmp.Compare(b.AboveAverage, a.AboveAverage); c != 0 {
			return c
		}
		return cmp.Compare(b.Margin, a.Margin)
	})
	return out
}

// Kryptonite lists ordered owner pairs where the dominator won at least
// minWinPct of at least minGames meetings. Ties count as games, not wins.
func (e *Engine) Kryptonite(minGames int, minWinPct float64) []types.KryptoniteRow {
	var out []types.KryptoniteRow
	for _, p := range e.pairs {
		h := e.headToHead(p.lo, p.hi)
		if h.Games < minGames || h.Games == 0 {
			continue
		}
		for _, side := range [2]struct {
			dom, victim  model.OwnerID
			wins, losses int
		}{
			{h.OwnerA, h.OwnerB, h.WinsA, h.WinsB},
			{h.OwnerB, h.OwnerA, h.WinsB, h.WinsA},
		} {
			pct := float64(side.wins) / float64(h.Games)
			if pct < minWinPct {
				continue
			}
			level := "heavy_favorite"
			if pct >= kryptoniteWinPct {
				level = "kryptonite"
			}
			out = append(out, types.KryptoniteRow{
				Dominator: side.dom,
				Victim:    side.victim,
				Wins:      side.wins,
				Losses:    side.losses,
				Ties:      h.Ties,
				Games:     h.Games,
				WinPct:    pct,
				Level:     level,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b types.KryptoniteRow) int {
		if c := cmp.Compare(b.WinPct, a.WinPct); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Games, a.Games); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Dominator, b.Dominator); c != 0 {
			return c
		}
		return cmp.Compare(a.Victim, b.Victim)
	})
	return out
}

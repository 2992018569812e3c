// Package analytics computes standings, head-to-head records, rivalries and
// season statistics over the owner-indexed game log.
//
// An Engine never mutates its inputs; every method is a pure read and may be
// called concurrently.
package analytics

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// pair is an unordered owner pair with lo < hi.
type pair struct {
	lo, hi model.OwnerID
}

func pairOf(a, b model.OwnerID) pair {
	if b < a {
		a, b = b, a
	}
	return pair{lo: a, hi: b}
}

// Engine answers analytics queries over one game log.
type Engine struct {
	log     logger.Logger
	workers int

	games   []model.GameLogEntry
	seasons []model.OwnerSeason
	owners  map[model.OwnerID]model.Owner
	ids     []model.OwnerID

	byPair  map[pair][]int
	pairs   []pair
	byOwner map[model.OwnerID][]int
}

// New indexes the game log and owner seasons. Inputs are copied.
func New(log logger.Logger, games []model.GameLogEntry, seasons []model.OwnerSeason, owners []model.Owner, opts ...Option) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{
		log:     log,
		workers: runtime.NumCPU(),
		games:   slices.Clone(games),
		seasons: slices.Clone(seasons),
		owners:  make(map[model.OwnerID]model.Owner, len(owners)),
		byPair:  make(map[pair][]int),
		byOwner: make(map[model.OwnerID][]int),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, o := range owners {
		e.owners[o.ID] = o
		e.ids = append(e.ids, o.ID)
	}
	slices.Sort(e.ids)

	slices.SortStableFunc(e.games, func(a, b model.GameLogEntry) int {
		if a.Season != b.Season {
			return a.Season - b.Season
		}
		return a.Week - b.Week
	})
	slices.SortStableFunc(e.seasons, func(a, b model.OwnerSeason) int {
		if a.Season != b.Season {
			return a.Season - b.Season
		}
		return cmp.Compare(a.OwnerID, b.OwnerID)
	})

	for i, g := range e.games {
		p := pairOf(g.HomeOwner, g.AwayOwner)
		if _, ok := e.byPair[p]; !ok {
			e.pairs = append(e.pairs, p)
		}
		e.byPair[p] = append(e.byPair[p], i)
		e.byOwner[g.HomeOwner] = append(e.byOwner[g.HomeOwner], i)
		e.byOwner[g.AwayOwner] = append(e.byOwner[g.AwayOwner], i)
	}
	slices.SortFunc(e.pairs, func(a, b pair) int {
		if a.lo != b.lo {
			return cmp.Compare(a.lo, b.lo)
		}
		return cmp.Compare(a.hi, b.hi)
	})

	e.log.Debug(context.Background(), "analytics engine indexed",
		logger.Int("games", len(e.games)), logger.Int("owners", len(e.ids)), logger.Int("pairs", len(e.pairs)))
	return e
}

// Era returns an engine over seasons from..to inclusive.
func (e *Engine) Era(from, to int) *Engine {
	return e.derive(
		func(g model.GameLogEntry) bool { return g.Season >= from && g.Season <= to },
		func(s model.OwnerSeason) bool { return s.Season >= from && s.Season <= to },
	)
}

// RegularSeason returns an engine without playoff games.
func (e *Engine) RegularSeason() *Engine {
	return e.derive(
		func(g model.GameLogEntry) bool { return !g.Playoff },
		func(model.OwnerSeason) bool { return true },
	)
}

func (e *Engine) derive(keepGame func(model.GameLogEntry) bool, keepSeason func(model.OwnerSeason) bool) *Engine {
	games := make([]model.GameLogEntry, 0, len(e.games))
	for _, g := range e.games {
		if keepGame(g) {
			games = append(games, g)
		}
	}
	seasons := make([]model.OwnerSeason, 0, len(e.seasons))
	for _, s := range e.seasons {
		if keepSeason(s) {
			seasons = append(seasons, s)
		}
	}
	owners := make([]model.Owner, 0, len(e.ids))
	for _, id := range e.ids {
		owners = append(owners, e.owners[id])
	}
	return New(e.log, games, seasons, owners, WithWorkers(e.workers))
}

// Games returns the game log in season, week order.
func (e *Engine) Games() []model.GameLogEntry {
	return slices.Clone(e.games)
}

// OwnerSeasons returns the owner-keyed season records in season order.
func (e *Engine) OwnerSeasons() []model.OwnerSeason {
	return slices.Clone(e.seasons)
}

// Owner returns a known owner.
func (e *Engine) Owner(id model.OwnerID) (model.Owner, bool) {
	o, ok := e.owners[id]
	return o, ok
}

func (e *Engine) displayName(id model.OwnerID) string {
	if o, ok := e.owners[id]; ok && o.DisplayName != "" {
		return o.DisplayName
	}
	return string(id)
}

// ownerGames returns id's games in season, week order.
func (e *Engine) ownerGames(id model.OwnerID) []model.GameLogEntry {
	idx := e.byOwner[id]
	out := make([]model.GameLogEntry, len(idx))
	for i, j := range idx {
		out[i] = e.games[j]
	}
	return out
}

// Package reconcile joins scraped matchups and season records to owner
// identities, producing the owner-indexed game log.
package reconcile

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// Resolver maps a season's team name to its owner.
type Resolver interface {
	Resolve(season int, teamName string) (model.OwnerID, error)
}

// MatchupSource lists the matchups to reconcile.
type MatchupSource interface {
	All() []model.Matchup
}

// SeasonSource lists the season records to reconcile.
type SeasonSource interface {
	All() []model.SeasonRecord
}

// gameLogNamespace seeds the name-based entry IDs.
var gameLogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/billyessing/nfl-fantasy/gamelog"))

// EntryID returns the deterministic ID of the game log entry for key.
func EntryID(key model.MatchupKey) uuid.UUID {
	name := fmt.Sprintf("%d/%d/%s/%s", key.Season, key.Week, key.Home, key.Away)
	return uuid.NewSHA1(gameLogNamespace, []byte(name))
}

// Option configures a reconciliation run.
type Option func(*options)

type options struct {
	log logger.Logger
}

// WithLogger reports the offending record of a failed build.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// BuildGameLog resolves both sides of every matchup in season, week order.
// The first side that cannot be resolved aborts the whole build; no game
// is ever dropped. Outcomes are recomputed from the scores.
func BuildGameLog(matchups MatchupSource, resolver Resolver, opts ...Option) ([]model.GameLogEntry, error) {
	o := newOptions(opts)

	games := slices.Clone(matchups.All())
	slices.SortStableFunc(games, func(a, b model.Matchup) int {
		ka, kb := a.Key(), b.Key()
		switch {
		case ka.Less(kb):
			return -1
		case kb.Less(ka):
			return 1
		}
		return 0
	})

	entries := make([]model.GameLogEntry, 0, len(games))
	for _, m := range games {
		home, err := resolver.Resolve(m.Season, m.HomeTeam)
		if err != nil {
			return nil, fail(o.log, m, m.HomeTeam, err)
		}
		away, err := resolver.Resolve(m.Season, m.AwayTeam)
		if err != nil {
			return nil, fail(o.log, m, m.AwayTeam, err)
		}
		if home == away {
			return nil, fail(o.log, m, m.AwayTeam, ErrSelfMatch)
		}

		entries = append(entries, model.GameLogEntry{
			ID:        EntryID(m.Key()),
			Season:    m.Season,
			Week:      m.Week,
			HomeOwner: home,
			AwayOwner: away,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			Outcome:   m.Outcome(),
			Playoff:   m.Playoff,
		})
	}
	return entries, nil
}

func fail(l logger.Logger, m model.Matchup, team string, cause error) error {
	err := &UnresolvedMatchupError{Season: m.Season, Week: m.Week, TeamName: team, Err: cause}
	l.Error(context.Background(), "game log build aborted",
		logger.Season(m.Season), logger.Week(m.Week), logger.String("team_name", team), logger.Error(cause))
	return err
}

// ResolveSeasons re-keys season records by owner, season then team order.
// An unmapped record aborts with the resolver's error.
func ResolveSeasons(seasons SeasonSource, resolver Resolver, opts ...Option) ([]model.OwnerSeason, error) {
	o := newOptions(opts)

	records := seasons.All()
	out := make([]model.OwnerSeason, 0, len(records))
	for _, r := range records {
		id, err := resolver.Resolve(r.Season, r.TeamName)
		if err != nil {
			o.log.Error(context.Background(), "season record unmapped",
				logger.Season(r.Season), logger.String("team_name", r.TeamName), logger.Error(err))
			return nil, err
		}
		out = append(out, model.OwnerSeason{OwnerID: id, SeasonRecord: r})
	}
	return out, nil
}

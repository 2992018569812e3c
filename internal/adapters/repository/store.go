package repository

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

type recordKey struct {
	season int
	team   string
}

// SeasonStore holds one record per (season, team name).
// Loaded once, then read concurrently.
type SeasonStore struct {
	mu      sync.RWMutex
	records map[recordKey]model.SeasonRecord
	log     logger.Logger
}

// NewSeasonStore creates an empty season record store.
func NewSeasonStore(opts ...Option) *SeasonStore {
	o := newStoreOptions(opts)
	return &SeasonStore{
		records: make(map[recordKey]model.SeasonRecord),
		log:     o.log,
	}
}

// Insert validates and stores r.
func (s *SeasonStore) Insert(r model.SeasonRecord) error {
	if reason := validateRecord(r); reason != "" {
		err := &InvalidRecordError{Record: r, Reason: reason}
		s.log.Error(context.Background(), "season record rejected",
			logger.Season(r.Season), logger.String("team_name", r.TeamName), logger.Error(err))
		return err
	}

	key := recordKey{season: r.Season, team: r.TeamName}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; ok {
		err := &DuplicateRecordError{Season: r.Season, TeamName: r.TeamName}
		s.log.Error(context.Background(), "season record rejected",
			logger.Season(r.Season), logger.String("team_name", r.TeamName), logger.Error(err))
		return err
	}
	s.records[key] = r
	return nil
}

// InsertAll inserts rows in order and stops at the first error.
func (s *SeasonStore) InsertAll(rows []model.SeasonRecord) error {
	for _, r := range rows {
		if err := s.Insert(r); err != nil {
			return err
		}
	}
	return nil
}

func validateRecord(r model.SeasonRecord) string {
	switch {
	case r.Season <= 0:
		return "season must be positive"
	case strings.TrimSpace(r.TeamName) == "":
		return "team name is empty"
	case r.Wins < 0 || r.Losses < 0 || r.Ties < 0:
		return "negative win/loss/tie count"
	case !finite(r.PointsFor) || !finite(r.PointsAgainst):
		return "points are not finite"
	case r.FinalRank < 0 || r.PlayoffSeed < 0:
		return "negative rank or seed"
	}
	return ""
}

// Get returns the record for teamName in season.
func (s *SeasonStore) Get(season int, teamName string) (model.SeasonRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[recordKey{season: season, team: teamName}]
	return r, ok
}

// All returns every record ordered by season then team name.
func (s *SeasonStore) All() []model.SeasonRecord {
	return s.filter(func(model.SeasonRecord) bool { return true })
}

// BySeason returns the records of one season ordered by team name.
func (s *SeasonStore) BySeason(season int) []model.SeasonRecord {
	return s.filter(func(r model.SeasonRecord) bool { return r.Season == season })
}

// ByTeam returns every season record filed under teamName, season ascending.
func (s *SeasonStore) ByTeam(teamName string) []model.SeasonRecord {
	return s.filter(func(r model.SeasonRecord) bool { return r.TeamName == teamName })
}

func (s *SeasonStore) filter(keep func(model.SeasonRecord) bool) []model.SeasonRecord {
	s.mu.RLock()
	out := make([]model.SeasonRecord, 0, len(s.records))
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b model.SeasonRecord) int {
		if a.Season != b.Season {
			return a.Season - b.Season
		}
		return strings.Compare(a.TeamName, b.TeamName)
	})
	return out
}

// Seasons returns the distinct seasons, ascending.
func (s *SeasonStore) Seasons() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctSeasons(s.records, func(k recordKey) int { return k.season })
}

// Len returns the number of records.
func (s *SeasonStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// MatchupStore holds one entry per (season, week, home, away).
type MatchupStore struct {
	mu       sync.RWMutex
	matchups map[model.MatchupKey]model.Matchup
	log      logger.Logger
}

// NewMatchupStore creates an empty matchup store.
func NewMatchupStore(opts ...Option) *MatchupStore {
	o := newStoreOptions(opts)
	return &MatchupStore{
		matchups: make(map[model.MatchupKey]model.Matchup),
		log:      o.log,
	}
}

// Insert validates and stores m. The same game listed with home and away
// swapped is rejected as a duplicate so it is never counted twice.
func (s *MatchupStore) Insert(m model.Matchup) error {
	if reason := validateMatchup(m); reason != "" {
		err := &InvalidMatchupError{Matchup: m, Reason: reason}
		s.logRejected(m, err)
		return err
	}

	key := m.Key()
	mirror := model.MatchupKey{Season: m.Season, Week: m.Week, Home: m.AwayTeam, Away: m.HomeTeam}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, dup := s.matchups[key]
	_, mirrored := s.matchups[mirror]
	if dup || mirrored {
		err := &DuplicateRecordError{Season: m.Season, Week: m.Week, TeamName: m.HomeTeam, Opponent: m.AwayTeam}
		s.logRejected(m, err)
		return err
	}
	s.matchups[key] = m
	return nil
}

func (s *MatchupStore) logRejected(m model.Matchup, err error) {
	s.log.Error(context.Background(), "matchup rejected",
		logger.Season(m.Season), logger.Week(m.Week),
		logger.String("home_team", m.HomeTeam), logger.String("away_team", m.AwayTeam),
		logger.Error(err))
}

// InsertAll inserts rows in order and stops at the first error.
func (s *MatchupStore) InsertAll(rows []model.Matchup) error {
	for _, m := range rows {
		if err := s.Insert(m); err != nil {
			return err
		}
	}
	return nil
}

func validateMatchup(m model.Matchup) string {
	switch {
	case m.Season <= 0:
		return "season must be positive"
	case m.Week < 1:
		return "week must be at least 1"
	case strings.TrimSpace(m.HomeTeam) == "" || strings.TrimSpace(m.AwayTeam) == "":
		return "team name is empty"
	case m.HomeTeam == m.AwayTeam:
		return "home and away team are the same"
	case !finite(m.HomeScore) || !finite(m.AwayScore):
		return "score is not finite"
	}
	return ""
}

// All returns every matchup ordered by season, week, home and away team.
func (s *MatchupStore) All() []model.Matchup {
	return s.filter(func(model.Matchup) bool { return true })
}

// BySeason returns one season's matchups in week order.
func (s *MatchupStore) BySeason(season int) []model.Matchup {
	return s.filter(func(m model.Matchup) bool { return m.Season == season })
}

// ByTeam returns every matchup teamName played, home or away.
func (s *MatchupStore) ByTeam(teamName string) []model.Matchup {
	return s.filter(func(m model.Matchup) bool { return m.Involves(teamName) })
}

func (s *MatchupStore) filter(keep func(model.Matchup) bool) []model.Matchup {
	s.mu.RLock()
	out := make([]model.Matchup, 0, len(s.matchups))
	for _, m := range s.matchups {
		if keep(m) {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b model.Matchup) int {
		ka, kb := a.Key(), b.Key()
		switch {
		case ka.Less(kb):
			return -1
		case kb.Less(ka):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Seasons returns the distinct seasons, ascending.
func (s *MatchupStore) Seasons() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctSeasons(s.matchups, func(k model.MatchupKey) int { return k.Season })
}

// Len returns the number of matchups.
func (s *MatchupStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchups)
}

func distinctSeasons[K comparable, V any](m map[K]V, season func(K) int) []int {
	seen := make(map[int]struct{})
	for k := range m {
		seen[season(k)] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

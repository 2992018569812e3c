package repository

import (
	"errors"
	"fmt"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrInvalidMatchup  = errors.New("invalid matchup")
	ErrInvalidRecord   = errors.New("invalid season record")
	ErrRecordMismatch  = errors.New("season record does not match schedule")
)

// DuplicateRecordError reports a second insert of an existing key.
// Week and Opponent are zero for season records.
type DuplicateRecordError struct {
	Season   int
	Week     int
	TeamName string
	Opponent string
}

func (e *DuplicateRecordError) Error() string {
	if e.Week == 0 {
		return fmt.Sprintf("duplicate season record for team %q in season %d", e.TeamName, e.Season)
	}
	return fmt.Sprintf("duplicate matchup %q vs %q in season %d week %d", e.TeamName, e.Opponent, e.Season, e.Week)
}

func (e *DuplicateRecordError) Unwrap() error { return ErrDuplicateRecord }

// InvalidMatchupError reports a matchup rejected on insert.
type InvalidMatchupError struct {
	Matchup model.Matchup
	Reason  string
}

func (e *InvalidMatchupError) Error() string {
	m := e.Matchup
	return fmt.Sprintf("invalid matchup %q vs %q in season %d week %d: %s", m.HomeTeam, m.AwayTeam, m.Season, m.Week, e.Reason)
}

func (e *InvalidMatchupError) Unwrap() error { return ErrInvalidMatchup }

// InvalidRecordError reports a season record rejected on insert.
type InvalidRecordError struct {
	Record model.SeasonRecord
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid season record for team %q in season %d: %s", e.Record.TeamName, e.Record.Season, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error { return ErrInvalidRecord }

// RecordMismatchError reports a team whose wins+losses+ties differs from
// the number of regular-season matchups it played.
type RecordMismatchError struct {
	Season   int
	TeamName string
	Expected int
	Actual   int
}

func (e *RecordMismatchError) Error() string {
	return fmt.Sprintf("team %q in season %d: record has %d games, schedule has %d", e.TeamName, e.Season, e.Expected, e.Actual)
}

func (e *RecordMismatchError) Unwrap() error { return ErrRecordMismatch }

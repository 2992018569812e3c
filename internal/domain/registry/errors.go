package registry

import (
	"errors"
	"fmt"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
)

// Sentinel kinds for registry errors.
var (
	ErrUnmappedTeam       = errors.New("unmapped team")
	ErrConflictingMapping = errors.New("conflicting owner mapping")
	ErrInvalidMapping     = errors.New("invalid owner mapping")
)

// UnmappedTeamError reports a (season, team name) with no curated owner.
type UnmappedTeamError struct {
	Season   int
	TeamName string
}

func (e *UnmappedTeamError) Error() string {
	return fmt.Sprintf("unmapped team %q in season %d", e.TeamName, e.Season)
}

func (e *UnmappedTeamError) Unwrap() error { return ErrUnmappedTeam }

// ConflictingMappingError reports a registration that contradicts an earlier one.
type ConflictingMappingError struct {
	Season   int
	TeamName string
	OwnerID  model.OwnerID
	// Existing is what the registry already holds: the other owner, the
	// owner's other team name or the owner's display name.
	Existing string
	Reason   string
}

func (e *ConflictingMappingError) Error() string {
	return fmt.Sprintf("conflicting mapping for team %q in season %d -> owner %q: %s (have %q)",
		e.TeamName, e.Season, e.OwnerID, e.Reason, e.Existing)
}

func (e *ConflictingMappingError) Unwrap() error { return ErrConflictingMapping }

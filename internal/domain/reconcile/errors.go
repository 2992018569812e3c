package reconcile

import (
	"errors"
	"fmt"
)

// Sentinel kinds for reconciler errors.
var (
	ErrUnresolvedMatchup = errors.New("unresolved matchup")
	// ErrSelfMatch is the cause when both sides of a game resolve to one owner.
	ErrSelfMatch = errors.New("both teams resolve to the same owner")
)

// UnresolvedMatchupError aborts a build: a matchup side has no owner.
type UnresolvedMatchupError struct {
	Season   int
	Week     int
	TeamName string
	Err      error
}

func (e *UnresolvedMatchupError) Error() string {
	return fmt.Sprintf("unresolved matchup in season %d week %d: team %q: %v", e.Season, e.Week, e.TeamName, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *UnresolvedMatchupError) Unwrap() []error {
	return []error{ErrUnresolvedMatchup, e.Err}
}

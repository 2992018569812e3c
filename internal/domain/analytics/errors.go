package analytics

import (
	"errors"
	"fmt"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
)

// ErrNoHistory marks a valid query over owners who never played each other.
var ErrNoHistory = errors.New("no history")

// NoHistoryError reports an owner pair without games.
type NoHistoryError struct {
	OwnerA model.OwnerID
	OwnerB model.OwnerID
}

func (e *NoHistoryError) Error() string {
	return fmt.Sprintf("owners %q and %q have never played", e.OwnerA, e.OwnerB)
}

func (e *NoHistoryError) Unwrap() error { return ErrNoHistory }

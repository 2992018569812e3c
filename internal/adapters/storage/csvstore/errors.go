package csvstore

import (
	"errors"
	"fmt"
)

// Sentinel kinds for CSV errors.
var (
	ErrHeader       = errors.New("invalid csv header")
	ErrMalformedRow = errors.New("malformed csv row")
)

// RowError locates a rejected value.
type RowError struct {
	File   string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %s: %v", e.File, e.Line, e.Column, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

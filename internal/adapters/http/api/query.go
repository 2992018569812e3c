package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
)

// intParam reads an optional non-negative integer query parameter.
func intParam(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrBadRequest, name)
	}
	return n, nil
}

// stringParam reads a required query parameter.
func stringParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", fmt.Errorf("%w: missing %s", ErrBadRequest, name)
	}
	return v, nil
}

// scopeParams reads from, to and regular.
func scopeParams(r *http.Request) (types.Scope, error) {
	var (
		s   types.Scope
		err error
	)
	if s.From, err = intParam(r, "from"); err != nil {
		return s, err
	}
	if s.To, err = intParam(r, "to"); err != nil {
		return s, err
	}
	if s.From != 0 && s.To != 0 && s.From > s.To {
		return s, fmt.Errorf("%w: from must not be after to", ErrBadRequest)
	}
	if v := r.URL.Query().Get("regular"); v != "" {
		if s.RegularSeason, err = strconv.ParseBool(v); err != nil {
			return s, fmt.Errorf("%w: regular must be a boolean", ErrBadRequest)
		}
	}
	return s, nil
}

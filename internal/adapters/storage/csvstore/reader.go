// Package csvstore reads the scraped league data and curated owner mapping
// from CSV files and writes the computed result tables back out as CSV.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
)

// Column sets of the input files. Optional columns may be absent from the
// header; any other column is rejected.
var (
	mappingColumns       = []string{"season", "team_name", "owner_id", "display_name"}
	seasonRecordColumns  = []string{"season", "team_name", "wins", "losses", "ties", "points_for", "points_against"}
	seasonRecordOptional = []string{"final_rank", "playoff_seed"}
	matchupColumns       = []string{"season", "week", "home_team", "away_team", "home_score", "away_score"}
	matchupOptional      = []string{"playoff"}
)

// table reads one CSV file row by row, addressing fields by column name.
type table struct {
	name   string
	r      *csv.Reader
	index  map[string]int
	record []string
	line   int
}

func newTable(r io.Reader, name string, required, optional []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty file", ErrHeader, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHeader, name, err)
	}

	t := &table{name: name, r: cr, index: make(map[string]int, len(header))}
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if !slices.Contains(required, col) && !slices.Contains(optional, col) {
			return nil, fmt.Errorf("%w: %s: unexpected column %q", ErrHeader, name, col)
		}
		if _, dup := t.index[col]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate column %q", ErrHeader, name, col)
		}
		t.index[col] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrHeader, name, col)
		}
	}
	return t, nil
}

// next advances to the following record; it returns false at end of file.
func (t *table) next() (bool, error) {
	rec, err := t.r.Read()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return false, &RowError{File: t.name, Line: perr.Line, Err: perr.Err}
		}
		return false, &RowError{File: t.name, Err: err}
	}
	t.record = rec
	t.line, _ = t.r.FieldPos(0)
	return true, nil
}

func (t *table) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

func (t *table) str(col string) string {
	i, ok := t.index[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.record[i])
}

func (t *table) fail(col string, err error) error {
	return &RowError{File: t.name, Line: t.line, Column: col, Err: err}
}

func (t *table) required(col string) (string, error) {
	v := t.str(col)
	if v == "" {
		return "", t.fail(col, errors.New("empty value"))
	}
	return v, nil
}

func (t *table) int(col string) (int, error) {
	v, err := t.required(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, t.fail(col, fmt.Errorf("not an integer: %q", v))
	}
	return n, nil
}

// optionalInt returns 0 for a missing column or an empty value.
func (t *table) optionalInt(col string) (int, error) {
	if t.str(col) == "" {
		return 0, nil
	}
	return t.int(col)
}

func (t *table) float(col string) (float64, error) {
	v, err := t.required(col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, t.fail(col, fmt.Errorf("not a number: %q", v))
	}
	return f, nil
}

func (t *table) bool(col string) (bool, error) {
	v := t.str(col)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, t.fail(col, fmt.Errorf("not a boolean: %q", v))
	}
	return b, nil
}

// ReadMapping parses owner_mapping rows.
func ReadMapping(r io.Reader, name string) ([]model.MappingRow, error) {
	t, err := newTable(r, name, mappingColumns, nil)
	if err != nil {
		return nil, err
	}
	var rows []model.MappingRow
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		var row model.MappingRow
		if row.Season, err = t.int("season"); err != nil {
			return nil, err
		}
		if row.TeamName, err = t.required("team_name"); err != nil {
			return nil, err
		}
		owner, err := t.required("owner_id")
		if err != nil {
			return nil, err
		}
		row.OwnerID = model.OwnerID(owner)
		row.DisplayName = t.str("display_name")
		rows = append(rows, row)
	}
}

// ReadSeasonRecords parses season_records rows.
func ReadSeasonRecords(r io.Reader, name string) ([]model.SeasonRecord, error) {
	t, err := newTable(r, name, seasonRecordColumns, seasonRecordOptional)
	if err != nil {
		return nil, err
	}
	var rows []model.SeasonRecord
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		var rec model.SeasonRecord
		for _, f := range []struct {
			col string
			dst *int
		}{
			{"season", &rec.Season},
			{"wins", &rec.Wins},
			{"losses", &rec.Losses},
			{"ties", &rec.Ties},
		} {
			if *f.dst, err = t.int(f.col); err != nil {
				return nil, err
			}
		}
		if rec.TeamName, err = t.required("team_name"); err != nil {
			return nil, err
		}
		if rec.PointsFor, err = t.float("points_for"); err != nil {
			return nil, err
		}
		if rec.PointsAgainst, err = t.float("points_against"); err != nil {
			return nil, err
		}
		if rec.FinalRank, err = t.optionalInt("final_rank"); err != nil {
			return nil, err
		}
		if rec.PlayoffSeed, err = t.optionalInt("playoff_seed"); err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

// ReadMatchups parses matchups rows.
func ReadMatchups(r io.Reader, name string) ([]model.Matchup, error) {
	t, err := newTable(r, name, matchupColumns, matchupOptional)
	if err != nil {
		return nil, err
	}
	var rows []model.Matchup
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		var m model.Matchup
		if m.Season, err = t.int("season"); err != nil {
			return nil, err
		}
		if m.Week, err = t.int("week"); err != nil {
			return nil, err
		}
		if m.HomeTeam, err = t.required("home_team"); err != nil {
			return nil, err
		}
		if m.AwayTeam, err = t.required("away_team"); err != nil {
			return nil, err
		}
		if m.HomeScore, err = t.float("home_score"); err != nil {
			return nil, err
		}
		if m.AwayScore, err = t.float("away_score"); err != nil {
			return nil, err
		}
		if m.Playoff, err = t.bool("playoff"); err != nil {
			return nil, err
		}
		rows = append(rows, m)
	}
}

// readFile opens path and hands it to read, labelling errors with the base name.
func readFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f, filepath.Base(path))
}

// LoadMapping reads the owner mapping file.
func LoadMapping(path string) ([]model.MappingRow, error) {
	return readFile(path, ReadMapping)
}

// LoadSeasonRecords reads the season records file.
func LoadSeasonRecords(path string) ([]model.SeasonRecord, error) {
	return readFile(path, ReadSeasonRecords)
}

// LoadMatchups reads the matchups file.
func LoadMatchups(path string) ([]model.Matchup, error) {
	return readFile(path, ReadMatchups)
}

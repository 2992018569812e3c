// Package sqlitestore exports the computed league tables into a SQLite
// database whose schema is managed by goose migrations.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
	"github.com/billyessing/nfl-fantasy/pkg/metrics"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// ErrExport wraps any failure while writing the tables.
var ErrExport = errors.New("sqlite export failed")

// Store is an open export database.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open connects to path, applies pragmas and runs pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Info(ctx, "opening sqlite database", logger.String("path", path))

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps per-connection pragmas in effect for every statement.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.optimize(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) optimize(ctx context.Context) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "ON"},
		{"temp_store", "MEMORY"},
	}
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			s.logger.Warn(ctx, "failed to set pragma", logger.String("pragma", p.name), logger.Error(err))
			return fmt.Errorf("set PRAGMA %s: %w", p.name, err)
		}
	}
	return nil
}

// gooseLogger routes goose output through the structured logger.
type gooseLogger struct {
	ctx context.Context
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(g.ctx, fmt.Sprintf(format, v...))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, fmt.Sprintf(format, v...))
}

func (s *Store) migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{ctx: ctx, log: s.logger})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run goose migrations: %w", err)
	}
	s.logger.Debug(ctx, "migrations completed")
	return nil
}

// DB exposes the underlying handle for read queries.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Export replaces every table with t inside one transaction. A failed export
// leaves the previous contents in place.
func (s *Store) Export(ctx context.Context, t types.Tables) (err error) {
	defer func() {
		if err != nil {
			metrics.RecordExport("sqlite", "error")
			s.logger.Error(ctx, "sqlite export failed", logger.Error(err))
			err = fmt.Errorf("%w: %w", ErrExport, err)
			return
		}
		metrics.RecordExport("sqlite", "ok")
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"championships", "head_to_head", "standings", "game_log", "owner_teams", "owners"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err = insertOwners(ctx, tx, t.Owners); err != nil {
		return err
	}
	if err = insertGameLog(ctx, tx, t); err != nil {
		return err
	}
	if err = insertAnalytics(ctx, tx, t); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	s.logger.Info(ctx, "sqlite export committed",
		logger.Int("owners", len(t.Owners)),
		logger.Int("game_log_entries", len(t.GameLog)),
		logger.Int("head_to_head", len(t.HeadToHead)),
	)
	return nil
}

// execEach prepares query once and runs it for each argument list.
func execEach(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range n {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

func nullable(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func insertOwners(ctx context.Context, tx *sql.Tx, owners []types.OwnerRow) error {
	err := execEach(ctx, tx,
		`INSERT INTO owners (owner_id, display_name, join_season, leave_season) VALUES (?, ?, ?, ?)`,
		len(owners), func(i int) []any {
			o := owners[i]
			return []any{string(o.OwnerID), o.DisplayName, o.JoinSeason, nullable(o.LeaveSeason)}
		})
	if err != nil {
		return fmt.Errorf("insert owners: %w", err)
	}

	type team struct {
		owner string
		types.TeamRow
	}
	var teams []team
	for _, o := range owners {
		for _, t := range o.Teams {
			teams = append(teams, team{owner: string(o.OwnerID), TeamRow: t})
		}
	}
	err = execEach(ctx, tx,
		`INSERT INTO owner_teams (season, team_name, owner_id) VALUES (?, ?, ?)`,
		len(teams), func(i int) []any {
			return []any{teams[i].Season, teams[i].TeamName, teams[i].owner}
		})
	if err != nil {
		return fmt.Errorf("insert owner teams: %w", err)
	}
	return nil
}

func insertGameLog(ctx context.Context, tx *sql.Tx, t types.Tables) error {
	err := execEach(ctx, tx,
		`INSERT INTO game_log (id, season, week, home_owner, away_owner, home_team, away_team, home_score, away_score, outcome, playoff)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(t.GameLog), func(i int) []any {
			g := t.GameLog[i]
			return []any{
				g.ID.String(), g.Season, g.Week, string(g.HomeOwner), string(g.AwayOwner), g.HomeTeam, g.AwayTeam,
				g.HomeScore, g.AwayScore, g.Outcome.String(), g.Playoff,
			}
		})
	if err != nil {
		return fmt.Errorf("insert game log: %w", err)
	}
	return nil
}

func insertAnalytics(ctx context.Context, tx *sql.Tx, t types.Tables) error {
	err := execEach(ctx, tx,
		`INSERT INTO standings (rank, owner_id, wins, losses, ties, games, win_pct, points_for, points_against)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(t.Standings), func(i int) []any {
			s := t.Standings[i]
			return []any{s.Rank, string(s.OwnerID), s.Wins, s.Losses, s.Ties, s.Games, s.WinPct, s.PointsFor, s.PointsAgainst}
		})
	if err != nil {
		return fmt.Errorf("insert standings: %w", err)
	}

	err = execEach(ctx, tx,
		`INSERT INTO head_to_head (owner_a, owner_b, games, wins_a, wins_b, ties, points_a, points_b)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(t.HeadToHead), func(i int) []any {
			h := t.HeadToHead[i]
			return []any{string(h.OwnerA), string(h.OwnerB), h.Games, h.WinsA, h.WinsB, h.Ties, h.PointsA, h.PointsB}
		})
	if err != nil {
		return fmt.Errorf("insert head to head: %w", err)
	}

	err = execEach(ctx, tx,
		`INSERT INTO championships (season, owner_id, team_name) VALUES (?, ?, ?)`,
		len(t.Championships), func(i int) []any {
			c := t.Championships[i]
			return []any{c.Season, string(c.OwnerID), c.TeamName}
		})
	if err != nil {
		return fmt.Errorf("insert championships: %w", err)
	}
	return nil
}

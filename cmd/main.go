package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billyessing/nfl-fantasy/internal/adapters/http/api"
	"github.com/billyessing/nfl-fantasy/internal/adapters/http/swagger"
	"github.com/billyessing/nfl-fantasy/internal/adapters/storage/csvstore"
	"github.com/billyessing/nfl-fantasy/internal/adapters/storage/sqlitestore"
	service "github.com/billyessing/nfl-fantasy/internal/app"
	"github.com/billyessing/nfl-fantasy/internal/config"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if cfg.LogJSON {
		if err := logger.Init(logger.WithJSON(true)); err != nil {
			os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "league history failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run loads the inputs, builds the league, exports the tables and, when
// configured, serves the API until ctx is canceled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	in, err := loadInput(cfg)
	if err != nil {
		return err
	}

	league, err := service.Build(ctx, in,
		service.WithLogger(log.Named("league")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithAudit(cfg.AuditRecords),
		service.WithRivalryMinGames(cfg.RivalryMinGames),
	)
	if err != nil {
		return fmt.Errorf("build league: %w", err)
	}

	if err := export(ctx, cfg, league, log); err != nil {
		return err
	}

	if !cfg.Serve {
		return nil
	}
	return serve(ctx, cfg, league, log)
}

func loadInput(cfg *config.Config) (service.Input, error) {
	var (
		in  service.Input
		err error
	)
	if in.Mapping, err = csvstore.LoadMapping(cfg.MappingPath()); err != nil {
		return in, fmt.Errorf("load owner mapping: %w", err)
	}
	if in.SeasonRecords, err = csvstore.LoadSeasonRecords(cfg.SeasonRecordsPath()); err != nil {
		return in, fmt.Errorf("load season records: %w", err)
	}
	if in.Matchups, err = csvstore.LoadMatchups(cfg.MatchupsPath()); err != nil {
		return in, fmt.Errorf("load matchups: %w", err)
	}
	return in, nil
}

func export(ctx context.Context, cfg *config.Config, league *service.League, log logger.Logger) error {
	tables, err := league.Tables(ctx)
	if err != nil {
		return fmt.Errorf("compute tables: %w", err)
	}

	w := csvstore.NewWriter(cfg.OutputDir, csvstore.WithLogger(log.Named("csvstore")))
	if err := w.WriteTables(ctx, tables); err != nil {
		return err
	}

	if cfg.SQLitePath == "" {
		return nil
	}
	store, err := sqlitestore.Open(ctx, cfg.SQLitePath, sqlitestore.WithLogger(log.Named("sqlitestore")))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn(ctx, "failed to close sqlite database", logger.Error(cerr))
		}
	}()
	return store.Export(ctx, tables)
}

// newMux registers the docs and the league API.
func newMux(ctx context.Context, league *service.League, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(league, api.WithLogger(log.Named("api"))).Register(ctx, mux)
	return mux
}

func serve(ctx context.Context, cfg *config.Config, league *service.League, log logger.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, league, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %w", api.ErrServe, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

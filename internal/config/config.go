// Package config defines the league build configuration and its loading hooks.
//
// Conventions:
//   - Defaults come from New; Load layers a YAML file and the environment on top.
//   - Paths left empty fall back to DataDir joined with the default file name.
//   - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Default input file names inside DataDir.
const (
	DefaultMappingFile       = "owner_mapping.csv"
	DefaultSeasonRecordsFile = "season_records.csv"
	DefaultMatchupsFile      = "matchups.csv"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Serve keeps the process running with the HTTP API after the build.
	Serve bool `koanf:"serve"`

	// DataDir holds the curated mapping and the scraped CSV tables.
	DataDir string `koanf:"data_dir"`

	// MappingFile, SeasonRecordsFile and MatchupsFile override the
	// per-table input paths.
	MappingFile       string `koanf:"mapping_file"`
	SeasonRecordsFile string `koanf:"season_records_file"`
	MatchupsFile      string `koanf:"matchups_file"`

	// OutputDir receives the result tables as CSV. Empty disables CSV output.
	OutputDir string `koanf:"output_dir"`

	// SQLitePath enables the SQLite export when set.
	SQLitePath string `koanf:"sqlite_path"`

	// WorkerCount bounds the head-to-head matrix fan-out.
	WorkerCount int `koanf:"worker_count"`

	// RivalryMinGames filters the rivalries table.
	RivalryMinGames int `koanf:"rivalry_min_games"`

	// AuditRecords checks season records against the matchup schedule.
	AuditRecords bool `koanf:"audit_records"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DataDir:         "data",
		OutputDir:       "output",
		WorkerCount:     runtime.NumCPU(),
		RivalryMinGames: 3,
		AuditRecords:    true,
	}
}

// MappingPath returns the resolved owner mapping path.
func (c *Config) MappingPath() string {
	return c.resolve(c.MappingFile, DefaultMappingFile)
}

// SeasonRecordsPath returns the resolved season records path.
func (c *Config) SeasonRecordsPath() string {
	return c.resolve(c.SeasonRecordsFile, DefaultSeasonRecordsFile)
}

// MatchupsPath returns the resolved matchups path.
func (c *Config) MatchupsPath() string {
	return c.resolve(c.MatchupsFile, DefaultMatchupsFile)
}

func (c *Config) resolve(override, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(c.DataDir, name)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Serve && c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty when serve is set", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.RivalryMinGames < 1:
		return fmt.Errorf("%w: rivalry_min_games must be positive, got %d", ErrInvalidConfig, c.RivalryMinGames)
	case c.DataDir == "" && (c.MappingFile == "" || c.SeasonRecordsFile == "" || c.MatchupsFile == ""):
		return fmt.Errorf("%w: data_dir or every input file must be set", ErrInvalidConfig)
	}
	return nil
}

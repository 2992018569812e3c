package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/billyessing/nfl-fantasy/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.AuditRecords, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("KNOX_ADDR", ":8080")
			t.Setenv("KNOX_WORKER_COUNT", "16")
			t.Setenv("KNOX_SQLITE_PATH", "/tmp/league.db")
			t.Setenv("KNOX_AUDIT_RECORDS", "false")
			t.Setenv("KNOX_SERVE", "true")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "/tmp/league.db")
				convey.So(cfg.AuditRecords, convey.ShouldBeFalse)
				convey.So(cfg.Serve, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars(t)
			path := writeConfigFile(t, `
data_dir: /srv/knox
output_dir: /srv/knox/out
rivalry_min_games: 5
worker_count: 4
`)
			t.Setenv("KNOX_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/knox")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "/srv/knox/out")
				convey.So(cfg.RivalryMinGames, convey.ShouldEqual, 5)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.MappingPath(), convey.ShouldEqual, filepath.Join("/srv/knox", config.DefaultMappingFile))
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars(t)
			path := writeConfigFile(t, `
addr: ":9090"
worker_count: 4
`)
			t.Setenv("KNOX_CONFIG", path)
			t.Setenv("KNOX_WORKER_COUNT", "8")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars(t)
			t.Setenv("KNOX_CONFIG", writeConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars(t)
			t.Setenv("KNOX_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("KNOX_WORKER_COUNT", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the loaded values fail validation", func() {
			clearConfigEnvVars(t)
			t.Setenv("KNOX_RIVALRY_MIN_GAMES", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "rivalry_min_games")
			})
		})
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knox.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearConfigEnvVars unsets every KNOX_ variable for the rest of the test.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KNOX_CONFIG", "KNOX_LOG_LEVEL", "KNOX_LOG_JSON", "KNOX_ADDR", "KNOX_SERVE",
		"KNOX_DATA_DIR", "KNOX_MAPPING_FILE", "KNOX_SEASON_RECORDS_FILE", "KNOX_MATCHUPS_FILE",
		"KNOX_OUTPUT_DIR", "KNOX_SQLITE_PATH", "KNOX_WORKER_COUNT", "KNOX_RIVALRY_MIN_GAMES",
		"KNOX_AUDIT_RECORDS",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

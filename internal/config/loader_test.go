package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shiftsync/shiftsync/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"SHIFTSYNC_CONFIG",
		"SHIFTSYNC_ADDR",
		"SHIFTSYNC_DATABASE_URL",
		"SHIFTSYNC_QUEUE_SIZE",
		"SHIFTSYNC_WORKER_COUNT",
		"SHIFTSYNC_DEDUPE_SIZE",
		"SHIFTSYNC_MAX_AUTOFILL_COUNT",
		"SHIFTSYNC_PAYMENT_LATENCY_MIN_MS",
		"SHIFTSYNC_PAYMENT_LATENCY_MAX_MS",
		"SHIFTSYNC_GEMINI_API_KEY",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 4096)
				convey.So(cfg.DatabaseURL, convey.ShouldBeEmpty)
				convey.So(cfg.GeminiModel, convey.ShouldEqual, "gemini-2.5-flash")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SHIFTSYNC_ADDR", ":9090")
			_ = os.Setenv("SHIFTSYNC_WORKER_COUNT", "7")
			_ = os.Setenv("SHIFTSYNC_DATABASE_URL", "postgres://localhost/shiftsync")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 7)
				convey.So(cfg.DatabaseURL, convey.ShouldEqual, "postgres://localhost/shiftsync")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := "addr: \":7070\"\nqueue_size: 128\nmax_autofill_count: 25\n"
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("SHIFTSYNC_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 128)
				convey.So(cfg.MaxAutofillCount, convey.ShouldEqual, 25)
			})

			convey.Convey("And env vars should win over the file", func() {
				_ = os.Setenv("SHIFTSYNC_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("SHIFTSYNC_CONFIG", "/does/not/exist.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should report a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("SHIFTSYNC_WORKER_COUNT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should report an invalid config", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

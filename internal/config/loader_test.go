package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/telerisk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TopRiskLimit, convey.ShouldEqual, 10)
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TELERISK_ADDR", ":8080")
			_ = os.Setenv("TELERISK_WORKER_COUNT", "3")
			_ = os.Setenv("TELERISK_TOP_RISK_LIMIT", "5")
			_ = os.Setenv("TELERISK_SECTORS_FILE", "/etc/telerisk/sectors.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.TopRiskLimit, convey.ShouldEqual, 5)
				convey.So(cfg.SectorsFile, convey.ShouldEqual, "/etc/telerisk/sectors.yaml")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
queue_size: 64
recommendation_limit: 8
log_format: json
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TELERISK_CONFIG", tmpFile)
			_ = os.Setenv("TELERISK_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 8)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.TopRiskLimit, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TELERISK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TELERISK_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("TELERISK_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When loading config with a non-positive limit", func() {
			_ = os.Setenv("TELERISK_TOP_RISK_LIMIT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should name the offending key", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "top_risk_limit")
			})
		})

		convey.Convey("When loading config with a zero batch size", func() {
			_ = os.Setenv("TELERISK_MAX_BATCH_SIZE", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then max_batch_size is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_batch_size")
			})
		})
	})
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "telerisk-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

func clearConfigEnvVars() {
	for _, name := range []string{
		"TELERISK_CONFIG",
		"TELERISK_ADDR",
		"TELERISK_LOG_LEVEL",
		"TELERISK_LOG_FORMAT",
		"TELERISK_SECTORS_FILE",
		"TELERISK_WORKER_COUNT",
		"TELERISK_QUEUE_SIZE",
		"TELERISK_MAX_BATCH_SIZE",
		"TELERISK_TOP_RISK_LIMIT",
		"TELERISK_RECOMMENDATION_LIMIT",
		"TELERISK_BATCH_TIMEOUT_MS",
	} {
		_ = os.Unsetenv(name)
	}
}

package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/careersim/internal/config"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.Orchestrator.RetirementAge, convey.ShouldEqual, 40)
			convey.So(cfg.Progression.PeakStart, convey.ShouldEqual, 24)
			convey.So(cfg.Injury.BaseRate, convey.ShouldEqual, 0.12)
			convey.So(cfg.Transfer.MaxAge, convey.ShouldEqual, 36)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When a nested table is broken", func() {
			cfg.Progression.PeakEnd = cfg.Progression.PeakStart - 1

			convey.Convey("Then validation names the table", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "progression")
			})
		})

		convey.Convey("When the log level is unknown", func() {
			cfg.LogLevel = "loud"

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 1)
				convey.So(cfg.Squad.CaptainRating, convey.ShouldEqual, 7.2)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CAREERSIM_LOG_LEVEL", "debug")
			_ = os.Setenv("CAREERSIM_SEED", "42")
			_ = os.Setenv("CAREERSIM_INJURY__BASE_RATE", "0.2")
			_ = os.Setenv("CAREERSIM_ORCHESTRATOR__RETIREMENT_AGE", "38")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.Injury.BaseRate, convey.ShouldEqual, 0.2)
				convey.So(cfg.Orchestrator.RetirementAge, convey.ShouldEqual, 38)
				convey.So(cfg.Injury.MaxProbability, convey.ShouldEqual, config.New().Injury.MaxProbability)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_format: text
dedupe_size: 1000
progression:
  peak_start: 25
  peak_end: 30
traits:
  thresholds:
    poacher: 25
transfer:
  negotiation:
    budget_slack: 0.1
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("CAREERSIM_CONFIG", tmpFile)
			_ = os.Setenv("CAREERSIM_DEDUPE_SIZE", "2000")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file applies and env wins over it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 2000)
				convey.So(cfg.Progression.PeakStart, convey.ShouldEqual, 25)
				convey.So(cfg.Progression.PeakEnd, convey.ShouldEqual, 30)
				convey.So(cfg.Traits.Thresholds[model.TraitPoacher], convey.ShouldEqual, 25.0)
				convey.So(cfg.Transfer.Negotiation.BudgetSlack, convey.ShouldEqual, 0.1)
			})

			convey.Convey("Then untouched entries of a nested map keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Traits.Thresholds[model.TraitWall], convey.ShouldEqual, config.New().Traits.Thresholds[model.TraitWall])
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			_ = os.Setenv("CAREERSIM_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it reports a load failure", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded values are invalid", func() {
			_ = os.Setenv("CAREERSIM_INJURY__BASE_RATE", "-1")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it reports an invalid config", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careersim.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, config.EnvPrefix) {
			_ = os.Unsetenv(strings.SplitN(kv, "=", 2)[0])
		}
	}
}

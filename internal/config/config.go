// Package config defines process and engine configuration and its loading.
//
// Conventions:
//   - Every tunable table lives in the package that uses it; Config only nests them.
//   - New returns defaults; Load layers a YAML file and environment on top.
//   - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"

	"github.com/okian/careersim/internal/domain/medical"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/internal/domain/traits"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/internal/leaguegen"
)

// Config contains process configuration and every engine tuning table.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: json or text.
	LogFormat string `koanf:"log_format"`

	// MetricsAddr, when set, serves /metrics on this address, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// DedupeSize bounds the once-per-season idempotency set.
	DedupeSize int `koanf:"dedupe_size"`

	// Seed drives every random draw of a run.
	Seed int64 `koanf:"seed"`

	// LeagueFile, when set, loads clubs from YAML instead of generating them.
	LeagueFile string `koanf:"league_file"`

	Orchestrator Orchestrator       `koanf:"orchestrator"`
	Progression  progression.Config `koanf:"progression"`
	Squad        squad.Config       `koanf:"squad"`
	Injury       medical.Config     `koanf:"injury"`
	Traits       traits.Config      `koanf:"traits"`
	Transfer     transfer.Config    `koanf:"transfer"`
	League       leaguegen.Config   `koanf:"league"`
}

// Orchestrator tunes the season tick.
type Orchestrator struct {
	// RetirementAge forces retirement at the end of the season it is reached.
	RetirementAge int `koanf:"retirement_age"`
	// TrainingBudget is the default per-season training spend.
	TrainingBudget float64 `koanf:"training_budget"`
	// SeekingStatus is the squad status at or below which the athlete is
	// actively looking to move.
	SeekingStatus int `koanf:"seeking_status"`
	// AutoAccept takes the best offer each season when the athlete is seeking.
	AutoAccept bool `koanf:"auto_accept"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "json",
		DedupeSize: 50_000,
		Seed:       1,
		Orchestrator: Orchestrator{
			RetirementAge:  40,
			TrainingBudget: 0,
			SeekingStatus:  2,
			AutoAccept:     true,
		},
		Progression: progression.DefaultConfig(),
		Squad:       squad.DefaultConfig(),
		Injury:      medical.DefaultConfig(),
		Traits:      traits.DefaultConfig(),
		Transfer:    transfer.DefaultConfig(),
		League:      leaguegen.DefaultConfig(),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format %q: %w", c.LogFormat, ErrInvalidConfig)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("dedupe_size %d: %w", c.DedupeSize, ErrInvalidConfig)
	}
	if c.Orchestrator.RetirementAge < 16 {
		return fmt.Errorf("retirement_age %d: %w", c.Orchestrator.RetirementAge, ErrInvalidConfig)
	}
	if c.Orchestrator.TrainingBudget < 0 {
		return fmt.Errorf("training_budget %.0f: %w", c.Orchestrator.TrainingBudget, ErrInvalidConfig)
	}
	for name, v := range map[string]interface{ Validate() error }{
		"progression": c.Progression,
		"squad":       c.Squad,
		"injury":      c.Injury,
		"traits":      c.Traits,
		"transfer":    c.Transfer,
		"league":      c.League,
	} {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s: %v: %w", name, err, ErrInvalidConfig)
		}
	}
	return nil
}

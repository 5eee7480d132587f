package transfer

import "github.com/okian/careersim/pkg/rng"

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default tables.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithRNG sets the random source. It also backs the roller unless WithRoller
// is given.
func WithRNG(r *rng.RNG) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// WithRoller overrides the scouting, lucky-discovery and loan rolls.
func WithRoller(r rng.Roller) Option {
	return func(e *Engine) {
		e.roll = r
	}
}

// WithIDGenerator sets how offer IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

package progression

import (
	"github.com/okian/careersim/internal/domain/dedupe"
	"github.com/okian/careersim/pkg/rng"
)

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default tables.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithRNG sets the noise source.
func WithRNG(r *rng.RNG) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// WithDeduper sets the set that enforces one training boost per season.
func WithDeduper(d dedupe.Deduper) Option {
	return func(e *Engine) {
		if d != nil {
			e.training = d
		}
	}
}

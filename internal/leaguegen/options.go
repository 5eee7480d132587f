package leaguegen

import (
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/rng"
)

// Option configures a Generator.
type Option func(*Generator)

// WithRNG sets the random source.
func WithRNG(r *rng.RNG) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// WithIDGenerator replaces the uuid generator used for club and athlete IDs.
func WithIDGenerator(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.ids = fn
		}
	}
}

// WithLogger sets the logger used to report generated leagues.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

package medical

import (
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithConfig replaces the default tables.
func WithConfig(cfg Config) Option {
	return func(l *Ledger) {
		l.cfg = cfg
	}
}

// WithRNG sets the source for probabilities, severities and durations.
func WithRNG(r *rng.RNG) Option {
	return func(l *Ledger) {
		if r != nil {
			l.rand = r
		}
	}
}

// WithRoller overrides the injury, penalty and setback rolls.
func WithRoller(r rng.Roller) Option {
	return func(l *Ledger) {
		if r != nil {
			l.roll = r
		}
	}
}

// WithRater sets the calculator used when a permanent penalty lowers attributes.
func WithRater(r model.Rater) Option {
	return func(l *Ledger) {
		l.rater = r
	}
}

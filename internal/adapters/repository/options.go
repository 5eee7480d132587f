package repository

import "github.com/okian/careersim/pkg/logger"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithBudgetSlack sets how far over the remaining transfer budget a fee may go
// before a commit is rejected. Negative values are ignored.
func WithBudgetSlack(slack float64) Option {
	return func(s *MemoryStore) {
		if slack >= 0 {
			s.slack = slack
		}
	}
}

// WithLogger sets the logger used for ledger events.
func WithLogger(l logger.Logger) Option {
	return func(s *MemoryStore) {
		if l != nil {
			s.log = l
		}
	}
}

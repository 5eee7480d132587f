package worker

import (
	"github.com/okian/careersim/pkg/logger"
)

// Option applies a configuration option to a Pool.
type Option func(*settings)

type settings struct {
	name   string
	logger logger.Logger
}

// WithName sets the pool name used as the worker name prefix in logs.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool and its workers.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

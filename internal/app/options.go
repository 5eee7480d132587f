package service

import (
	"github.com/okian/careersim/internal/config"
	"github.com/okian/careersim/internal/domain/dedupe"
	"github.com/okian/careersim/internal/domain/medical"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/internal/domain/traits"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/rng"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the tuning tables the default engines are built from.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithRNG sets the random source shared by the default engines.
func WithRNG(r *rng.RNG) Option {
	return func(s *Service) {
		if r != nil {
			s.rand = r
		}
	}
}

// WithStatsSource sets where season stats come from when a tick supplies none.
func WithStatsSource(src StatsSource) Option {
	return func(s *Service) {
		s.stats = src
	}
}

// WithProgression replaces the progression engine.
func WithProgression(e *progression.Engine) Option {
	return func(s *Service) {
		s.progression = e
	}
}

// WithSquad replaces the squad role machine.
func WithSquad(m *squad.Machine) Option {
	return func(s *Service) {
		s.squad = m
	}
}

// WithMedical replaces the injury and suspension ledger.
func WithMedical(l *medical.Ledger) Option {
	return func(s *Service) {
		s.medical = l
	}
}

// WithTraits replaces the trait engine.
func WithTraits(e *traits.Engine) Option {
	return func(s *Service) {
		s.traits = e
	}
}

// WithMarket replaces the transfer market engine.
func WithMarket(e *transfer.Engine) Option {
	return func(s *Service) {
		s.market = e
	}
}

// WithDeduper sets the season idempotency set.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		s.seasons = d
	}
}

// WithWorkerCount sets the number of season workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued season jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

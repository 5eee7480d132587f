// Package service runs an athlete's career one season at a time: it wires the
// domain engines to the club store and the budget ledger, and fans cohorts of
// athletes out to a worker pool.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/okian/careersim/internal/adapters/mq/queue"
	"github.com/okian/careersim/internal/adapters/mq/worker"
	"github.com/okian/careersim/internal/adapters/repository"
	"github.com/okian/careersim/internal/config"
	"github.com/okian/careersim/internal/domain/dedupe"
	"github.com/okian/careersim/internal/domain/medical"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/internal/domain/traits"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
	"github.com/okian/careersim/pkg/rng"
)

// StatsSource produces an athlete's match output for one season at team.
type StatsSource interface {
	Season(a *model.Athlete, team model.Team) model.SeasonStats
}

// Service orchestrates season ticks.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	progression *progression.Engine
	squad       *squad.Machine
	medical     *medical.Ledger
	traits      *traits.Engine
	market      *transfer.Engine
	seasons     dedupe.Deduper
	stats       StatsSource

	// Configuration
	cfg         *config.Config
	rand        *rng.RNG
	workerCount int
	queueSize   int

	// Per-athlete serialization of season ticks and moves.
	athleteLocks sync.Map

	// Pipeline state
	queue   *queue.InMemoryQueue[seasonJob]
	pool    *worker.Pool[seasonJob]
	started bool

	logger logger.Logger
}

// New constructs a Service over store. Engines not supplied through options
// are built from the configured tables and share one RNG seeded from it.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		cfg:         config.New(),
		workerCount: runtime.NumCPU() * 2,
		queueSize:   4096,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rand == nil {
		s.rand = rng.New(s.cfg.Seed)
	}
	if s.seasons == nil {
		s.seasons = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.cfg.DedupeSize))
	}
	if s.progression == nil {
		s.progression = progression.NewEngine(
			progression.WithConfig(s.cfg.Progression),
			progression.WithRNG(s.rand),
		)
	}
	if s.squad == nil {
		s.squad = squad.New(s.cfg.Squad)
	}
	if s.medical == nil {
		s.medical = medical.New(
			medical.WithConfig(s.cfg.Injury),
			medical.WithRNG(s.rand),
			medical.WithRater(s.progression.Rater()),
		)
	}
	if s.traits == nil {
		s.traits = traits.New(s.cfg.Traits, s.rand, nil)
	}
	if s.market == nil {
		s.market = transfer.New(s.squad,
			transfer.WithConfig(s.cfg.Transfer),
			transfer.WithRNG(s.rand),
		)
	}
	return s
}

// Rater returns the overall calculator athletes must be built with.
func (s *Service) Rater() model.Rater { return s.progression.Rater() }

// Market returns the transfer engine, for pricing new athletes.
func (s *Service) Market() *transfer.Engine { return s.market }

// Start starts the season worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting season service...")

	s.queue = queue.NewInMemoryQueue[seasonJob](queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool[seasonJob](s.workerCount, s.queue,
		worker.HandlerFunc[seasonJob](s.handle),
		worker.WithName("season"),
		worker.WithLogger(s.logger),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "season service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop closes the queue and waits for in-flight seasons to finish.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping season service...")

	err := s.pool.Shutdown(ctx)
	s.started = false
	s.logger.Info(ctx, "season service stopped")
	if err != nil {
		return fmt.Errorf("stop workers: %w", err)
	}
	return nil
}

// Register adds an athlete to the store and charges its wage to its club.
func (s *Service) Register(ctx context.Context, a *model.Athlete) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("register athlete: %w", repository.ErrInvalidRecord)
	}
	if err := s.store.Commit(ctx, repository.Movement{Buyer: a.TeamID, Weekly: a.Wage}); err != nil {
		return fmt.Errorf("register athlete %q: %w", a.ID, err)
	}
	if err := s.store.PutAthlete(ctx, a); err != nil {
		return err
	}
	s.updateActive(ctx)
	s.logger.Info(ctx, "athlete registered",
		logger.String("athlete", a.ID),
		logger.String("team", a.TeamID),
		logger.Int("overall", a.Overall()),
		logger.Int64("wage", a.Wage),
	)
	return nil
}

// Athlete returns a copy of the stored athlete.
func (s *Service) Athlete(ctx context.Context, id string) (*model.Athlete, error) {
	return s.store.Athlete(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"athletes":    s.store.Count(ctx),
		"seasonKeys":  s.seasons.Size(),
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		metrics.UpdateQueueDepth(queueLen)
	}
	s.updateActive(ctx)
	return stats
}

func (s *Service) updateActive(ctx context.Context) {
	active := 0
	for _, a := range s.store.Athletes(ctx) {
		if !a.Retired {
			active++
		}
	}
	metrics.UpdateActiveAthletes(active)
}

// lockAthlete serializes every change to one athlete's record.
func (s *Service) lockAthlete(id string) func() {
	l, _ := s.athleteLocks.LoadOrStore(id, &sync.Mutex{})
	mu := l.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Package repository holds the club and athlete records of a running
// simulation, and the club budget ledger every accepted offer is charged to.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/logger"
)

// Store provides read/write access to the simulation state.
type Store interface {
	// PutTeam inserts or replaces a club.
	PutTeam(ctx context.Context, team model.Team) error
	// Team returns a copy of one club, or ErrNotFound.
	Team(ctx context.Context, id string) (model.Team, error)
	// Teams returns copies of every club ordered by ID.
	Teams(ctx context.Context) []model.Team

	// PutAthlete inserts or replaces an athlete.
	PutAthlete(ctx context.Context, a *model.Athlete) error
	// Athlete returns a copy of one athlete, or ErrNotFound.
	Athlete(ctx context.Context, id string) (*model.Athlete, error)
	// Athletes returns copies of every athlete ordered by ID.
	Athletes(ctx context.Context) []*model.Athlete

	// SetRoster replaces the overall ratings of a club's other players in one
	// position group.
	SetRoster(ctx context.Context, teamID string, group model.PositionGroup, overalls []int) error
	// Roster returns the overall ratings of a club's other players in one
	// position group.
	Roster(ctx context.Context, teamID string, group model.PositionGroup) []int

	// AddRivalry records a rival pair.
	AddRivalry(ctx context.Context, r model.Rivalry)
	// Rivalries returns a copy of the rival index.
	Rivalries(ctx context.Context) model.Rivalries

	// Commit charges a movement to the clubs involved, atomically.
	Commit(ctx context.Context, m Movement) error
	// Release frees weekly wage commitments from a club's bill.
	Release(ctx context.Context, clubID string, weekly int64) error

	// Count returns the number of athletes tracked.
	Count(ctx context.Context) int
}

// MemoryStore is an in-memory Store. Reads return copies; the ledger
// serializes writes per club.
type MemoryStore struct {
	mu        sync.RWMutex
	teams     map[string]model.Team
	athletes  map[string]*model.Athlete
	rosters   map[string]map[model.PositionGroup][]int
	rivalries model.Rivalries

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	slack float64
	log   logger.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		teams:     map[string]model.Team{},
		athletes:  map[string]*model.Athlete{},
		rosters:   map[string]map[model.PositionGroup][]int{},
		rivalries: model.Rivalries{},
		locks:     map[string]*sync.Mutex{},
		slack:     0.05,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutTeam implements Store.
func (s *MemoryStore) PutTeam(_ context.Context, team model.Team) error {
	if team.ID == "" {
		return fmt.Errorf("team without id: %w", ErrInvalidRecord)
	}
	s.mu.Lock()
	s.teams[team.ID] = team.Clone()
	s.mu.Unlock()
	return nil
}

// Team implements Store.
func (s *MemoryStore) Team(_ context.Context, id string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return model.Team{}, fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	return t.Clone(), nil
}

// Teams implements Store.
func (s *MemoryStore) Teams(_ context.Context) []model.Team {
	s.mu.RLock()
	out := make([]model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t.Clone())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PutAthlete implements Store.
func (s *MemoryStore) PutAthlete(_ context.Context, a *model.Athlete) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("athlete without id: %w", ErrInvalidRecord)
	}
	c := a.Clone()
	c.Normalize()
	s.mu.Lock()
	s.athletes[a.ID] = c
	s.mu.Unlock()
	return nil
}

// Athlete implements Store.
func (s *MemoryStore) Athlete(_ context.Context, id string) (*model.Athlete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[id]
	if !ok {
		return nil, fmt.Errorf("athlete %q: %w", id, ErrNotFound)
	}
	return a.Clone(), nil
}

// Athletes implements Store.
func (s *MemoryStore) Athletes(_ context.Context) []*model.Athlete {
	s.mu.RLock()
	out := make([]*model.Athlete, 0, len(s.athletes))
	for _, a := range s.athletes {
		out = append(out, a.Clone())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetRoster implements Store.
func (s *MemoryStore) SetRoster(_ context.Context, teamID string, group model.PositionGroup, overalls []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[teamID]; !ok {
		return fmt.Errorf("team %q: %w", teamID, ErrNotFound)
	}
	if s.rosters[teamID] == nil {
		s.rosters[teamID] = map[model.PositionGroup][]int{}
	}
	s.rosters[teamID][group] = append([]int(nil), overalls...)
	return nil
}

// Roster implements Store.
func (s *MemoryStore) Roster(_ context.Context, teamID string, group model.PositionGroup) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.rosters[teamID][group]...)
}

// AddRivalry implements Store.
func (s *MemoryStore) AddRivalry(_ context.Context, r model.Rivalry) {
	s.mu.Lock()
	s.rivalries.Add(r.A, r.B)
	s.mu.Unlock()
}

// Rivalries implements Store.
func (s *MemoryStore) Rivalries(_ context.Context) model.Rivalries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.Rivalries, len(s.rivalries))
	for a, set := range s.rivalries {
		inner := make(map[string]struct{}, len(set))
		for b := range set {
			inner[b] = struct{}{}
		}
		out[a] = inner
	}
	return out
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.athletes)
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
)

// Movement is one athlete changing clubs, seen from the ledger.
//
// The buyer pays Fee from its transfer budget and takes Weekly onto its wage
// bill. The seller, when set, receives Fee and drops Released from its bill.
type Movement struct {
	Buyer    string
	Seller   string
	Fee      int64
	Weekly   int64
	Released int64
}

// MovementFor derives the ledger movement of accepting offer for a.
// A loan frees the borrower's contribution from the parent's bill; a permanent
// move frees the athlete's whole current wage.
func MovementFor(a *model.Athlete, offer model.Offer) Movement {
	m := Movement{
		Buyer:  offer.ClubID,
		Seller: a.TeamID,
		Fee:    offer.UpfrontCost(),
		Weekly: offer.WeeklyCost(),
	}
	switch offer.Kind {
	case model.OfferLoan:
		m.Released = m.Weekly
	case model.OfferTransfer:
		m.Released = a.Wage
	}
	return m
}

// Commit implements Store. The buyer's remaining budgets are re-read under
// its lock, so two commits against one club can never overdraw it.
func (s *MemoryStore) Commit(ctx context.Context, m Movement) error {
	if m.Buyer == "" || m.Fee < 0 || m.Weekly < 0 || m.Released < 0 {
		return fmt.Errorf("movement %+v: %w", m, ErrInvalidRecord)
	}
	unlock := s.lockClubs(m.Buyer, m.Seller)
	defer unlock()

	buyer, err := s.finances(m.Buyer)
	if err != nil {
		return err
	}
	var seller *model.Finances
	if m.Seller != "" && m.Seller != m.Buyer {
		if seller, err = s.finances(m.Seller); err != nil {
			return err
		}
	}

	fee := decimal.NewFromInt(m.Fee)
	remaining := decimal.NewFromInt(buyer.RemainingTransferBudget)
	ceiling := remaining.Mul(decimal.NewFromFloat(1 + s.slack))
	if fee.GreaterThan(ceiling) {
		return s.reject(ctx, m, "transfer budget", fee, ceiling)
	}
	weekly := decimal.NewFromInt(m.Weekly)
	wageRoom := decimal.NewFromInt(buyer.RemainingWageBudgetWeekly)
	if weekly.GreaterThan(wageRoom) {
		return s.reject(ctx, m, "wage budget", weekly, wageRoom)
	}

	buyer.RemainingTransferBudget = decimal.Max(decimal.Zero, remaining.Sub(fee)).IntPart()
	buyer.RemainingWageBudgetWeekly = wageRoom.Sub(weekly).IntPart()
	if seller != nil {
		seller.RemainingTransferBudget = decimal.NewFromInt(seller.RemainingTransferBudget).Add(fee).IntPart()
		seller.RemainingWageBudgetWeekly = freed(seller, m.Released)
	}

	s.mu.Lock()
	s.storeFinances(m.Buyer, buyer)
	if seller != nil {
		s.storeFinances(m.Seller, seller)
	}
	s.mu.Unlock()

	metrics.RecordLedgerCommit()
	s.log.Debug(ctx, "ledger commit",
		logger.String("buyer", m.Buyer),
		logger.String("seller", m.Seller),
		logger.Int64("fee", m.Fee),
		logger.Int64("weekly", m.Weekly),
		logger.Int64("buyer_remaining", buyer.RemainingTransferBudget),
	)
	return nil
}

// Release implements Store. The remaining wage budget never exceeds the
// weekly budget.
func (s *MemoryStore) Release(ctx context.Context, clubID string, weekly int64) error {
	if weekly < 0 {
		return fmt.Errorf("release %d: %w", weekly, ErrInvalidRecord)
	}
	unlock := s.lockClubs(clubID, "")
	defer unlock()

	f, err := s.finances(clubID)
	if err != nil {
		return err
	}
	f.RemainingWageBudgetWeekly = freed(f, weekly)

	s.mu.Lock()
	s.storeFinances(clubID, f)
	s.mu.Unlock()
	s.log.Debug(ctx, "ledger release", logger.String("club", clubID), logger.Int64("weekly", weekly))
	return nil
}

func (s *MemoryStore) reject(ctx context.Context, m Movement, what string, need, have decimal.Decimal) error {
	metrics.RecordLedgerRejection()
	s.log.Warn(ctx, "ledger rejected movement",
		logger.String("buyer", m.Buyer),
		logger.String("limit", what),
		logger.String("need", need.StringFixed(0)),
		logger.String("have", have.StringFixed(0)),
	)
	return fmt.Errorf("club %q %s: need %s, have %s: %w",
		m.Buyer, what, need.StringFixed(0), have.StringFixed(0), ErrInsufficientBudget)
}

func freed(f *model.Finances, weekly int64) int64 {
	room := decimal.NewFromInt(f.RemainingWageBudgetWeekly).Add(decimal.NewFromInt(weekly))
	return decimal.Min(room, decimal.NewFromInt(f.WageBudgetWeekly)).IntPart()
}

// finances returns a copy of the club's ledger. Callers hold the club lock.
func (s *MemoryStore) finances(clubID string) (*model.Finances, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[clubID]
	if !ok {
		return nil, fmt.Errorf("team %q: %w", clubID, ErrNotFound)
	}
	if t.Finances == nil {
		return nil, fmt.Errorf("team %q has no ledger: %w", clubID, ErrInvalidRecord)
	}
	f := *t.Finances
	return &f, nil
}

// storeFinances writes the ledger back. Callers hold s.mu.
func (s *MemoryStore) storeFinances(clubID string, f *model.Finances) {
	t := s.teams[clubID]
	t.Finances = f
	s.teams[clubID] = t
}

// lockClubs takes the per-club locks in ID order and returns the release func.
func (s *MemoryStore) lockClubs(ids ...string) func() {
	set := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		dup := false
		for _, have := range set {
			dup = dup || have == id
		}
		if !dup {
			set = append(set, id)
		}
	}
	sort.Strings(set)

	held := make([]*sync.Mutex, 0, len(set))
	for _, id := range set {
		l := s.clubLock(id)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (s *MemoryStore) clubLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

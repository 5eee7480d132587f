package repository

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/careersim/internal/domain/model"
)

// League is the club reference data a simulation runs against.
type League struct {
	Teams     []model.Team                             `koanf:"teams"`
	Rivalries []model.Rivalry                          `koanf:"rivalries"`
	Rosters   map[string]map[model.PositionGroup][]int `koanf:"rosters"`
}

// LoadLeague reads a YAML league file.
//
//	teams:
//	  - id: ldn
//	    name: London Athletic
//	    reputation: 82
//	    league_tier: 1
//	    finances: {transfer_budget: 90000000, ...}
//	rivalries:
//	  - {a: ldn, b: mcr}
//	rosters:
//	  ldn:
//	    forwards: [81, 79, 77]
func LoadLeague(_ context.Context, path string) (League, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return League{}, fmt.Errorf("read %s: %v: %w", path, err, ErrInvalidLeague)
	}
	var l League
	if err := k.UnmarshalWithConf("", &l, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return League{}, fmt.Errorf("decode %s: %v: %w", path, err, ErrInvalidLeague)
	}
	if err := l.Validate(); err != nil {
		return League{}, err
	}
	return l, nil
}

// Validate checks identifiers, ranges and references.
func (l League) Validate() error {
	if len(l.Teams) == 0 {
		return fmt.Errorf("no teams: %w", ErrInvalidLeague)
	}
	ids := make(map[string]bool, len(l.Teams))
	for _, t := range l.Teams {
		switch {
		case t.ID == "":
			return fmt.Errorf("team %q without id: %w", t.Name, ErrInvalidLeague)
		case ids[t.ID]:
			return fmt.Errorf("duplicate team %q: %w", t.ID, ErrInvalidLeague)
		case t.Reputation < 0 || t.Reputation > 100:
			return fmt.Errorf("team %q reputation %.1f: %w", t.ID, t.Reputation, ErrInvalidLeague)
		case t.LeagueTier < 1 || t.LeagueTier > 5:
			return fmt.Errorf("team %q tier %d: %w", t.ID, t.LeagueTier, ErrInvalidLeague)
		}
		if f := t.Finances; f != nil {
			if f.TransferBudget < 0 || f.WageBudgetWeekly < 0 || f.RemainingTransferBudget < 0 ||
				f.RemainingWageBudgetWeekly < 0 || f.RemainingWageBudgetWeekly > f.WageBudgetWeekly {
				return fmt.Errorf("team %q finances: %w", t.ID, ErrInvalidLeague)
			}
		}
		ids[t.ID] = true
	}
	for _, t := range l.Teams {
		if t.ParentID != "" && !ids[t.ParentID] {
			return fmt.Errorf("team %q parent %q: %w", t.ID, t.ParentID, ErrInvalidLeague)
		}
	}
	for _, r := range l.Rivalries {
		if !ids[r.A] || !ids[r.B] {
			return fmt.Errorf("rivalry %s/%s: %w", r.A, r.B, ErrInvalidLeague)
		}
	}
	for id, groups := range l.Rosters {
		if !ids[id] {
			return fmt.Errorf("roster for unknown team %q: %w", id, ErrInvalidLeague)
		}
		for g := range groups {
			if !validGroup(g) {
				return fmt.Errorf("team %q roster group %q: %w", id, g, ErrInvalidLeague)
			}
		}
	}
	return nil
}

// Seed loads a validated league into the store.
func (s *MemoryStore) Seed(ctx context.Context, l League) error {
	if err := l.Validate(); err != nil {
		return err
	}
	for _, t := range l.Teams {
		if t.Style == "" {
			t.Style = model.StyleBalanced
		}
		if err := s.PutTeam(ctx, t); err != nil {
			return err
		}
	}
	for _, r := range l.Rivalries {
		s.AddRivalry(ctx, r)
	}
	for id, groups := range l.Rosters {
		for g, overalls := range groups {
			if err := s.SetRoster(ctx, id, g, overalls); err != nil {
				return err
			}
		}
	}
	return nil
}

func validGroup(g model.PositionGroup) bool {
	for _, known := range model.AllGroups {
		if g == known {
			return true
		}
	}
	return false
}

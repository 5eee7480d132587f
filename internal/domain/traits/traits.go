// Package traits grants, upgrades and removes an athlete's named perks.
//
// Every trait is a pure predicate plus an injectable roll, so tests can pin
// the roll without bypassing the eligibility logic.
package traits

import (
	"math"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// EventKind classifies a trait change.
type EventKind string

// Event kinds.
const (
	Acquired EventKind = "acquired"
	Upgraded EventKind = "upgraded"
	Removed  EventKind = "removed"
)

// Event is one trait change, for narrative consumers.
type Event struct {
	Kind  EventKind
	Trait model.TraitName
	From  model.TraitTier
	To    model.TraitTier
}

// Engine evaluates the trait rules once per season.
type Engine struct {
	cfg  Config
	rand *rng.RNG
	roll rng.Roller
}

// New builds an Engine. rand jitters acquisition chances; roll decides them.
// A nil roll uses rand.
func New(cfg Config, rand *rng.RNG, roll rng.Roller) *Engine {
	if rand == nil {
		rand = rng.New(1)
	}
	if roll == nil {
		roll = rand
	}
	return &Engine{cfg: cfg, rand: rand, roll: roll}
}

// Tier grades a measured ratio.
func (e *Engine) Tier(ratio float64) model.TraitTier { return e.cfg.tier(ratio) }

// Eligible runs one trait's predicate without rolling.
func (e *Engine) Eligible(name model.TraitName, s State) (model.TraitTier, bool) {
	r, ok := rules[name]
	if !ok {
		return 0, false
	}
	ratio, ok := r.measure(s, e.cfg.Thresholds[name], &e.cfg)
	if !ok || math.IsNaN(ratio) {
		return 0, false
	}
	return e.cfg.tier(ratio), true
}

// Evaluate applies removals and acquisitions to the athlete's traits and
// returns what changed, in trait order.
func (e *Engine) Evaluate(s State) []Event {
	a := s.Athlete
	if a.Traits == nil {
		a.Traits = model.Traits{}
	}
	var events []Event
	for _, name := range model.AllTraits {
		r := rules[name]
		cur, held := a.Traits[name]

		if held && r.shed != nil && r.shed(s, e.cfg.Thresholds[name]) {
			if p := e.cfg.Removal[name]; p > 0 && e.roll.Roll(p) {
				a.Traits.Remove(name)
				events = append(events, Event{Kind: Removed, Trait: name, From: cur})
			}
			continue
		}

		tier, ok := e.Eligible(name, s)
		if !ok || (held && cur >= tier) {
			continue
		}
		if !r.loyalty && !e.roll.Roll(e.chance(name, a)) {
			continue
		}
		if !a.Traits.Grant(name, tier) {
			continue
		}
		kind := Acquired
		if held {
			kind = Upgraded
		}
		events = append(events, Event{Kind: kind, Trait: name, From: cur, To: tier})
	}
	return events
}

// chance draws this evaluation's acquisition probability from the trait's band.
func (e *Engine) chance(name model.TraitName, a *model.Athlete) float64 {
	band, ok := e.cfg.Chances[name]
	if !ok {
		band = e.cfg.DefaultChance
	}
	p := e.rand.Uniform(band.Min, band.Max)
	if name == model.TraitHotHead && a.Personality == model.Temperamental {
		p *= e.cfg.TemperamentBoost
	}
	return rng.Clamp(p, 0, 1)
}

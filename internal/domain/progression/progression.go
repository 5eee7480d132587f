// Package progression ages an athlete's attributes season over season and
// derives the overall rating from them.
package progression

import (
	"context"
	"math"

	"github.com/okian/careersim/internal/domain/dedupe"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

const trainingAction = "training"

// Result summarises one progression step.
type Result struct {
	Deltas          map[model.Attribute]float64
	OverallBefore   int
	OverallAfter    int
	PotentialRaised bool
}

// Engine applies seasonal attribute change.
type Engine struct {
	cfg      Config
	rater    *Rater
	rand     *rng.RNG
	training dedupe.Deduper
}

// NewEngine builds an Engine. The default RNG is seeded with 1; callers that
// want variety pass WithRNG.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:      DefaultConfig(),
		rand:     rng.New(1),
		training: dedupe.NewInMemoryDeduper(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rater = NewRater(e.cfg.PositionWeights)
	return e
}

// Rater returns the overall calculator every attribute write must go through.
func (e *Engine) Rater() model.Rater { return e.rater }

// Overall computes the rating of attrs at pos.
func (e *Engine) Overall(attrs model.Attributes, pos model.Position) int {
	return e.rater.Overall(attrs, pos)
}

// TrainingMultiplier maps a spend to a growth multiplier with diminishing returns.
// Negative or non-finite spends count as zero.
func (e *Engine) TrainingMultiplier(amount float64) float64 {
	amount = rng.Finite(amount, 0)
	if amount <= 0 {
		return 1
	}
	return 1 + e.cfg.MaxTrainingBoost*(1-math.Exp(-amount/e.cfg.TrainingHalfCost))
}

// InvestTraining claims the athlete's training slot for season and returns the
// multiplier to pass to Progress. A second call for the same season fails with
// ErrTrainingAlreadyApplied.
func (e *Engine) InvestTraining(ctx context.Context, a *model.Athlete, season int, amount float64) (float64, error) {
	if e.training.SeenAndRecord(ctx, dedupe.Key(trainingAction, a.ID, season)) {
		return 1, ErrTrainingAlreadyApplied
	}
	return e.TrainingMultiplier(amount), nil
}

// Progress ages every attribute by one season and recomputes overall.
func (e *Engine) Progress(a *model.Athlete, stats model.SeasonStats, multiplier float64) Result {
	multiplier = rng.Finite(multiplier, 1)
	if multiplier < 1 {
		multiplier = 1
	}
	attrs := a.Attributes()
	res := Result{
		Deltas:        make(map[model.Attribute]float64, len(model.AllAttributes)),
		OverallBefore: a.Overall(),
	}

	gap := math.Max(0, float64(a.Potential-a.Overall()))
	perf := e.performance(stats)

	next := make(model.Attributes, len(attrs))
	for _, attr := range model.AllAttributes {
		cur := attrs.Value(attr)
		delta := e.ageDelta(attr, a.Age, gap)

		relevance := e.rater.relevance(attr, a.Position())
		share := e.cfg.OffRoleShare + (1-e.cfg.OffRoleShare)*relevance
		delta = (delta + perf) * share

		if delta > 0 {
			delta *= multiplier
			if cur >= float64(a.Potential) {
				delta *= e.cfg.OverPotentialDamping
			}
		} else {
			delta /= multiplier
		}
		delta += e.rand.Gaussian(0, e.cfg.NoiseSD*share)
		delta = rng.Finite(delta, 0)

		next[attr] = cur + delta
		res.Deltas[attr] = delta
	}

	a.SetAttributes(next, e.rater)
	if a.Overall() > a.Potential {
		a.Potential = a.Overall()
		res.PotentialRaised = true
	}
	res.OverallAfter = a.Overall()
	return res
}

// ageDelta is the expected change from age alone.
func (e *Engine) ageDelta(attr model.Attribute, age int, gap float64) float64 {
	c := e.cfg
	switch {
	case age < c.PeakStart:
		bonus := math.Min(c.YouthBonusCap, c.YouthBonus*float64(c.PeakStart-age))
		d := gap * c.GrowthShare * (1 + bonus)
		if gap > 0 && d < c.MinGrowth {
			d = c.MinGrowth
		}
		return d
	case age <= c.PeakEnd:
		return gap * c.PlateauShare
	}
	d := -math.Min(c.DeclineCap, c.DeclineRate*float64(age-c.PeakEnd))
	switch {
	case attr.Physical():
		d *= c.PhysicalDecline
	case attr == model.Vision || attr == model.Leadership:
		d *= c.MentalDecline
	}
	return d
}

// performance converts season rating into attribute points, scaled by how
// much the athlete actually played. Seasons without a rating are neutral.
func (e *Engine) performance(stats model.SeasonStats) float64 {
	rating := rng.Finite(stats.AverageRating, 0)
	if rating <= 0 || stats.Matches <= 0 {
		return 0
	}
	share := stats.PlayShare()
	if stats.AvailableMatches <= 0 {
		share = 1
	}
	return (rating - e.cfg.NeutralRating) * e.cfg.PerformanceWeight * share
}

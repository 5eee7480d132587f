// Package medical rolls injuries, heals them, and keeps the per-competition
// suspension ledger.
package medical

import (
	"math"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// Ledger owns injury and suspension bookkeeping for athletes.
type Ledger struct {
	cfg   Config
	rand  *rng.RNG
	roll  rng.Roller
	rater model.Rater
}

// New builds a Ledger. A rater is required for permanent penalties; without
// one penalties are skipped.
func New(opts ...Option) *Ledger {
	l := &Ledger{cfg: DefaultConfig(), rand: rng.New(1)}
	for _, opt := range opts {
		opt(l)
	}
	if l.roll == nil {
		l.roll = l.rand
	}
	return l
}

// RecoveryResult reports what a run of recovery cycles did.
type RecoveryResult struct {
	Cycles   int
	Setbacks int
	Cleared  bool
}

// Outcome is the medical result of one season tick.
type Outcome struct {
	// Recovery is set when the athlete started the season injured.
	Recovery *RecoveryResult
	// Probability is the injury chance rolled against, zero when skipped.
	Probability float64
	// Injury is a newly sustained injury, nil otherwise.
	Injury *model.Injury
	// Penalty lists permanent attribute losses.
	Penalty map[model.Attribute]int
}

// Injured reports whether a new injury was sustained.
func (o Outcome) Injured() bool { return o.Injury != nil }

// InjuryProbability combines every risk factor into one clamped chance.
func (l *Ledger) InjuryProbability(a *model.Athlete, stats model.SeasonStats, style model.Style) float64 {
	c := l.cfg
	p := c.BaseRate * l.ageFactor(a.Age)

	mpw := rng.SafeDiv(float64(stats.Matches), float64(c.SeasonWeeks), 0)
	p *= c.WorkloadBase + c.WorkloadWeight*mpw

	if risk, ok := c.ContactRisk[a.Position()]; ok {
		p *= risk
	}
	if a.Personality == model.Temperamental {
		p *= c.TemperamentFactor
	}
	if style.Aggressive() {
		p *= c.StyleFactor
	}
	prior := a.Career.Injuries
	if prior > c.HistoryCap {
		prior = c.HistoryCap
	}
	p *= 1 + c.HistoryWeight*float64(prior)
	if a.Traits.Has(model.TraitIronMan) {
		p *= c.IronManFactor
	}
	if a.Traits.Has(model.TraitInjuryProne) {
		p *= c.InjuryProneFactor
	}
	p *= 1 + rng.Clamp(a.ReinjuryRisk, 0, c.ReinjuryCap)

	return rng.Clamp(p, c.MinProbability, c.MaxProbability)
}

func (l *Ledger) ageFactor(age int) float64 {
	c := l.cfg
	d := float64(age - c.AgeCurveLow)
	if d < 0 {
		return 1 - c.YoungSlope*d
	}
	f := 1 + c.OldSlope*d
	if over := float64(age - c.AgeCurveSharp); over > 0 {
		f += c.SharpSlope * over * over
	}
	return f
}

// Severity draws a severity with thresholds that worsen with age.
func (l *Ledger) Severity(age int) model.InjurySeverity {
	c := l.cfg
	shift := 0.0
	if age >= c.SeverityAgeStart {
		shift = float64(age-c.SeverityAgeStart+1) * c.SeverityAgeShift
	}
	u := l.rand.Float64()
	ending := c.CareerEndingChance + shift/4
	severe := ending + c.SevereChance + shift
	moderate := severe + c.ModerateChance + shift/2
	switch {
	case u < ending:
		return model.CareerEnding
	case u < severe:
		return model.Severe
	case u < moderate:
		return model.Moderate
	}
	return model.Minor
}

// RollInjury rolls once for a new injury. It never rolls while an injury is
// active and returns nil when no injury occurs.
func (l *Ledger) RollInjury(a *model.Athlete, stats model.SeasonStats, style model.Style) (*model.Injury, float64, map[model.Attribute]int) {
	if a.Injury.Active() || a.Retired {
		return nil, 0, nil
	}
	p := l.InjuryProbability(a, stats, style)
	if !l.roll.Roll(p) {
		a.ReinjuryRisk = rng.Clamp(a.ReinjuryRisk*l.cfg.ReinjuryDecay, 0, l.cfg.ReinjuryCap)
		return nil, p, nil
	}

	sev := l.Severity(a.Age)
	inj := &model.Injury{Severity: sev}
	var penalty map[model.Attribute]int
	if sev != model.CareerEnding {
		sc := l.cfg.Severities[sev.String()]
		inj.WeeksRemaining = float64(l.rand.IntRange(sc.Duration.MinWeeks, sc.Duration.MaxWeeks))
		inj.RecurrenceRisk = sc.Recurrence
		a.ReinjuryRisk = rng.Clamp(a.ReinjuryRisk+sc.Recurrence, 0, l.cfg.ReinjuryCap)
		if sc.PenaltyChance > 0 && l.roll.Roll(sc.PenaltyChance) {
			penalty = l.applyPenalty(a)
		}
	}
	a.Injury = inj
	a.Career.Injuries++
	return inj, p, penalty
}

// applyPenalty permanently lowers the athletic attributes.
func (l *Ledger) applyPenalty(a *model.Athlete) map[model.Attribute]int {
	if l.rater == nil || l.cfg.PenaltyMax <= 0 {
		return nil
	}
	attrs := a.Attributes()
	out := map[model.Attribute]int{}
	for _, attr := range []model.Attribute{model.Pace, model.Physical, model.Stamina} {
		loss := l.rand.IntRange(1, l.cfg.PenaltyMax)
		attrs[attr] -= float64(loss)
		out[attr] = loss
	}
	a.SetAttributes(attrs, l.rater)
	return out
}

// RecoveryRate is weeks healed per cycle for a.
func (l *Ledger) RecoveryRate(a *model.Athlete) float64 {
	c := l.cfg
	rate := c.Recovery
	switch {
	case a.Age < c.YoungRecoveryAge:
		rate *= c.YoungRecovery
	case a.Age > c.OldRecoveryAge:
		rate *= c.OldRecovery
	}
	if a.Attribute(model.Stamina) >= c.FitStamina {
		rate *= c.FitRecovery
	}
	if a.Traits.Has(model.TraitIronMan) {
		rate *= c.IronManRecovery
	}
	if a.Traits.Has(model.TraitInjuryProne) {
		rate *= c.ProneRecovery
	}
	return rate
}

// Recover runs up to cycles recovery steps. When an injury would clear, a
// setback roll may extend it instead. Career-ending injuries never heal.
func (l *Ledger) Recover(a *model.Athlete, cycles int) RecoveryResult {
	var res RecoveryResult
	rate := l.RecoveryRate(a)
	for i := 0; i < cycles; i++ {
		inj := a.Injury
		if !inj.Active() || inj.Severity == model.CareerEnding {
			break
		}
		res.Cycles++
		left := inj.WeeksRemaining - rate
		if left > 0 {
			inj.WeeksRemaining = left
			continue
		}
		if l.cfg.SetbackChance > 0 && l.roll.Roll(l.cfg.SetbackChance) {
			res.Setbacks++
			inj.WeeksRemaining = math.Max(left, 0) + float64(l.rand.IntRange(l.cfg.SetbackWeeks.MinWeeks, l.cfg.SetbackWeeks.MaxWeeks))
			continue
		}
		a.Injury = nil
		res.Cleared = true
		break
	}
	if a.Injury != nil && !a.Injury.Active() {
		a.Injury = nil
		res.Cleared = true
	}
	return res
}

// Season applies one season of medical bookkeeping: an athlete who starts
// injured recovers and is not rolled; anyone else gets exactly one roll.
func (l *Ledger) Season(a *model.Athlete, stats model.SeasonStats, style model.Style) Outcome {
	if a.Injury.Active() {
		rec := l.Recover(a, l.cfg.CyclesPerSeason)
		return Outcome{Recovery: &rec}
	}
	a.Injury = nil
	inj, p, penalty := l.RollInjury(a, stats, style)
	return Outcome{Probability: p, Injury: inj, Penalty: penalty}
}

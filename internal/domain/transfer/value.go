package transfer

import (
	"math"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// Desirability summarises market demand for the athlete on [0, 100].
func Desirability(a *model.Athlete, stats model.SeasonStats) float64 {
	d := float64(a.Overall()-50) * 1.6
	switch {
	case a.Age <= 21:
		d += 10
	case a.Age <= 24:
		d += 6
	case a.Age <= 28:
	case a.Age <= 31:
		d -= 8
	default:
		d -= 18
	}
	if a.Age <= 24 {
		d += math.Max(0, float64(a.Potential-a.Overall())) * 0.5
	}
	if stats.Matches >= 10 {
		d += (rng.Finite(stats.AverageRating, 6.5) - 6.5) * 8
	}
	d += math.Min(float64(stats.Goals), 30) * 0.3
	if a.Injury.Active() {
		d -= 10
	}
	return rng.Clamp(d, 0, 100)
}

// MarketValue is the athlete's fair transfer value before negotiation.
func (e *Engine) MarketValue(a *model.Athlete) float64 {
	n := e.cfg.Negotiation
	v := n.ValueBase * math.Exp(n.ValueGrowth*float64(a.Overall()-40))

	switch {
	case a.Age <= 21:
		v *= 1.3
	case a.Age <= 24:
		v *= 1.15
	case a.Age <= 28:
	case a.Age <= 31:
		v *= 0.75
	default:
		v *= 0.45
	}
	if a.Age <= 24 {
		v *= 1 + math.Max(0, float64(a.Potential-a.Overall()))*0.02
	}
	switch {
	case a.ContractYears <= 0:
		v *= 0.1
	case a.ContractYears == 1:
		v *= 0.6
	case a.ContractYears == 2:
		v *= 0.85
	}
	return rng.Finite(v, 0)
}

func roleWageFactor(s model.SquadStatus) float64 {
	switch s {
	case model.Surplus:
		return 0.6
	case model.Reserve:
		return 0.75
	case model.Prospect:
		return 0.8
	case model.Rotation:
		return 1
	case model.KeyPlayer:
		return 1.3
	case model.Captain:
		return 1.45
	}
	return 1
}

func positionWageFactor(p model.Position) float64 {
	switch p {
	case model.GK:
		return 0.85
	case model.CAM, model.LW, model.RW:
		return 1.05
	case model.CF, model.ST:
		return 1.1
	}
	if p.Group() == model.Defenders {
		return 0.95
	}
	return 1
}

func tierWageFactor(t ClubTier) float64 {
	switch t {
	case Elite:
		return 1.5
	case Major:
		return 1.25
	case Standard:
		return 1
	case Lower:
		return 0.8
	case Minor:
		return 0.65
	}
	return 1
}

// baseWage is the weekly wage before agent, competition and fit adjustments.
func (e *Engine) baseWage(a *model.Athlete, prof ClubProfile, role model.SquadStatus) float64 {
	n := e.cfg.Negotiation
	w := n.WageBase * math.Exp(n.WageGrowth*float64(a.Overall()-40))
	return w * roleWageFactor(role) * positionWageFactor(a.Position()) * tierWageFactor(prof.Tier)
}

// Wage is the weekly wage a club pays the athlete in the current role.
func (e *Engine) Wage(a *model.Athlete, team model.Team) int64 {
	return int64(math.Round(e.baseWage(a, e.Profile(team), a.SquadStatus)))
}

package transfer

import (
	"math"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

var styleAttributes = map[model.Style][]model.Attribute{
	model.StyleBalanced:   {model.Passing, model.Defending, model.Shooting, model.Stamina},
	model.StylePossession: {model.Passing, model.Vision, model.Dribbling},
	model.StyleCounter:    {model.Pace, model.Shooting, model.Dribbling},
	model.StylePressing:   {model.Stamina, model.Physical, model.Pace},
	model.StyleDirect:     {model.Heading, model.Physical, model.Shooting},
	model.StyleDefensive:  {model.Defending, model.Heading, model.Physical},
}

var keeperStyleAttributes = map[model.Style][]model.Attribute{
	model.StylePossession: {model.Kicking, model.Positioning},
	model.StyleDefensive:  {model.Reflexes, model.Handling, model.Positioning},
}

func statusScore(s model.SquadStatus) float64 {
	switch s {
	case model.Surplus:
		return 10
	case model.Reserve:
		return 30
	case model.Prospect:
		return 55
	case model.Rotation:
		return 60
	case model.KeyPlayer:
		return 85
	case model.Captain:
		return 95
	}
	return 50
}

// fit scores one athlete/club pair.
func (e *Engine) fit(a *model.Athlete, cur, dest ClubProfile, curTeam, team model.Team, role model.SquadStatus, wage float64) model.TransferFit {
	var f model.TransferFit

	f.Status = rng.Clamp(statusScore(role)+5*float64(role-a.SquadStatus.Clamp()), 0, 100)

	if a.Wage > 0 {
		f.Financial = rng.Clamp(50+50*(wage/float64(a.Wage)-1), 0, 100)
	} else {
		f.Financial = 75
	}

	f.Cultural = 100 - 15*math.Abs(float64(team.LeagueTier-curTeam.LeagueTier))
	if curTeam.Country != "" && team.Country != curTeam.Country {
		if a.Personality == model.Loyal {
			f.Cultural -= 25
		} else {
			f.Cultural -= 15
		}
	}
	f.Cultural = rng.Clamp(f.Cultural, 0, 100)

	f.Tactical = e.tactical(a, team.Style)

	move := dest.Score - cur.Score
	if a.Age >= 30 {
		move /= 2
	}
	career := 50 + move
	if a.Age <= 21 {
		career += (dest.DevelopmentIndex - 50) * 0.3
	}
	if a.Personality == model.Ambitious {
		career += move * 0.5
	}
	f.Career = rng.Clamp(career, 0, 100)

	w := e.cfg.Fit
	total := w.Status + w.Financial + w.Cultural + w.Tactical + w.Career
	f.Overall = rng.SafeDiv(
		f.Status*w.Status+f.Financial*w.Financial+f.Cultural*w.Cultural+f.Tactical*w.Tactical+f.Career*w.Career,
		total, 50)
	return f
}

// tactical rewards specialist attributes that match the club style.
func (e *Engine) tactical(a *model.Athlete, style model.Style) float64 {
	attrs, ok := styleAttributes[style]
	if a.Position() == model.GK {
		if attrs, ok = keeperStyleAttributes[style]; !ok {
			attrs, ok = []model.Attribute{model.Reflexes, model.Diving, model.Handling}, true
		}
	}
	if !ok {
		attrs = styleAttributes[model.StyleBalanced]
	}
	var sum float64
	for _, attr := range attrs {
		sum += a.Attribute(attr)
	}
	avg := sum / float64(len(attrs))
	return rng.Clamp((avg-40)/55*100, 0, 100)
}

// interest is how keen the club is before the rival penalty.
func (e *Engine) interest(prof ClubProfile, team model.Team, group model.PositionGroup, desirability float64) float64 {
	c := e.cfg.Interest
	raw := prof.Ambition*c.Ambition + prof.TransferActivity*c.Activity + desirability*c.Desirability

	need := 1.0
	if byGroup, ok := c.StyleNeed[team.Style]; ok {
		if v, ok := byGroup[group]; ok {
			need = v
		}
	}
	if depth, ok := team.Depth[group]; ok {
		ideal := c.IdealDepth[group]
		switch {
		case depth < ideal:
			need *= c.ShortDepth
		case depth > ideal+2:
			need *= c.DeepDepth
		}
	}
	return raw * need
}

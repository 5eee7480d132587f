// Package squad classifies an athlete's standing in the club depth chart.
//
// The machine is deterministic: thresholds and comparisons only, no RNG.
package squad

import (
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// Reason explains which rule produced a transition.
type Reason string

// Reasons, in rule priority order.
const (
	ReasonCaptainRetained Reason = "captain_retained"
	ReasonKeyRetained     Reason = "key_player_retained"
	ReasonCaptainPromoted Reason = "captain_promoted"
	ReasonExceptional     Reason = "exceptional_output"
	ReasonHeavyMinutes    Reason = "heavy_minutes"
	ReasonDepthChart      Reason = "depth_chart"
	ReasonProspectFloor   Reason = "prospect_floor"
	ReasonDemotionLimited Reason = "demotion_limited"
)

// Input is everything a transition reads.
type Input struct {
	Athlete *model.Athlete
	Team    model.Team
	// Teammates holds the overall ratings of squad members in the same
	// position group, excluding the athlete.
	Teammates []int
	Stats     model.SeasonStats
}

// Transition is one state change, or a no-op when From equals To.
type Transition struct {
	From   model.SquadStatus
	To     model.SquadStatus
	Reason Reason
}

// Direction is "up", "down" or "none".
func (t Transition) Direction() string {
	switch {
	case t.To > t.From:
		return "up"
	case t.To < t.From:
		return "down"
	}
	return "none"
}

// Changed reports whether the status moved.
func (t Transition) Changed() bool { return t.From != t.To }

// Machine applies the role rules.
type Machine struct {
	cfg Config
}

// New returns a Machine over cfg.
func New(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// ExpectedStarterSkill is the overall a club expects from a regular starter.
func (m *Machine) ExpectedStarterSkill(team model.Team) float64 {
	rep := rng.Clamp(team.Reputation, 0, 100)
	tier := rng.Clamp(float64(team.LeagueTier), 1, 5)
	return m.cfg.BaselineBase + rep*m.cfg.BaselineReputation + (5-tier)*m.cfg.BaselineTierStep
}

// ExpectedRole predicts the status an athlete would start with at team,
// assuming no same-position competition.
func (m *Machine) ExpectedRole(overall, potential, age int, team model.Team) model.SquadStatus {
	gap := float64(overall) - m.ExpectedStarterSkill(team)
	status := m.band(gap, 0, 1)
	if m.prospect(potential, age, team) && status < model.Prospect {
		status = model.Prospect
	}
	return status
}

// Transition returns the athlete's status for next season.
func (m *Machine) Transition(in Input) Transition {
	a := in.Athlete
	from := a.SquadStatus.Clamp()
	to, reason := m.next(in, from)

	if to < from-1 {
		to, reason = from-1, ReasonDemotionLimited
	}
	return Transition{From: from, To: to.Clamp(), Reason: reason}
}

func (m *Machine) next(in Input, from model.SquadStatus) (model.SquadStatus, Reason) {
	c := m.cfg
	a := in.Athlete
	rating := rng.Finite(in.Stats.AverageRating, 0)
	share := in.Stats.PlayShare()
	leader := a.Attribute(model.Leadership) >= c.CaptainLeadership && rating >= c.CaptainRating

	if from == model.Captain && rating >= c.CaptainKeepRating && share >= c.CaptainKeepShare {
		return model.Captain, ReasonCaptainRetained
	}
	if from == model.KeyPlayer && rating >= c.KeyBadRating && share >= c.KeyBadShare {
		if leader {
			return model.Captain, ReasonCaptainPromoted
		}
		return model.KeyPlayer, ReasonKeyRetained
	}
	if m.exceptional(in.Stats) {
		if leader || from == model.Captain {
			return model.Captain, ReasonExceptional
		}
		return model.KeyPlayer, ReasonExceptional
	}

	gap := float64(a.Overall()) - m.ExpectedStarterSkill(in.Team)
	slots := c.StarterSlots[a.Position().Group()]
	if slots <= 0 {
		slots = 1
	}
	to, reason := m.band(gap, rank(a.Overall(), in.Teammates), slots), ReasonDepthChart

	if m.prospect(a.Potential, a.Age, in.Team) && to < model.Prospect {
		to, reason = model.Prospect, ReasonProspectFloor
	}
	if (in.Stats.Matches >= c.HeavyMatches || share >= c.HeavyShare) && to < model.Rotation {
		to, reason = model.Rotation, ReasonHeavyMinutes
	}
	return to, reason
}

// band maps a skill gap and depth-chart rank to a status.
func (m *Machine) band(gap float64, rank, slots int) model.SquadStatus {
	c := m.cfg
	switch {
	case gap >= c.KeyGap && rank < slots:
		return model.KeyPlayer
	case gap >= c.RotationGap && rank < 2*slots:
		return model.Rotation
	case gap >= c.ReserveGap:
		return model.Reserve
	}
	return model.Surplus
}

func (m *Machine) prospect(potential, age int, team model.Team) bool {
	if age > m.cfg.ProspectMaxAge {
		return false
	}
	floor := float64(m.cfg.ProspectMinPotential)
	if base := m.ExpectedStarterSkill(team); base > floor {
		floor = base
	}
	return float64(potential) >= floor
}

func (m *Machine) exceptional(s model.SeasonStats) bool {
	c := m.cfg
	if s.Goals >= c.ExceptionalGoals {
		return true
	}
	if s.Matches < c.ExceptionalMinMatches {
		return false
	}
	return s.Goals+s.Assists >= c.ExceptionalContributions ||
		rng.Finite(s.AverageRating, 0) >= c.ExceptionalRating
}

// rank counts teammates strictly better than overall.
func rank(overall int, teammates []int) int {
	n := 0
	for _, t := range teammates {
		if t > overall {
			n++
		}
	}
	return n
}

package traits

import "github.com/okian/careersim/internal/domain/model"

// State is what trait predicates read.
type State struct {
	Athlete *model.Athlete
	// Stats is the season just played. The athlete's history is expected to
	// already include it.
	Stats model.SeasonStats
}

// measure returns how far past its threshold the athlete is (1 means exactly
// at it) and whether the trait is earned at all.
type measure func(s State, threshold float64, c *Config) (float64, bool)

type rule struct {
	measure measure
	// loyalty traits are granted without a roll once the predicate holds.
	loyalty bool
	// shed reports whether a reversible trait's removal condition holds.
	shed func(s State, threshold float64) bool
}

var rules = map[model.TraitName]rule{
	model.TraitPoacher: {measure: func(s State, t float64, c *Config) (float64, bool) {
		a, st := s.Athlete, s.Stats
		if a.Position().Group() != model.Forwards || st.Matches < c.MinMatches {
			return 0, false
		}
		return atLeast(float64(st.Goals)/float64(st.Matches), t)
	}},
	model.TraitPlaymaker: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Athlete.Position() == model.GK || s.Stats.Matches < c.MinMatches {
			return 0, false
		}
		return atLeast(float64(s.Stats.Assists), t)
	}},
	model.TraitMarksman: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Stats.Goals < c.Gates.MarksmanGoals {
			return 0, false
		}
		return c.scaled(s.Athlete.Attribute(model.Shooting), t, model.AttributeMax)
	}},
	model.TraitSpeedster: {
		measure: attribute(model.Pace),
		shed: func(s State, t float64) bool {
			return s.Athlete.Attribute(model.Pace) < t-3
		},
	},
	model.TraitDribbler: {measure: attribute(model.Dribbling)},
	model.TraitEngine: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Stats.Matches < c.Gates.EngineMatches {
			return 0, false
		}
		return c.scaled(s.Athlete.Attribute(model.Stamina), t, model.AttributeMax)
	}},
	model.TraitWall: {measure: func(s State, t float64, c *Config) (float64, bool) {
		pos := s.Athlete.Position()
		if pos.Group() != model.Defenders && pos != model.CDM {
			return 0, false
		}
		return c.scaled(s.Athlete.Attribute(model.Defending), t, model.AttributeMax)
	}},
	model.TraitShotStopper: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Athlete.Position() != model.GK || s.Athlete.Attribute(model.Reflexes) < c.Gates.ShotStopperReflexes {
			return 0, false
		}
		return atLeast(float64(s.Stats.CleanSheets), t)
	}},
	model.TraitLeader: {measure: func(s State, t float64, c *Config) (float64, bool) {
		a := s.Athlete
		if a.Age < c.Gates.LeaderMinAge || a.SquadStatus < model.KeyPlayer {
			return 0, false
		}
		return c.scaled(a.Attribute(model.Leadership), t, model.AttributeMax)
	}},
	model.TraitBigGamePlayer: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Stats.Matches < c.Gates.BigGameMatches {
			return 0, false
		}
		return c.scaled(s.Stats.AverageRating, t, 9.5)
	}},
	model.TraitProdigy: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Athlete.Age > c.Gates.ProdigyMaxAge {
			return 0, false
		}
		return c.scaled(float64(s.Athlete.Overall()), t, model.AttributeMax)
	}},
	model.TraitVeteran: {measure: func(s State, t float64, c *Config) (float64, bool) {
		a := s.Athlete
		if float64(a.Age) < t || s.Stats.Matches < c.Gates.VeteranMatches || a.Overall() < c.Gates.VeteranOverall {
			return 0, false
		}
		return 1 + (float64(a.Age)-t)*0.1, true
	}},
	model.TraitIronMan: {measure: func(s State, t float64, _ *Config) (float64, bool) {
		if s.Athlete.Injury.Active() || injuredSeasons(s.Athlete, 3) > 0 {
			return 0, false
		}
		return atLeast(float64(s.Stats.Matches), t)
	}},
	model.TraitInjuryProne: {
		measure: func(s State, t float64, _ *Config) (float64, bool) {
			a := s.Athlete
			if float64(a.Career.Injuries) < t {
				return 0, false
			}
			if injuredSeasons(a, 3) < 2 && a.ReinjuryRisk < 0.3 {
				return 0, false
			}
			return 1, true
		},
		shed: func(s State, _ float64) bool {
			return !s.Athlete.Injury.Active() && injuredSeasons(s.Athlete, 2) == 0 && s.Stats.Matches >= 30
		},
	},
	model.TraitHotHead: {
		measure: func(s State, t float64, _ *Config) (float64, bool) {
			reds := float64(s.Stats.RedCards())
			yellows := float64(s.Stats.YellowCards) / 12
			if reds < t && yellows < 1 {
				return 0, false
			}
			if r := reds / t; r > yellows {
				return r, true
			}
			return yellows, true
		},
		shed: func(s State, _ float64) bool {
			for _, rec := range s.Athlete.RecentHistory(2) {
				if rec.RedCards > 0 {
					return false
				}
			}
			return s.Stats.RedCards() == 0
		},
	},
	model.TraitConsistent: {measure: func(s State, t float64, c *Config) (float64, bool) {
		recent := s.Athlete.RecentHistory(3)
		if len(recent) < 3 {
			return 0, false
		}
		low := recent[0].Rating
		for _, rec := range recent {
			if rec.Matches < c.Gates.ConsistentMatches || rec.Rating < t {
				return 0, false
			}
			if rec.Rating < low {
				low = rec.Rating
			}
		}
		return low / t, true
	}},
	model.TraitClubLegend: {loyalty: true, measure: func(s State, t float64, c *Config) (float64, bool) {
		a := s.Athlete
		if a.Overall() < c.Gates.LegendOverall || a.OnLoan() {
			return 0, false
		}
		return atLeast(float64(a.SeasonsAtClub), t)
	}},
	model.TraitOneClubMan: {loyalty: true, measure: func(s State, t float64, _ *Config) (float64, bool) {
		a := s.Athlete
		if a.Career.Clubs > 1 || a.OnLoan() {
			return 0, false
		}
		return atLeast(float64(a.Career.Seasons), t)
	}},
	model.TraitSetPiece: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Stats.Goals+s.Stats.Assists < c.Gates.SetPieceInvolvements {
			return 0, false
		}
		a := s.Athlete
		return c.scaled((a.Attribute(model.Passing)+a.Attribute(model.Shooting))/2, t, model.AttributeMax)
	}},
	model.TraitAerialThreat: {measure: func(s State, t float64, c *Config) (float64, bool) {
		if s.Stats.Goals < c.Gates.AerialGoals && s.Athlete.Position().Group() != model.Defenders {
			return 0, false
		}
		return c.scaled(s.Athlete.Attribute(model.Heading), t, model.AttributeMax)
	}},
	model.TraitCleanSheetKing: {measure: func(s State, t float64, _ *Config) (float64, bool) {
		if pos := s.Athlete.Position(); pos != model.GK && pos != model.CB {
			return 0, false
		}
		return atLeast(float64(s.Stats.CleanSheets), t)
	}},
}

func attribute(attr model.Attribute) measure {
	return func(s State, t float64, c *Config) (float64, bool) {
		return c.scaled(s.Athlete.Attribute(attr), t, model.AttributeMax)
	}
}

// atLeast is v/t when v reaches t.
func atLeast(v, t float64) (float64, bool) {
	if t <= 0 || v < t {
		return 0, false
	}
	return v / t, true
}

// scaled maps v in [t, top] linearly onto [1, DiamondRatio], for measures
// whose natural ceiling is too close to the threshold for a plain ratio.
func (c *Config) scaled(v, t, top float64) (float64, bool) {
	if v < t {
		return 0, false
	}
	if top <= t {
		return 1, true
	}
	return 1 + (v-t)/(top-t)*(c.DiamondRatio-1), true
}

func (c *Config) tier(ratio float64) model.TraitTier {
	switch {
	case ratio >= c.DiamondRatio:
		return model.Diamond
	case ratio >= c.GoldRatio:
		return model.Gold
	case ratio >= c.SilverRatio:
		return model.Silver
	}
	return model.Bronze
}

func injuredSeasons(a *model.Athlete, n int) int {
	count := 0
	for _, rec := range a.RecentHistory(n) {
		if rec.Injured {
			count++
		}
	}
	return count
}

package progression

import (
	"fmt"

	"github.com/okian/careersim/internal/domain/model"
)

// Config holds every tunable of the progression model.
type Config struct {
	// PeakStart and PeakEnd bound the plateau window, inclusive.
	PeakStart int `koanf:"peak_start"`
	PeakEnd   int `koanf:"peak_end"`

	// GrowthShare is the fraction of the potential gap closed per season
	// before the peak window.
	GrowthShare float64 `koanf:"growth_share"`
	// YouthBonus adds growth per year below PeakStart, capped at YouthBonusCap.
	YouthBonus    float64 `koanf:"youth_bonus"`
	YouthBonusCap float64 `koanf:"youth_bonus_cap"`
	// MinGrowth is the smallest positive drift while a gap remains.
	MinGrowth float64 `koanf:"min_growth"`
	// PlateauShare is the fraction of the gap closed inside the peak window.
	PlateauShare float64 `koanf:"plateau_share"`

	// DeclineRate is lost per year beyond PeakEnd, capped at DeclineCap.
	DeclineRate float64 `koanf:"decline_rate"`
	DeclineCap  float64 `koanf:"decline_cap"`
	// PhysicalDecline scales decline for athletic attributes.
	PhysicalDecline float64 `koanf:"physical_decline"`
	// MentalDecline scales decline for vision and leadership.
	MentalDecline float64 `koanf:"mental_decline"`

	// NeutralRating is the match rating that neither helps nor hurts.
	NeutralRating float64 `koanf:"neutral_rating"`
	// PerformanceWeight converts rating above neutral into attribute points at
	// full play share.
	PerformanceWeight float64 `koanf:"performance_weight"`

	// OffRoleShare is the growth share for attributes the position does not weight.
	OffRoleShare float64 `koanf:"off_role_share"`
	// OverPotentialDamping slows growth of attributes already above potential.
	OverPotentialDamping float64 `koanf:"over_potential_damping"`

	NoiseSD float64 `koanf:"noise_sd"`

	// MaxTrainingBoost is the asymptotic training multiplier gain and
	// TrainingHalfCost the spend that yields about 63% of it.
	MaxTrainingBoost float64 `koanf:"max_training_boost"`
	TrainingHalfCost float64 `koanf:"training_half_cost"`

	// PositionWeights drives the overall rating per position.
	PositionWeights map[model.Position]map[model.Attribute]float64 `koanf:"position_weights"`
}

// DefaultConfig returns the calibrated tables.
func DefaultConfig() Config {
	return Config{
		PeakStart:            24,
		PeakEnd:              29,
		GrowthShare:          0.18,
		YouthBonus:           0.05,
		YouthBonusCap:        0.5,
		MinGrowth:            0.3,
		PlateauShare:         0.05,
		DeclineRate:          0.7,
		DeclineCap:           6,
		PhysicalDecline:      1.6,
		MentalDecline:        0.4,
		NeutralRating:        6.5,
		PerformanceWeight:    1.2,
		OffRoleShare:         0.4,
		OverPotentialDamping: 0.25,
		NoiseSD:              0.6,
		MaxTrainingBoost:     0.5,
		TrainingHalfCost:     250_000,
		PositionWeights:      DefaultPositionWeights(),
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.PeakStart <= 0 || c.PeakEnd < c.PeakStart:
		return fmt.Errorf("peak window [%d,%d]: %w", c.PeakStart, c.PeakEnd, ErrInvalidConfig)
	case c.TrainingHalfCost <= 0:
		return fmt.Errorf("training_half_cost %v: %w", c.TrainingHalfCost, ErrInvalidConfig)
	case c.MaxTrainingBoost < 0:
		return fmt.Errorf("max_training_boost %v: %w", c.MaxTrainingBoost, ErrInvalidConfig)
	case c.NoiseSD < 0:
		return fmt.Errorf("noise_sd %v: %w", c.NoiseSD, ErrInvalidConfig)
	}
	for _, pos := range model.AllPositions {
		if len(c.PositionWeights[pos]) == 0 {
			return fmt.Errorf("position_weights missing %s: %w", pos, ErrInvalidConfig)
		}
	}
	return nil
}

// DefaultPositionWeights returns the weight table each position's overall is built from.
func DefaultPositionWeights() map[model.Position]map[model.Attribute]float64 {
	fullback := map[model.Attribute]float64{
		model.Defending: 0.26, model.Pace: 0.20, model.Stamina: 0.16, model.Passing: 0.14,
		model.Dribbling: 0.10, model.Physical: 0.08, model.Vision: 0.06,
	}
	wingback := map[model.Attribute]float64{
		model.Pace: 0.20, model.Stamina: 0.20, model.Defending: 0.18, model.Passing: 0.16,
		model.Dribbling: 0.16, model.Vision: 0.10,
	}
	wideMid := map[model.Attribute]float64{
		model.Pace: 0.20, model.Passing: 0.20, model.Dribbling: 0.20, model.Stamina: 0.14,
		model.Vision: 0.14, model.Shooting: 0.12,
	}
	winger := map[model.Attribute]float64{
		model.Pace: 0.24, model.Dribbling: 0.26, model.Shooting: 0.18, model.Passing: 0.14,
		model.Vision: 0.10, model.Stamina: 0.08,
	}
	return map[model.Position]map[model.Attribute]float64{
		model.GK: {
			model.Diving: 0.22, model.Handling: 0.20, model.Reflexes: 0.24, model.Positioning: 0.18,
			model.Kicking: 0.10, model.Physical: 0.03, model.Leadership: 0.03,
		},
		model.CB: {
			model.Defending: 0.32, model.Heading: 0.18, model.Physical: 0.20, model.Pace: 0.10,
			model.Passing: 0.08, model.Leadership: 0.06, model.Stamina: 0.06,
		},
		model.LB:  fullback,
		model.RB:  fullback,
		model.LWB: wingback,
		model.RWB: wingback,
		model.CDM: {
			model.Defending: 0.26, model.Passing: 0.20, model.Physical: 0.16, model.Stamina: 0.14,
			model.Vision: 0.12, model.Heading: 0.06, model.Leadership: 0.06,
		},
		model.CM: {
			model.Passing: 0.26, model.Vision: 0.20, model.Stamina: 0.14, model.Dribbling: 0.12,
			model.Defending: 0.10, model.Shooting: 0.10, model.Physical: 0.08,
		},
		model.CAM: {
			model.Passing: 0.22, model.Vision: 0.24, model.Dribbling: 0.20, model.Shooting: 0.18,
			model.Pace: 0.08, model.Stamina: 0.08,
		},
		model.LM: wideMid,
		model.RM: wideMid,
		model.LW: winger,
		model.RW: winger,
		model.CF: {
			model.Shooting: 0.24, model.Dribbling: 0.18, model.Passing: 0.16, model.Vision: 0.16,
			model.Pace: 0.14, model.Heading: 0.12,
		},
		model.ST: {
			model.Shooting: 0.34, model.Heading: 0.16, model.Pace: 0.16, model.Dribbling: 0.12,
			model.Physical: 0.14, model.Vision: 0.08,
		},
	}
}

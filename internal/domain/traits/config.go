package traits

import (
	"fmt"

	"github.com/okian/careersim/internal/domain/model"
)

// Band is the range an acquisition chance is drawn from on each evaluation.
type Band struct {
	Min float64 `koanf:"min"`
	Max float64 `koanf:"max"`
}

// Gates are the secondary conditions a trait's predicate checks before its
// threshold is measured.
type Gates struct {
	MarksmanGoals        int     `koanf:"marksman_goals"`
	EngineMatches        int     `koanf:"engine_matches"`
	ShotStopperReflexes  float64 `koanf:"shot_stopper_reflexes"`
	LeaderMinAge         int     `koanf:"leader_min_age"`
	BigGameMatches       int     `koanf:"big_game_matches"`
	ProdigyMaxAge        int     `koanf:"prodigy_max_age"`
	VeteranMatches       int     `koanf:"veteran_matches"`
	VeteranOverall       int     `koanf:"veteran_overall"`
	ConsistentMatches    int     `koanf:"consistent_matches"`
	LegendOverall        int     `koanf:"legend_overall"`
	SetPieceInvolvements int     `koanf:"set_piece_involvements"`
	AerialGoals          int     `koanf:"aerial_goals"`
}

// Config holds trait thresholds and probabilities.
type Config struct {
	// Thresholds are the gating values per trait; what each measures depends
	// on the trait (goals per match, attribute value, seasons, ...).
	Thresholds map[model.TraitName]float64 `koanf:"thresholds"`
	// Chances are the acquisition bands per trait. Loyalty traits ignore them.
	Chances map[model.TraitName]Band `koanf:"chances"`
	// DefaultChance applies to traits without their own band.
	DefaultChance Band `koanf:"default_chance"`
	// Removal is the chance of shedding a reversible trait once its removal
	// condition holds.
	Removal map[model.TraitName]float64 `koanf:"removal"`

	// Tier ratios: the measured value over its threshold.
	SilverRatio  float64 `koanf:"silver_ratio"`
	GoldRatio    float64 `koanf:"gold_ratio"`
	DiamondRatio float64 `koanf:"diamond_ratio"`

	MinMatches int   `koanf:"min_matches"`
	Gates      Gates `koanf:"gates"`
	// TemperamentBoost scales hot-head acquisition for temperamental athletes.
	TemperamentBoost float64 `koanf:"temperament_boost"`
}

// DefaultConfig returns the calibrated tables.
func DefaultConfig() Config {
	return Config{
		Thresholds: map[model.TraitName]float64{
			model.TraitPoacher:        0.5,
			model.TraitPlaymaker:      12,
			model.TraitMarksman:       82,
			model.TraitSpeedster:      88,
			model.TraitDribbler:       85,
			model.TraitEngine:         85,
			model.TraitWall:           84,
			model.TraitShotStopper:    12,
			model.TraitLeader:         80,
			model.TraitBigGamePlayer:  7.6,
			model.TraitProdigy:        75,
			model.TraitVeteran:        33,
			model.TraitIronMan:        40,
			model.TraitInjuryProne:    4,
			model.TraitHotHead:        2,
			model.TraitConsistent:     7.0,
			model.TraitClubLegend:     10,
			model.TraitOneClubMan:     12,
			model.TraitSetPiece:       80,
			model.TraitAerialThreat:   84,
			model.TraitCleanSheetKing: 18,
		},
		Chances: map[model.TraitName]Band{
			model.TraitProdigy:     {Min: 0.4, Max: 0.6},
			model.TraitInjuryProne: {Min: 0.3, Max: 0.5},
			model.TraitHotHead:     {Min: 0.25, Max: 0.4},
			model.TraitVeteran:     {Min: 0.35, Max: 0.55},
		},
		DefaultChance: Band{Min: 0.2, Max: 0.4},
		Removal: map[model.TraitName]float64{
			model.TraitInjuryProne: 0.03,
			model.TraitHotHead:     0.04,
			model.TraitSpeedster:   0.05,
		},
		SilverRatio:      1.15,
		GoldRatio:        1.35,
		DiamondRatio:     1.6,
		MinMatches:       15,
		Gates: Gates{
			MarksmanGoals:        10,
			EngineMatches:        30,
			ShotStopperReflexes:  80,
			LeaderMinAge:         26,
			BigGameMatches:       25,
			ProdigyMaxAge:        20,
			VeteranMatches:       20,
			VeteranOverall:       70,
			ConsistentMatches:    20,
			LegendOverall:        65,
			SetPieceInvolvements: 10,
			AerialGoals:          8,
		},
		TemperamentBoost: 1.5,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if !(c.SilverRatio > 1 && c.GoldRatio > c.SilverRatio && c.DiamondRatio > c.GoldRatio) {
		return fmt.Errorf("tier ratios must increase above 1: %w", ErrInvalidConfig)
	}
	for name, b := range c.Chances {
		if b.Min < 0 || b.Max > 1 || b.Min > b.Max {
			return fmt.Errorf("chance band for %s: %w", name, ErrInvalidConfig)
		}
	}
	for name, p := range c.Removal {
		if p < 0 || p > 1 {
			return fmt.Errorf("removal chance for %s: %w", name, ErrInvalidConfig)
		}
	}
	for _, name := range model.AllTraits {
		if c.Thresholds[name] <= 0 {
			return fmt.Errorf("threshold for %s: %w", name, ErrInvalidConfig)
		}
	}
	return nil
}

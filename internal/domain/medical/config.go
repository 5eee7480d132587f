package medical

import (
	"fmt"

	"github.com/okian/careersim/internal/domain/model"
)

// DurationRange is an inclusive span of weeks.
type DurationRange struct {
	MinWeeks int `koanf:"min_weeks"`
	MaxWeeks int `koanf:"max_weeks"`
}

// SeverityConfig describes one injury tier.
type SeverityConfig struct {
	Duration DurationRange `koanf:"duration"`
	// Recurrence is added to the athlete's re-injury risk.
	Recurrence float64 `koanf:"recurrence"`
	// PenaltyChance is the probability of a permanent attribute loss.
	PenaltyChance float64 `koanf:"penalty_chance"`
}

// Config holds the injury model tables.
type Config struct {
	BaseRate       float64 `koanf:"base_rate"`
	MinProbability float64 `koanf:"min_probability"`
	MaxProbability float64 `koanf:"max_probability"`

	// The age curve bottoms out at AgeCurveLow, rises by YoungSlope per year
	// below it and OldSlope per year above it, plus SharpSlope per squared
	// year past AgeCurveSharp.
	AgeCurveLow   int     `koanf:"age_curve_low"`
	AgeCurveSharp int     `koanf:"age_curve_sharp"`
	YoungSlope    float64 `koanf:"young_slope"`
	OldSlope      float64 `koanf:"old_slope"`
	SharpSlope    float64 `koanf:"sharp_slope"`

	// SeasonWeeks converts matches into matches per week for the workload factor.
	SeasonWeeks    int     `koanf:"season_weeks"`
	WorkloadBase   float64 `koanf:"workload_base"`
	WorkloadWeight float64 `koanf:"workload_weight"`

	ContactRisk map[model.Position]float64 `koanf:"contact_risk"`

	TemperamentFactor float64 `koanf:"temperament_factor"`
	StyleFactor       float64 `koanf:"style_factor"`
	HistoryWeight     float64 `koanf:"history_weight"`
	HistoryCap        int     `koanf:"history_cap"`
	IronManFactor     float64 `koanf:"iron_man_factor"`
	InjuryProneFactor float64 `koanf:"injury_prone_factor"`

	// Cumulative severity thresholds before the age shift.
	CareerEndingChance float64 `koanf:"career_ending_chance"`
	SevereChance       float64 `koanf:"severe_chance"`
	ModerateChance     float64 `koanf:"moderate_chance"`
	// SeverityAgeStart is the age from which each year adds SeverityAgeShift
	// to the severe and career-ending thresholds.
	SeverityAgeStart int     `koanf:"severity_age_start"`
	SeverityAgeShift float64 `koanf:"severity_age_shift"`

	Severities map[string]SeverityConfig `koanf:"severities"`
	PenaltyMax int                       `koanf:"penalty_max"`

	ReinjuryCap   float64 `koanf:"reinjury_cap"`
	ReinjuryDecay float64 `koanf:"reinjury_decay"`

	// Recovery is weeks healed per cycle before modifiers.
	Recovery         float64 `koanf:"recovery"`
	YoungRecovery    float64 `koanf:"young_recovery"`
	OldRecovery      float64 `koanf:"old_recovery"`
	FitRecovery      float64 `koanf:"fit_recovery"`
	FitStamina       float64 `koanf:"fit_stamina"`
	IronManRecovery  float64 `koanf:"iron_man_recovery"`
	ProneRecovery    float64 `koanf:"prone_recovery"`
	YoungRecoveryAge int     `koanf:"young_recovery_age"`
	OldRecoveryAge   int     `koanf:"old_recovery_age"`

	SetbackChance float64       `koanf:"setback_chance"`
	SetbackWeeks  DurationRange `koanf:"setback_weeks"`

	// CyclesPerSeason is how many recovery cycles a season tick applies to an
	// athlete who starts it injured.
	CyclesPerSeason int `koanf:"cycles_per_season"`
}

// DefaultConfig returns the calibrated tables.
func DefaultConfig() Config {
	return Config{
		BaseRate:       0.12,
		MinProbability: 0.01,
		MaxProbability: 0.6,
		AgeCurveLow:    25,
		AgeCurveSharp:  32,
		YoungSlope:     0.02,
		OldSlope:       0.03,
		SharpSlope:     0.04,
		SeasonWeeks:    38,
		WorkloadBase:   0.5,
		WorkloadWeight: 1,
		ContactRisk: map[model.Position]float64{
			model.GK: 0.6, model.CB: 1.15, model.LB: 1.0, model.RB: 1.0, model.LWB: 1.05,
			model.RWB: 1.05, model.CDM: 1.15, model.CM: 1.0, model.CAM: 0.95, model.LM: 0.95,
			model.RM: 0.95, model.LW: 1.0, model.RW: 1.0, model.CF: 1.05, model.ST: 1.1,
		},
		TemperamentFactor:  1.1,
		StyleFactor:        1.15,
		HistoryWeight:      0.05,
		HistoryCap:         10,
		IronManFactor:      0.6,
		InjuryProneFactor:  1.5,
		CareerEndingChance: 0.005,
		SevereChance:       0.12,
		ModerateChance:     0.33,
		SeverityAgeStart:   30,
		SeverityAgeShift:   0.015,
		Severities: map[string]SeverityConfig{
			model.Minor.String():    {Duration: DurationRange{MinWeeks: 1, MaxWeeks: 3}},
			model.Moderate.String(): {Duration: DurationRange{MinWeeks: 4, MaxWeeks: 10}, Recurrence: 0.08, PenaltyChance: 0.05},
			model.Severe.String():   {Duration: DurationRange{MinWeeks: 12, MaxWeeks: 36}, Recurrence: 0.18, PenaltyChance: 0.3},
		},
		PenaltyMax:       4,
		ReinjuryCap:      1,
		ReinjuryDecay:    0.7,
		Recovery:         1,
		YoungRecovery:    1.15,
		OldRecovery:      0.85,
		FitRecovery:      1.1,
		FitStamina:       80,
		IronManRecovery:  1.2,
		ProneRecovery:    0.85,
		YoungRecoveryAge: 23,
		OldRecoveryAge:   31,
		SetbackChance:    0.05,
		SetbackWeeks:     DurationRange{MinWeeks: 1, MaxWeeks: 3},
		CyclesPerSeason:  38,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.BaseRate < 0:
		return fmt.Errorf("base_rate %v: %w", c.BaseRate, ErrInvalidConfig)
	case c.MinProbability < 0 || c.MaxProbability > 1 || c.MinProbability > c.MaxProbability:
		return fmt.Errorf("probability bounds [%v,%v]: %w", c.MinProbability, c.MaxProbability, ErrInvalidConfig)
	case c.SeasonWeeks <= 0:
		return fmt.Errorf("season_weeks %d: %w", c.SeasonWeeks, ErrInvalidConfig)
	case c.Recovery <= 0:
		return fmt.Errorf("recovery %v: %w", c.Recovery, ErrInvalidConfig)
	case c.CareerEndingChance+c.SevereChance+c.ModerateChance > 1:
		return fmt.Errorf("severity chances exceed 1: %w", ErrInvalidConfig)
	}
	for _, s := range []model.InjurySeverity{model.Minor, model.Moderate, model.Severe} {
		d := c.Severities[s.String()].Duration
		if d.MinWeeks <= 0 || d.MaxWeeks < d.MinWeeks {
			return fmt.Errorf("%s duration [%d,%d]: %w", s, d.MinWeeks, d.MaxWeeks, ErrInvalidConfig)
		}
	}
	return nil
}

package squad

import (
	"fmt"

	"github.com/okian/careersim/internal/domain/model"
)

// Config holds the role thresholds.
type Config struct {
	CaptainKeepRating float64 `koanf:"captain_keep_rating"`
	CaptainKeepShare  float64 `koanf:"captain_keep_share"`

	// A key player has a bad season below either of these.
	KeyBadRating float64 `koanf:"key_bad_rating"`
	KeyBadShare  float64 `koanf:"key_bad_share"`

	// Promotion to captain needs both.
	CaptainLeadership float64 `koanf:"captain_leadership"`
	CaptainRating     float64 `koanf:"captain_rating"`

	HeavyMatches int     `koanf:"heavy_matches"`
	HeavyShare   float64 `koanf:"heavy_share"`

	ExceptionalGoals         int     `koanf:"exceptional_goals"`
	ExceptionalContributions int     `koanf:"exceptional_contributions"`
	ExceptionalMinMatches    int     `koanf:"exceptional_min_matches"`
	ExceptionalRating        float64 `koanf:"exceptional_rating"`

	// Expected starter skill = BaselineBase + reputation*BaselineReputation +
	// (5 - tier)*BaselineTierStep.
	BaselineBase       float64 `koanf:"baseline_base"`
	BaselineReputation float64 `koanf:"baseline_reputation"`
	BaselineTierStep   float64 `koanf:"baseline_tier_step"`

	// Gaps against the baseline for each depth-chart band.
	KeyGap      float64 `koanf:"key_gap"`
	RotationGap float64 `koanf:"rotation_gap"`
	ReserveGap  float64 `koanf:"reserve_gap"`

	ProspectMaxAge       int `koanf:"prospect_max_age"`
	ProspectMinPotential int `koanf:"prospect_min_potential"`

	// StarterSlots is how many of each group start a typical match.
	StarterSlots map[model.PositionGroup]int `koanf:"starter_slots"`
}

// DefaultConfig returns the calibrated thresholds.
func DefaultConfig() Config {
	return Config{
		CaptainKeepRating:        6.0,
		CaptainKeepShare:         0.4,
		KeyBadRating:             6.2,
		KeyBadShare:              0.3,
		CaptainLeadership:        75,
		CaptainRating:            7.2,
		HeavyMatches:             25,
		HeavyShare:               0.5,
		ExceptionalGoals:         30,
		ExceptionalContributions: 20,
		ExceptionalMinMatches:    20,
		ExceptionalRating:        7.5,
		BaselineBase:             45,
		BaselineReputation:       0.35,
		BaselineTierStep:         3,
		KeyGap:                   3,
		RotationGap:              -4,
		ReserveGap:               -10,
		ProspectMaxAge:           21,
		ProspectMinPotential:     75,
		StarterSlots: map[model.PositionGroup]int{
			model.Goalkeepers: 1,
			model.Defenders:   4,
			model.Midfielders: 3,
			model.Forwards:    3,
		},
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if !(c.KeyGap >= c.RotationGap && c.RotationGap >= c.ReserveGap) {
		return fmt.Errorf("gaps must be ordered key >= rotation >= reserve: %w", ErrInvalidConfig)
	}
	if c.CaptainKeepShare < 0 || c.CaptainKeepShare > 1 || c.HeavyShare < 0 || c.HeavyShare > 1 {
		return fmt.Errorf("shares must be within [0,1]: %w", ErrInvalidConfig)
	}
	return nil
}

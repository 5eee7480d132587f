package leaguegen

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig reports a generator configuration that cannot produce a league.
var ErrInvalidConfig = errors.New("invalid league generator config")

// Config shapes the generated world and the stand-in match output.
type Config struct {
	Countries    []string `koanf:"countries"`
	Tiers        int      `koanf:"tiers"`
	ClubsPerTier int      `koanf:"clubs_per_tier"`
	YouthSides   bool     `koanf:"youth_sides"`
	SquadSize    int      `koanf:"squad_size"`
	// RivalryChance is the chance two neighbouring clubs in a division are rivals.
	RivalryChance float64 `koanf:"rivalry_chance"`
	// CommittedWageMin and CommittedWageMax bound the share of each wage
	// budget already spent on the existing squad.
	CommittedWageMin float64 `koanf:"committed_wage_min"`
	CommittedWageMax float64 `koanf:"committed_wage_max"`

	LeagueFixtures        int     `koanf:"league_fixtures"`
	CupFixturesMax        int     `koanf:"cup_fixtures_max"`
	ContinentalFixtures   int     `koanf:"continental_fixtures"`
	ContinentalReputation float64 `koanf:"continental_reputation"`
	SendOffRate           float64 `koanf:"send_off_rate"`
	YellowRate            float64 `koanf:"yellow_rate"`
}

// DefaultConfig returns a five-division, six-country world.
func DefaultConfig() Config {
	return Config{
		Countries:             []string{"ENG", "ESP", "GER", "ITA", "FRA", "NED"},
		Tiers:                 5,
		ClubsPerTier:          6,
		YouthSides:            true,
		SquadSize:             24,
		RivalryChance:         0.35,
		CommittedWageMin:      0.55,
		CommittedWageMax:      0.85,
		LeagueFixtures:        38,
		CupFixturesMax:        6,
		ContinentalFixtures:   8,
		ContinentalReputation: 75,
		SendOffRate:           0.012,
		YellowRate:            0.12,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case len(c.Countries) == 0:
		return fmt.Errorf("countries: %w", ErrInvalidConfig)
	case c.Tiers < 1 || c.Tiers > 5:
		return fmt.Errorf("tiers %d: %w", c.Tiers, ErrInvalidConfig)
	case c.ClubsPerTier < 1:
		return fmt.Errorf("clubs_per_tier %d: %w", c.ClubsPerTier, ErrInvalidConfig)
	case c.SquadSize < 1:
		return fmt.Errorf("squad_size %d: %w", c.SquadSize, ErrInvalidConfig)
	case c.RivalryChance < 0 || c.RivalryChance > 1:
		return fmt.Errorf("rivalry_chance %.2f: %w", c.RivalryChance, ErrInvalidConfig)
	case c.CommittedWageMin < 0 || c.CommittedWageMax >= 1 || c.CommittedWageMin > c.CommittedWageMax:
		return fmt.Errorf("committed wage band: %w", ErrInvalidConfig)
	case c.LeagueFixtures < 1 || c.CupFixturesMax < 0 || c.ContinentalFixtures < 0:
		return fmt.Errorf("fixtures: %w", ErrInvalidConfig)
	case c.SendOffRate < 0 || c.YellowRate < 0:
		return fmt.Errorf("card rates: %w", ErrInvalidConfig)
	}
	return nil
}

package leaguegen

import (
	"math"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// Per-match scoring and creating rates for a regular starter rated 70.
var (
	goalRate   = map[model.PositionGroup]float64{model.Goalkeepers: 0, model.Defenders: 0.04, model.Midfielders: 0.14, model.Forwards: 0.45}
	assistRate = map[model.PositionGroup]float64{model.Goalkeepers: 0.01, model.Defenders: 0.07, model.Midfielders: 0.2, model.Forwards: 0.2}
)

func playShare(s model.SquadStatus) (matches, starts float64) {
	switch s {
	case model.Captain:
		return 0.9, 0.97
	case model.KeyPlayer:
		return 0.85, 0.95
	case model.Rotation:
		return 0.55, 0.6
	case model.Prospect:
		return 0.3, 0.4
	case model.Reserve:
		return 0.15, 0.3
	case model.Surplus:
		return 0.05, 0.3
	}
	return 0.5, 0.5
}

// Fixtures returns the club's matches per competition for one season.
func (g *Generator) Fixtures(team model.Team) map[model.Competition]int {
	out := map[model.Competition]int{
		model.League: g.cfg.LeagueFixtures,
		model.Cup:    g.rand.IntRange(1, max(1, g.cfg.CupFixturesMax)),
	}
	if team.Reputation >= g.cfg.ContinentalReputation && !team.Youth {
		out[model.Continental] = g.cfg.ContinentalFixtures
	}
	return out
}

// Season produces the stand-in match output for the athlete at team. Time
// already booked out by an injury shrinks the available matches.
func (g *Generator) Season(a *model.Athlete, team model.Team) model.SeasonStats {
	fixtures := g.Fixtures(team)
	total := 0
	for _, n := range fixtures {
		total += n
	}
	stats := model.SeasonStats{Fixtures: fixtures, SendOffs: map[model.Competition]int{}}
	if a.Retired {
		return stats
	}

	missed := 0.0
	if a.Injury.Active() {
		missed = 1
		if a.Injury.Severity != model.CareerEnding {
			missed = rng.Clamp(a.Injury.WeeksRemaining/float64(g.cfg.LeagueFixtures), 0, 1)
		}
	}
	stats.AvailableMatches = int(math.Round(float64(total) * (1 - missed)))

	share, startShare := playShare(a.SquadStatus)
	played := float64(stats.AvailableMatches) * rng.Clamp(share*g.rand.Uniform(0.85, 1.1), 0, 1)
	stats.Matches = int(math.Round(played))
	stats.Starts = int(math.Round(float64(stats.Matches) * startShare))
	if stats.Matches == 0 {
		return stats
	}

	level := g.market.Profile(team).Level
	rating := 6.4 + (float64(a.Overall())-level)/12 + g.rand.Gaussian(0, 0.3)
	stats.AverageRating = math.Round(rng.Clamp(rating, 4.5, 9.5)*100) / 100

	// Substitute appearances count for roughly a third of a start.
	effective := float64(stats.Starts) + float64(stats.Matches-stats.Starts)*0.35
	grp := a.Position().Group()
	shoot := math.Pow(a.Attribute(model.Shooting)/70, 2)
	pass := math.Pow(a.Attribute(model.Passing)/70, 2)
	stats.Goals = g.rand.Poisson(goalRate[grp] * shoot * effective)
	stats.Assists = g.rand.Poisson(assistRate[grp] * pass * effective)
	if grp == model.Goalkeepers || grp == model.Defenders {
		p := 0.15 + rng.Clamp(team.Reputation, 0, 100)/100*0.25
		stats.CleanSheets = min(g.rand.Poisson(p*effective), stats.Matches)
	}

	temper := 1.0
	if a.Personality == model.Temperamental {
		temper *= 1.8
	}
	if a.Traits.Has(model.TraitHotHead) {
		temper *= 1.5
	}
	stats.YellowCards = g.rand.Poisson(g.cfg.YellowRate * temper * float64(stats.Matches))
	for _, c := range model.AllCompetitions {
		n := fixtures[c]
		if n == 0 {
			continue
		}
		in := float64(stats.Matches) * float64(n) / float64(total)
		if reds := g.rand.Poisson(g.cfg.SendOffRate * temper * in); reds > 0 {
			stats.SendOffs[c] = reds
		}
	}
	return stats
}

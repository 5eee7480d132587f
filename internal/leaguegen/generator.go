// Package leaguegen builds a procedural world for a career to run in: clubs
// with budgets and styles, rivalries, squad depth, young prospects, and the
// per-season match output a league simulator would otherwise supply.
package leaguegen

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/okian/careersim/internal/adapters/repository"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/rng"
)

// Reputation bands per division, top flight first.
var tierReputation = [5][2]float64{
	{68, 95},
	{52, 74},
	{38, 58},
	{24, 44},
	{10, 30},
}

var (
	cities = []string{
		"Northbridge", "Easton", "Westmoor", "Southport", "Kingsford", "Ashvale", "Redcliff",
		"Stonehaven", "Millbrook", "Harrowgate", "Lakeside", "Brightwater", "Oakham", "Elmstead",
		"Fairhaven", "Greyfield", "Highmoor", "Ironbridge", "Larkspur", "Marlow", "Newhaven",
		"Pinecrest", "Queensbury", "Rosedale", "Silverton", "Thornbury",
	}
	suffixes = []string{"United", "City", "Athletic", "Rovers", "Wanderers", "FC", "Sporting", "Albion"}
	given    = []string{"Leo", "Marco", "Sam", "Tomas", "Ivan", "Jonas", "Kai", "Luca", "Noah", "Rafa", "Ben", "Omar"}
	family   = []string{"Reyes", "Novak", "Hart", "Lindqvist", "Moreau", "Keane", "Bauer", "Costa", "Silva", "Ward", "Okafor", "Rossi"}
)

// Generator produces clubs, prospects and season output.
type Generator struct {
	cfg    Config
	market *transfer.Engine
	rater  model.Rater
	rand   *rng.RNG
	ids    func() string
	log    logger.Logger
}

// New creates a Generator. The market engine prices clubs and wages; the
// rater derives every generated athlete's overall.
func New(cfg Config, market *transfer.Engine, rater model.Rater, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:    cfg,
		market: market,
		rater:  rater,
		rand:   rng.New(1),
		ids:    uuid.NewString,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// League generates every club, its finances, depth, youth side, rivalries and
// the ratings of the players around the simulated athlete.
func (g *Generator) League(ctx context.Context) (repository.League, error) {
	l := repository.League{Rosters: map[string]map[model.PositionGroup][]int{}}
	n := 0

	for _, country := range g.cfg.Countries {
		strength := g.rand.Uniform(0.85, 1.05)
		for tier := 1; tier <= g.cfg.Tiers; tier++ {
			select {
			case <-ctx.Done():
				return repository.League{}, fmt.Errorf("league generation cancelled: %w", ctx.Err())
			default:
			}
			division := make([]model.Team, 0, g.cfg.ClubsPerTier)
			for i := 0; i < g.cfg.ClubsPerTier; i++ {
				band := tierReputation[tier-1]
				rep := rng.Clamp(g.rand.Uniform(band[0], band[1])*strength, 1, 100)
				team := g.club(g.clubName(n), country, tier, rep, false, "")
				n++
				division = append(division, team)
				l.Rosters[team.ID] = g.rosters(team)

				if g.cfg.YouthSides && tier == 1 {
					youth := g.club(team.Name+" U21", country, min(tier+3, 5), rep*0.5, true, team.ID)
					l.Teams = append(l.Teams, youth)
					l.Rosters[youth.ID] = g.rosters(youth)
				}
			}
			for i := 0; i+1 < len(division); i++ {
				if g.rand.Chance(g.cfg.RivalryChance) {
					l.Rivalries = append(l.Rivalries, model.Rivalry{A: division[i].ID, B: division[i+1].ID})
				}
			}
			l.Teams = append(l.Teams, division...)
		}
	}

	if err := l.Validate(); err != nil {
		return repository.League{}, err
	}
	g.log.Info(ctx, "generated league",
		logger.Int("clubs", len(l.Teams)),
		logger.Int("rivalries", len(l.Rivalries)),
		logger.Int("countries", len(g.cfg.Countries)),
	)
	return l, nil
}

func (g *Generator) club(name, country string, tier int, rep float64, youth bool, parent string) model.Team {
	team := model.Team{
		ID:         g.ids(),
		Name:       name,
		Reputation: math.Round(rep*10) / 10,
		LeagueTier: tier,
		Country:    country,
		Youth:      youth,
		ParentID:   parent,
		Style:      model.AllStyles[g.rand.Pick(len(model.AllStyles))],
		Depth:      map[model.PositionGroup]int{},
	}
	for _, grp := range model.AllGroups {
		team.Depth[grp] = g.depth(grp)
	}

	prof := g.market.Profile(team)
	committed := g.rand.Uniform(g.cfg.CommittedWageMin, g.cfg.CommittedWageMax)
	team.Finances = &model.Finances{
		TransferBudget:            prof.TransferBudget,
		RemainingTransferBudget:   int64(float64(prof.TransferBudget) * g.rand.Uniform(0.6, 1)),
		WageBudgetWeekly:          prof.WageBudgetWeekly,
		RemainingWageBudgetWeekly: int64(float64(prof.WageBudgetWeekly) * (1 - committed)),
	}
	return team
}

func (g *Generator) depth(grp model.PositionGroup) int {
	switch grp {
	case model.Goalkeepers:
		return g.rand.IntRange(2, 4)
	case model.Forwards:
		return g.rand.IntRange(3, 7)
	case model.Defenders, model.Midfielders:
		return g.rand.IntRange(6, 10)
	}
	return 0
}

// rosters rates the existing players per group around the club's level.
func (g *Generator) rosters(team model.Team) map[model.PositionGroup][]int {
	level := g.market.Profile(team).Level
	out := make(map[model.PositionGroup][]int, len(team.Depth))
	for _, grp := range model.AllGroups {
		overalls := make([]int, team.Depth[grp])
		for i := range overalls {
			overalls[i] = rng.Round(rng.Clamp(g.rand.Gaussian(level-2, 5), 35, 95))
		}
		out[grp] = overalls
	}
	return out
}

func (g *Generator) clubName(n int) string {
	city := cities[n%len(cities)]
	suffix := suffixes[(n/len(cities)+g.rand.Pick(len(suffixes)))%len(suffixes)]
	return city + " " + suffix
}

// Prospect creates an athlete at team, rated a little below the club's
// starters and with headroom that shrinks with age.
func (g *Generator) Prospect(team model.Team, pos model.Position, age int) *model.Athlete {
	level := g.market.Profile(team).Level
	target := level - 14 + float64(age-16)*2.5

	attrs := model.Attributes{}
	for _, attr := range model.AllAttributes {
		mean := target
		if attr.Goalkeeping() != (pos == model.GK) {
			mean = target - 30
		}
		attrs[attr] = g.rand.Gaussian(mean, 6)
	}
	name := given[g.rand.Pick(len(given))] + " " + family[g.rand.Pick(len(family))]
	a := model.NewAthlete(g.ids(), name, pos, age, attrs, g.rater)

	headroom := 0
	switch {
	case age <= 18:
		headroom = g.rand.IntRange(12, 28)
	case age <= 21:
		headroom = g.rand.IntRange(6, 18)
	case age <= 25:
		headroom = g.rand.IntRange(1, 8)
	}
	a.Potential = min(a.Overall()+headroom, int(model.AttributeMax))
	a.Nationality = team.Country
	a.TeamID = team.ID
	a.Personality = model.AllPersonalities[g.rand.Pick(len(model.AllPersonalities))]
	a.AgentQuality = g.rand.IntRange(20, 90)
	a.SquadStatus = model.Prospect
	if age > 21 {
		a.SquadStatus = model.Rotation
	}
	a.SeniorDebut = age >= 18 && !team.Youth
	a.Wage = g.market.Wage(a, team)
	a.Career.Clubs = 1
	return a
}

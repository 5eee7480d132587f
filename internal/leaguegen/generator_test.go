package leaguegen_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/internal/leaguegen"
	"github.com/okian/careersim/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func newGenerator(cfg leaguegen.Config, seed int64) *leaguegen.Generator {
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	market := transfer.New(squad.New(squad.DefaultConfig()))
	rater := progression.NewRater(progression.DefaultPositionWeights())
	g, err := leaguegen.New(cfg, market, rater, leaguegen.WithRNG(rng.New(seed)), leaguegen.WithIDGenerator(ids))
	So(err, ShouldBeNil)
	return g
}

func TestLeague(t *testing.T) {
	Convey("Given a two-country, three-division generator", t, func() {
		cfg := leaguegen.DefaultConfig()
		cfg.Countries = []string{"ENG", "ESP"}
		cfg.Tiers = 3
		cfg.ClubsPerTier = 4
		cfg.RivalryChance = 1
		g := newGenerator(cfg, 7)

		Convey("When a league is generated", func() {
			l, err := g.League(context.Background())
			So(err, ShouldBeNil)

			Convey("Then every division and top-flight youth side exists", func() {
				So(len(l.Teams), ShouldEqual, 2*3*4+2*4)
				youth := 0
				for _, team := range l.Teams {
					if team.Youth {
						youth++
						So(team.ParentID, ShouldNotBeEmpty)
						So(team.LeagueTier, ShouldEqual, 4)
					}
				}
				So(youth, ShouldEqual, 8)
			})

			Convey("Then every club carries a consistent ledger", func() {
				for _, team := range l.Teams {
					f := team.Finances
					So(f, ShouldNotBeNil)
					So(f.RemainingTransferBudget, ShouldBeLessThanOrEqualTo, f.TransferBudget)
					So(f.RemainingWageBudgetWeekly, ShouldBeLessThan, f.WageBudgetWeekly)
					So(f.RemainingWageBudgetWeekly, ShouldBeGreaterThan, 0)
					So(team.Reputation, ShouldBeBetweenOrEqual, 0.0, 100.0)
				}
			})

			Convey("Then top-flight clubs outrank the third division on average", func() {
				sum := map[int]float64{}
				count := map[int]int{}
				for _, team := range l.Teams {
					if !team.Youth {
						sum[team.LeagueTier] += team.Reputation
						count[team.LeagueTier]++
					}
				}
				So(sum[1]/float64(count[1]), ShouldBeGreaterThan, sum[3]/float64(count[3]))
			})

			Convey("Then neighbours in a division are rivals", func() {
				So(len(l.Rivalries), ShouldEqual, 2*3*3)
			})

			Convey("Then rosters follow the depth chart", func() {
				for _, team := range l.Teams {
					for grp, size := range team.Depth {
						So(len(l.Rosters[team.ID][grp]), ShouldEqual, size)
					}
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := g.League(ctx)

			Convey("Then generation stops", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given an invalid configuration", t, func() {
		cfg := leaguegen.DefaultConfig()
		cfg.Tiers = 0
		_, err := leaguegen.New(cfg, transfer.New(squad.New(squad.DefaultConfig())), progression.NewRater(nil))

		Convey("Then construction fails", func() {
			So(errors.Is(err, leaguegen.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestProspectAndSeason(t *testing.T) {
	Convey("Given a generator and a top-flight club", t, func() {
		g := newGenerator(leaguegen.DefaultConfig(), 11)
		team := model.Team{ID: "elite", Reputation: 90, LeagueTier: 1, Style: model.StylePressing, Country: "ENG"}

		Convey("When a 17-year-old striker is created", func() {
			a := g.Prospect(team, model.ST, 17)

			Convey("Then the prospect is placed and has headroom", func() {
				So(a.TeamID, ShouldEqual, "elite")
				So(a.Age, ShouldEqual, 17)
				So(a.SquadStatus, ShouldEqual, model.Prospect)
				So(a.Potential, ShouldBeGreaterThanOrEqualTo, a.Overall()+12)
				So(a.Potential, ShouldBeLessThanOrEqualTo, 99)
				So(a.Wage, ShouldBeGreaterThan, 0)
				So(a.Nationality, ShouldEqual, "ENG")
				So(a.SeniorDebut, ShouldBeFalse)
			})
		})

		Convey("When a fit key player plays a season", func() {
			a := g.Prospect(team, model.ST, 24)
			a.SquadStatus = model.KeyPlayer
			stats := g.Season(a, team)

			Convey("Then the output is internally consistent", func() {
				So(stats.Fixtures[model.League], ShouldEqual, 38)
				So(stats.Fixtures[model.Continental], ShouldEqual, 8)
				So(stats.Matches, ShouldBeLessThanOrEqualTo, stats.AvailableMatches)
				So(stats.Starts, ShouldBeLessThanOrEqualTo, stats.Matches)
				So(stats.Matches, ShouldBeGreaterThan, 20)
				So(stats.AverageRating, ShouldBeBetweenOrEqual, 4.5, 9.5)
				So(stats.CleanSheets, ShouldEqual, 0)
			})
		})

		Convey("When the athlete is out for the whole season", func() {
			a := g.Prospect(team, model.CB, 26)
			a.Injury = &model.Injury{Severity: model.Severe, WeeksRemaining: 40}
			stats := g.Season(a, team)

			Convey("Then nothing is available", func() {
				So(stats.AvailableMatches, ShouldEqual, 0)
				So(stats.Matches, ShouldEqual, 0)
				So(stats.PlayShare(), ShouldEqual, 0.0)
			})
		})

		Convey("When the athlete has retired", func() {
			a := g.Prospect(team, model.CM, 36)
			a.Retired = true
			stats := g.Season(a, team)

			Convey("Then only the club fixtures are reported", func() {
				So(stats.Matches, ShouldEqual, 0)
				So(stats.Fixtures, ShouldNotBeEmpty)
			})
		})
	})
}

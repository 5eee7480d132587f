package traits_test

import (
	"testing"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/traits"
	"github.com/okian/careersim/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

var rater = progression.NewRater(progression.DefaultPositionWeights())

func athlete(pos model.Position, age int, set map[model.Attribute]float64) *model.Athlete {
	attrs := model.Attributes{}
	for _, a := range model.AllAttributes {
		attrs[a] = 70
	}
	for k, v := range set {
		attrs[k] = v
	}
	return model.NewAthlete("t", "T", pos, age, attrs, rater)
}

func find(events []traits.Event, name model.TraitName) (traits.Event, bool) {
	for _, ev := range events {
		if ev.Trait == name {
			return ev, true
		}
	}
	return traits.Event{}, false
}

func TestAcquisition(t *testing.T) {
	Convey("Given an engine whose rolls always succeed", t, func() {
		e := traits.New(traits.DefaultConfig(), rng.New(5), rng.Always)
		a := athlete(model.ST, 25, nil)

		Convey("A prolific striker becomes a poacher", func() {
			events := e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 30, Goals: 20, AverageRating: 7.0}})
			ev, ok := find(events, model.TraitPoacher)
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, traits.Acquired)
			So(ev.To, ShouldEqual, model.Silver)
			So(a.Traits[model.TraitPoacher], ShouldEqual, model.Silver)

			Convey("Re-triggering at the same tier changes nothing", func() {
				events := e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 30, Goals: 20, AverageRating: 7.0}})
				_, ok := find(events, model.TraitPoacher)
				So(ok, ShouldBeFalse)
				So(len(a.Traits.List()), ShouldEqual, len(a.Traits))
			})

			Convey("A lower tier never downgrades", func() {
				e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 30, Goals: 15, AverageRating: 7.0}})
				So(a.Traits[model.TraitPoacher], ShouldEqual, model.Silver)
			})

			Convey("A higher tier upgrades in place", func() {
				events := e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 30, Goals: 25, AverageRating: 7.0}})
				ev, ok := find(events, model.TraitPoacher)
				So(ok, ShouldBeTrue)
				So(ev.Kind, ShouldEqual, traits.Upgraded)
				So(ev.From, ShouldEqual, model.Silver)
				So(ev.To, ShouldEqual, model.Diamond)
				n := 0
				for _, tr := range a.Traits.List() {
					if tr.Name == model.TraitPoacher {
						n++
					}
				}
				So(n, ShouldEqual, 1)
			})
		})

		Convey("A defender is never a poacher", func() {
			d := athlete(model.CB, 25, nil)
			e.Evaluate(traits.State{Athlete: d, Stats: model.SeasonStats{Matches: 30, Goals: 20}})
			So(d.Traits.Has(model.TraitPoacher), ShouldBeFalse)
		})

		Convey("Non-reversible traits are never removed", func() {
			a.Traits.Grant(model.TraitPoacher, model.Gold)
			e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 2}})
			So(a.Traits[model.TraitPoacher], ShouldEqual, model.Gold)
		})
	})

	Convey("Given an engine whose rolls always fail", t, func() {
		e := traits.New(traits.DefaultConfig(), rng.New(5), rng.Never)

		Convey("Eligible rolled traits are not granted", func() {
			a := athlete(model.ST, 25, nil)
			events := e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 30, Goals: 20}})
			So(events, ShouldBeEmpty)
			So(a.Traits.Has(model.TraitPoacher), ShouldBeFalse)
		})

		Convey("Loyalty traits are granted deterministically", func() {
			a := athlete(model.CM, 31, nil)
			a.SeasonsAtClub = 12
			a.Career.Seasons = 12
			a.Career.Clubs = 1
			events := e.Evaluate(traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 10}})
			So(a.Traits.Has(model.TraitClubLegend), ShouldBeTrue)
			So(a.Traits.Has(model.TraitOneClubMan), ShouldBeTrue)
			So(len(events), ShouldEqual, 2)
		})
	})
}

func TestRemoval(t *testing.T) {
	Convey("Given an injury-prone athlete with two clean seasons", t, func() {
		a := athlete(model.CM, 27, nil)
		a.Traits.Grant(model.TraitInjuryProne, model.Bronze)
		a.AppendHistory(model.SeasonRecord{Season: 1, Matches: 32})
		a.AppendHistory(model.SeasonRecord{Season: 2, Matches: 34})
		state := traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 34}}

		Convey("A successful removal roll sheds the tag", func() {
			events := traits.New(traits.DefaultConfig(), rng.New(1), rng.Always).Evaluate(state)
			ev, ok := find(events, model.TraitInjuryProne)
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, traits.Removed)
			So(a.Traits.Has(model.TraitInjuryProne), ShouldBeFalse)
		})

		Convey("A failed removal roll keeps it", func() {
			traits.New(traits.DefaultConfig(), rng.New(1), rng.Never).Evaluate(state)
			So(a.Traits.Has(model.TraitInjuryProne), ShouldBeTrue)
		})
	})

	Convey("A speedster who lost pace can shed the trait", t, func() {
		a := athlete(model.LW, 33, map[model.Attribute]float64{model.Pace: 80})
		a.Traits.Grant(model.TraitSpeedster, model.Silver)
		traits.New(traits.DefaultConfig(), rng.New(1), rng.Always).Evaluate(traits.State{Athlete: a})
		So(a.Traits.Has(model.TraitSpeedster), ShouldBeFalse)
	})
}

func TestConfig(t *testing.T) {
	Convey("Given the default tables", t, func() {
		cfg := traits.DefaultConfig()
		So(cfg.Validate(), ShouldBeNil)

		Convey("Shedding a trait is far less likely than earning one", func() {
			for name, p := range cfg.Removal {
				So(p, ShouldBeGreaterThan, 0)
				So(p, ShouldBeLessThanOrEqualTo, cfg.DefaultChance.Min/4)
				if band, ok := cfg.Chances[name]; ok {
					So(p, ShouldBeLessThanOrEqualTo, band.Min/4)
				}
			}
		})

		Convey("A removal chance outside [0, 1] is rejected", func() {
			cfg.Removal[model.TraitHotHead] = 1.5
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})

	Convey("Given a striker with elite shooting and six goals", t, func() {
		a := athlete(model.ST, 25, map[model.Attribute]float64{model.Shooting: 92})
		state := traits.State{Athlete: a, Stats: model.SeasonStats{Matches: 30, Goals: 6}}

		Convey("The default goal gate keeps marksman out of reach", func() {
			_, ok := traits.New(traits.DefaultConfig(), nil, nil).Eligible(model.TraitMarksman, state)
			So(ok, ShouldBeFalse)
		})

		Convey("A lowered goal gate lets the shooting threshold decide", func() {
			cfg := traits.DefaultConfig()
			cfg.Gates.MarksmanGoals = 5
			_, ok := traits.New(cfg, nil, nil).Eligible(model.TraitMarksman, state)
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a 23-year-old key player with strong leadership", t, func() {
		a := athlete(model.CB, 23, map[model.Attribute]float64{model.Leadership: 90})
		a.SquadStatus = model.KeyPlayer
		state := traits.State{Athlete: a}

		Convey("The leader age gate follows the config", func() {
			_, ok := traits.New(traits.DefaultConfig(), nil, nil).Eligible(model.TraitLeader, state)
			So(ok, ShouldBeFalse)
			cfg := traits.DefaultConfig()
			cfg.Gates.LeaderMinAge = 22
			_, ok = traits.New(cfg, nil, nil).Eligible(model.TraitLeader, state)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestEligibility(t *testing.T) {
	Convey("Given the default engine", t, func() {
		e := traits.New(traits.DefaultConfig(), nil, nil)

		Convey("Tiers follow the threshold ratio", func() {
			So(e.Tier(1.0), ShouldEqual, model.Bronze)
			So(e.Tier(1.2), ShouldEqual, model.Silver)
			So(e.Tier(1.4), ShouldEqual, model.Gold)
			So(e.Tier(1.7), ShouldEqual, model.Diamond)
		})

		Convey("A maxed attribute reaches diamond", func() {
			a := athlete(model.RW, 24, map[model.Attribute]float64{model.Pace: 99})
			tier, ok := e.Eligible(model.TraitSpeedster, traits.State{Athlete: a})
			So(ok, ShouldBeTrue)
			So(tier, ShouldEqual, model.Diamond)
		})

		Convey("Consistency needs three strong seasons", func() {
			a := athlete(model.CM, 28, nil)
			for i := 0; i < 2; i++ {
				a.AppendHistory(model.SeasonRecord{Matches: 30, Rating: 7.4})
			}
			_, ok := e.Eligible(model.TraitConsistent, traits.State{Athlete: a})
			So(ok, ShouldBeFalse)
			a.AppendHistory(model.SeasonRecord{Matches: 30, Rating: 7.1})
			tier, ok := e.Eligible(model.TraitConsistent, traits.State{Athlete: a})
			So(ok, ShouldBeTrue)
			So(tier, ShouldEqual, model.Bronze)
		})

		Convey("A sent-off player qualifies as a hot head", func() {
			a := athlete(model.CDM, 24, nil)
			_, ok := e.Eligible(model.TraitHotHead, traits.State{Athlete: a, Stats: model.SeasonStats{
				SendOffs: map[model.Competition]int{model.League: 1, model.Cup: 1},
			}})
			So(ok, ShouldBeTrue)
		})

		Convey("Unknown traits are never eligible", func() {
			_, ok := e.Eligible(model.TraitName("ghost"), traits.State{Athlete: athlete(model.CM, 24, nil)})
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Default config is valid", t, func() {
		So(traits.DefaultConfig().Validate(), ShouldBeNil)
	})
}

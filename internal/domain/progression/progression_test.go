package progression_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func flat(v float64) model.Attributes {
	attrs := model.Attributes{}
	for _, a := range model.AllAttributes {
		attrs[a] = v
	}
	return attrs
}

func quietConfig() progression.Config {
	cfg := progression.DefaultConfig()
	cfg.NoiseSD = 0
	return cfg
}

func TestRater(t *testing.T) {
	Convey("Given the default rater", t, func() {
		e := progression.NewEngine()

		Convey("A uniform attribute set rates at that value for every position", func() {
			for _, pos := range model.AllPositions {
				So(e.Overall(flat(70), pos), ShouldEqual, 70)
			}
		})

		Convey("A striker is rated on shooting more than on defending", func() {
			attrs := flat(60)
			attrs[model.Shooting] = 90
			striker := e.Overall(attrs, model.ST)
			defender := e.Overall(attrs, model.CB)
			So(striker, ShouldBeGreaterThan, defender)
		})

		Convey("NaN and missing attributes read as the midpoint of their range", func() {
			attrs := model.Attributes{model.Pace: math.NaN()}
			a := model.NewAthlete("a", "A", model.LW, 20, attrs, e.Rater())
			So(a.Attribute(model.Pace), ShouldEqual, 55)
			So(a.Attribute(model.Reflexes), ShouldEqual, 50)
			So(a.Overall(), ShouldEqual, e.Overall(a.Attributes(), model.LW))
		})

		Convey("An unknown position falls back to the outfield mean", func() {
			r := progression.NewRater(nil)
			So(r.Overall(flat(64), model.Position("XX")), ShouldEqual, 64)
		})
	})
}

func TestOverallNeverDrifts(t *testing.T) {
	Convey("Given athletes progressed over many seasons", t, func() {
		r := rng.New(42)
		e := progression.NewEngine(progression.WithRNG(r))

		for i := 0; i < 200; i++ {
			attrs := model.Attributes{}
			for _, a := range model.AllAttributes {
				attrs[a] = r.Uniform(-20, 130)
			}
			if i%7 == 0 {
				attrs[model.Passing] = math.Inf(1)
				attrs[model.Diving] = math.NaN()
			}
			pos := model.AllPositions[r.Pick(len(model.AllPositions))]
			a := model.NewAthlete("x", "X", pos, 16+r.IntRange(0, 22), attrs, e.Rater())
			a.Potential = r.IntRange(40, 99)

			stats := model.SeasonStats{
				Matches:          r.IntRange(0, 50),
				AvailableMatches: 50,
				AverageRating:    r.Uniform(4, 10),
			}
			if i%11 == 0 {
				stats.AverageRating = math.NaN()
			}
			e.Progress(a, stats, r.Uniform(0.5, 2))

			So(a.Overall(), ShouldEqual, e.Overall(a.Attributes(), a.Position()))
			for attr, v := range a.Attributes() {
				lo, hi := model.AttributeRange(attr)
				So(math.IsNaN(v), ShouldBeFalse)
				So(v, ShouldBeBetweenOrEqual, lo, hi)
				So(v, ShouldEqual, math.Round(v))
			}
			So(a.Potential, ShouldBeGreaterThanOrEqualTo, a.Overall())
		}
	})
}

func TestProgressAgePhases(t *testing.T) {
	Convey("Given a noiseless engine", t, func() {
		e := progression.NewEngine(progression.WithConfig(quietConfig()))
		neutral := model.SeasonStats{Matches: 30, AvailableMatches: 38, AverageRating: 6.5}

		Convey("A teenager with a large potential gap grows", func() {
			a := model.NewAthlete("y", "Y", model.CM, 18, flat(55), e.Rater())
			a.Potential = 85
			res := e.Progress(a, neutral, 1)
			So(res.OverallAfter, ShouldBeGreaterThan, res.OverallBefore)
			So(res.Deltas[model.Passing], ShouldBeGreaterThan, res.Deltas[model.Heading])
		})

		Convey("A veteran declines, physical attributes fastest", func() {
			a := model.NewAthlete("v", "V", model.CM, 34, flat(75), e.Rater())
			res := e.Progress(a, neutral, 1)
			So(res.OverallAfter, ShouldBeLessThan, res.OverallBefore)
			So(res.Deltas[model.Stamina], ShouldBeLessThan, res.Deltas[model.Vision])
		})

		Convey("A strong season beats a poor one", func() {
			good := model.NewAthlete("g", "G", model.ST, 26, flat(70), e.Rater())
			good.Potential = 80
			poor := model.NewAthlete("p", "P", model.ST, 26, flat(70), e.Rater())
			poor.Potential = 80
			e.Progress(good, model.SeasonStats{Matches: 34, AvailableMatches: 38, AverageRating: 7.8}, 1)
			e.Progress(poor, model.SeasonStats{Matches: 34, AvailableMatches: 38, AverageRating: 5.5}, 1)
			So(good.Overall(), ShouldBeGreaterThan, poor.Overall())
		})

		Convey("Training amplifies growth", func() {
			base := model.NewAthlete("b", "B", model.CB, 19, flat(55), e.Rater())
			base.Potential = 85
			trained := model.NewAthlete("t", "T", model.CB, 19, flat(55), e.Rater())
			trained.Potential = 85
			e.Progress(base, neutral, 1)
			e.Progress(trained, neutral, e.TrainingMultiplier(1_000_000))
			So(trained.Overall(), ShouldBeGreaterThan, base.Overall())
		})

		Convey("Potential follows an overall that overtakes it", func() {
			a := model.NewAthlete("o", "O", model.ST, 20, flat(70), e.Rater())
			a.Potential = 60
			res := e.Progress(a, model.SeasonStats{Matches: 38, AvailableMatches: 38, AverageRating: 8.5}, 1)
			So(res.PotentialRaised, ShouldBeTrue)
			So(a.Potential, ShouldEqual, a.Overall())
		})
	})
}

func TestInvestTraining(t *testing.T) {
	Convey("Given an athlete and an engine", t, func() {
		ctx := context.Background()
		e := progression.NewEngine()
		a := model.NewAthlete("t", "T", model.CM, 21, flat(60), e.Rater())

		Convey("The first investment of a season returns a boost", func() {
			m, err := e.InvestTraining(ctx, a, 1, 500_000)
			So(err, ShouldBeNil)
			So(m, ShouldBeGreaterThan, 1)
			So(m, ShouldBeLessThan, 1.5)

			Convey("And a second one in the same season is rejected", func() {
				m2, err := e.InvestTraining(ctx, a, 1, 500_000)
				So(errors.Is(err, progression.ErrTrainingAlreadyApplied), ShouldBeTrue)
				So(m2, ShouldEqual, 1)
			})

			Convey("But the next season is open again", func() {
				_, err := e.InvestTraining(ctx, a, 2, 100)
				So(err, ShouldBeNil)
			})
		})

		Convey("The multiplier has diminishing returns", func() {
			So(e.TrainingMultiplier(0), ShouldEqual, 1)
			So(e.TrainingMultiplier(-5), ShouldEqual, 1)
			So(e.TrainingMultiplier(math.NaN()), ShouldEqual, 1)
			low := e.TrainingMultiplier(100_000) - 1
			high := e.TrainingMultiplier(200_000) - 1
			So(high, ShouldBeGreaterThan, low)
			So(high, ShouldBeLessThan, 2*low)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Default config is valid", t, func() {
		So(progression.DefaultConfig().Validate(), ShouldBeNil)
	})
	Convey("A reversed peak window is rejected", t, func() {
		cfg := progression.DefaultConfig()
		cfg.PeakEnd = cfg.PeakStart - 1
		So(errors.Is(cfg.Validate(), progression.ErrInvalidConfig), ShouldBeTrue)
	})
}

package medical_test

import (
	"math"
	"testing"

	"github.com/okian/careersim/internal/domain/medical"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

var rater = progression.NewRater(progression.DefaultPositionWeights())

func athlete(age int, stamina float64) *model.Athlete {
	attrs := model.Attributes{}
	for _, a := range model.AllAttributes {
		attrs[a] = 70
	}
	attrs[model.Stamina] = stamina
	return model.NewAthlete("m", "M", model.CM, age, attrs, rater)
}

var season = model.SeasonStats{Matches: 34, AvailableMatches: 38, AverageRating: 6.8}

func TestInjuryProbability(t *testing.T) {
	Convey("Given the default ledger", t, func() {
		l := medical.New()

		Convey("Risk is lowest in the mid twenties and rises sharply past 32", func() {
			p20 := l.InjuryProbability(athlete(20, 70), season, model.StyleBalanced)
			p25 := l.InjuryProbability(athlete(25, 70), season, model.StyleBalanced)
			p30 := l.InjuryProbability(athlete(30, 70), season, model.StyleBalanced)
			p32 := l.InjuryProbability(athlete(32, 70), season, model.StyleBalanced)
			p34 := l.InjuryProbability(athlete(34, 70), season, model.StyleBalanced)
			So(p25, ShouldBeLessThan, p20)
			So(p25, ShouldBeLessThan, p30)
			So(p34-p32, ShouldBeGreaterThan, p32-p30)
		})

		Convey("Workload, style and traits move the risk", func() {
			a := athlete(27, 70)
			light := l.InjuryProbability(a, model.SeasonStats{Matches: 5}, model.StyleBalanced)
			heavy := l.InjuryProbability(a, model.SeasonStats{Matches: 50}, model.StyleBalanced)
			pressing := l.InjuryProbability(a, model.SeasonStats{Matches: 50}, model.StylePressing)
			So(heavy, ShouldBeGreaterThan, light)
			So(pressing, ShouldBeGreaterThan, heavy)

			iron := athlete(27, 70)
			iron.Traits.Grant(model.TraitIronMan, model.Bronze)
			prone := athlete(27, 70)
			prone.Traits.Grant(model.TraitInjuryProne, model.Bronze)
			So(l.InjuryProbability(iron, season, model.StyleBalanced), ShouldBeLessThan,
				l.InjuryProbability(prone, season, model.StyleBalanced))
		})

		Convey("The result is always clamped and finite", func() {
			r := rng.New(3)
			cfg := medical.DefaultConfig()
			for i := 0; i < 300; i++ {
				a := athlete(r.IntRange(15, 45), r.Uniform(10, 99))
				a.Career.Injuries = r.IntRange(0, 30)
				a.ReinjuryRisk = r.Uniform(-1, 5)
				if i%10 == 0 {
					a.ReinjuryRisk = math.NaN()
				}
				p := l.InjuryProbability(a, model.SeasonStats{Matches: r.IntRange(0, 70)}, model.AllStyles[r.Pick(len(model.AllStyles))])
				So(math.IsNaN(p), ShouldBeFalse)
				So(p, ShouldBeBetweenOrEqual, cfg.MinProbability, cfg.MaxProbability)
			}
		})
	})
}

func TestRollInjury(t *testing.T) {
	Convey("Given a ledger whose rolls always succeed", t, func() {
		l := medical.New(medical.WithRoller(rng.Always), medical.WithRNG(rng.New(9)), medical.WithRater(rater))

		Convey("A healthy athlete gets injured and the career total grows", func() {
			a := athlete(26, 70)
			inj, p, _ := l.RollInjury(a, season, model.StyleBalanced)
			So(inj, ShouldNotBeNil)
			So(p, ShouldBeGreaterThan, 0)
			So(a.Injury, ShouldEqual, inj)
			So(a.Career.Injuries, ShouldEqual, 1)
			if inj.Severity != model.CareerEnding {
				sc := medical.DefaultConfig().Severities[inj.Severity.String()]
				So(inj.WeeksRemaining, ShouldBeBetweenOrEqual, float64(sc.Duration.MinWeeks), float64(sc.Duration.MaxWeeks))
			}
		})

		Convey("An athlete with an active injury is never rolled again", func() {
			a := athlete(26, 70)
			a.Injury = &model.Injury{Severity: model.Minor, WeeksRemaining: 2}
			inj, p, _ := l.RollInjury(a, season, model.StyleBalanced)
			So(inj, ShouldBeNil)
			So(p, ShouldEqual, 0)
			So(a.Career.Injuries, ShouldEqual, 0)
			So(a.Injury.WeeksRemaining, ShouldEqual, 2.0)
		})

		Convey("A severe injury can permanently lower athletic attributes", func() {
			cfg := medical.DefaultConfig()
			cfg.CareerEndingChance = 0
			cfg.SevereChance = 1
			cfg.ModerateChance = 0
			cfg.SeverityAgeShift = 0
			sl := medical.New(medical.WithConfig(cfg), medical.WithRoller(rng.Always), medical.WithRater(rater))
			a := athlete(26, 70)
			before := a.Attribute(model.Pace)
			inj, _, penalty := sl.RollInjury(a, season, model.StyleBalanced)
			So(inj.Severity, ShouldEqual, model.Severe)
			So(penalty, ShouldNotBeEmpty)
			So(a.Attribute(model.Pace), ShouldEqual, before-float64(penalty[model.Pace]))
			So(a.Overall(), ShouldEqual, rater.Overall(a.Attributes(), a.Position()))
			So(a.ReinjuryRisk, ShouldAlmostEqual, cfg.Severities["severe"].Recurrence, 1e-9)
		})
	})

	Convey("Given a ledger whose rolls always fail", t, func() {
		l := medical.New(medical.WithRoller(rng.Never))
		a := athlete(26, 70)
		a.ReinjuryRisk = 0.5
		inj, _, _ := l.RollInjury(a, season, model.StyleBalanced)

		Convey("No injury happens and the re-injury risk decays", func() {
			So(inj, ShouldBeNil)
			So(a.Injury, ShouldBeNil)
			So(a.ReinjuryRisk, ShouldAlmostEqual, 0.35, 1e-9)
		})
	})
}

func TestSeverity(t *testing.T) {
	Convey("Older athletes suffer worse injuries on average", t, func() {
		l := medical.New(medical.WithRNG(rng.New(11)))
		worse := func(age int) int {
			n := 0
			for i := 0; i < 4000; i++ {
				if l.Severity(age) >= model.Severe {
					n++
				}
			}
			return n
		}
		So(worse(35), ShouldBeGreaterThan, worse(24))
	})
}

func TestRecovery(t *testing.T) {
	Convey("Given an athlete with a severe injury and three weeks left", t, func() {
		cfg := medical.DefaultConfig()
		cfg.CyclesPerSeason = 1
		l := medical.New(medical.WithConfig(cfg), medical.WithRoller(rng.Always))
		a := athlete(26, 70)
		a.Injury = &model.Injury{Severity: model.Severe, WeeksRemaining: 3}

		Convey("One cycle at the default rate leaves two weeks and no new roll", func() {
			So(l.RecoveryRate(a), ShouldEqual, 1.0)
			out := l.Season(a, season, model.StylePressing)
			So(out.Recovery, ShouldNotBeNil)
			So(out.Recovery.Cycles, ShouldEqual, 1)
			So(out.Injured(), ShouldBeFalse)
			So(out.Probability, ShouldEqual, 0)
			So(a.Injury.WeeksRemaining, ShouldEqual, 2.0)
			So(a.Injury.Active(), ShouldBeTrue)
			So(a.Career.Injuries, ShouldEqual, 0)
		})
	})

	Convey("Given an injury about to clear", t, func() {
		a := athlete(26, 70)
		a.Injury = &model.Injury{Severity: model.Minor, WeeksRemaining: 1}

		Convey("A setback extends it instead of clearing", func() {
			l := medical.New(medical.WithRoller(rng.Always))
			res := l.Recover(a, 1)
			So(res.Setbacks, ShouldEqual, 1)
			So(res.Cleared, ShouldBeFalse)
			So(a.Injury.WeeksRemaining, ShouldBeBetweenOrEqual, 1.0, 3.0)
		})

		Convey("Without a setback it clears", func() {
			l := medical.New(medical.WithRoller(rng.Never))
			res := l.Recover(a, 5)
			So(res.Cleared, ShouldBeTrue)
			So(res.Cycles, ShouldEqual, 1)
			So(a.Injury, ShouldBeNil)
		})
	})

	Convey("A career-ending injury never heals", t, func() {
		l := medical.New(medical.WithRoller(rng.Never))
		a := athlete(30, 70)
		a.Injury = &model.Injury{Severity: model.CareerEnding}
		res := l.Recover(a, 100)
		So(res.Cleared, ShouldBeFalse)
		So(a.Injury.Active(), ShouldBeTrue)
	})

	Convey("Recovery rate reflects age, fitness and traits", t, func() {
		l := medical.New()
		So(l.RecoveryRate(athlete(20, 70)), ShouldBeGreaterThan, l.RecoveryRate(athlete(26, 70)))
		So(l.RecoveryRate(athlete(34, 70)), ShouldBeLessThan, l.RecoveryRate(athlete(26, 70)))
		So(l.RecoveryRate(athlete(26, 85)), ShouldBeGreaterThan, l.RecoveryRate(athlete(26, 70)))
		iron := athlete(26, 70)
		iron.Traits.Grant(model.TraitIronMan, model.Gold)
		So(l.RecoveryRate(iron), ShouldBeGreaterThan, 1)
	})
}

func TestSuspensions(t *testing.T) {
	Convey("Given an athlete sent off twice in the league", t, func() {
		a := athlete(24, 70)
		n := medical.RecordSendOffs(a, map[model.Competition]int{model.League: 2})
		So(n, ShouldEqual, 2)
		So(a.Suspensions.Eligible(model.League), ShouldBeFalse)
		So(a.Suspensions.Eligible(model.Cup), ShouldBeTrue)

		Convey("Cup fixtures never consume a league ban", func() {
			served := medical.ServeFixtures(a, map[model.Competition]int{model.Cup: 3})
			So(served[model.Cup], ShouldEqual, 0)
			So(a.Suspensions[model.League], ShouldEqual, 2)
		})

		Convey("Each league selection consumes one match", func() {
			served := medical.ServeFixtures(a, map[model.Competition]int{model.League: 1})
			So(served[model.League], ShouldEqual, 1)
			So(a.Suspensions[model.League], ShouldEqual, 1)

			served = medical.ServeFixtures(a, map[model.Competition]int{model.League: 5})
			So(served[model.League], ShouldEqual, 1)
			So(a.Suspensions.Pending(), ShouldEqual, 0)
			So(a.Suspensions.Eligible(model.League), ShouldBeTrue)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Default config is valid", t, func() {
		So(medical.DefaultConfig().Validate(), ShouldBeNil)
	})
	Convey("Inverted probability bounds are rejected", t, func() {
		cfg := medical.DefaultConfig()
		cfg.MinProbability = 0.9
		So(cfg.Validate(), ShouldNotBeNil)
	})
}

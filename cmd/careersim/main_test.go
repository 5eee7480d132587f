package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/okian/careersim/internal/config"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func smallConfig() *config.Config {
	cfg := config.New()
	cfg.League.Countries = []string{"ENG"}
	cfg.League.Tiers = 2
	cfg.League.ClubsPerTier = 4
	cfg.Seed = 9
	return cfg
}

func TestParsePosition(t *testing.T) {
	convey.Convey("Given position flags", t, func() {
		convey.Convey("Then known tags parse case-insensitively", func() {
			pos, err := parsePosition(" cam ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(pos, convey.ShouldEqual, model.CAM)
		})

		convey.Convey("Then unknown tags are rejected", func() {
			_, err := parsePosition("sweeper")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestRunCareer(t *testing.T) {
	convey.Convey("Given a small generated league", t, func() {
		ctx := context.Background()
		out := &bytes.Buffer{}
		opts := simulateOptions{seasons: 3, position: "CM", age: 18, tier: 1, cohort: 1}

		convey.Convey("When a single career runs", func() {
			lead, err := runCareer(ctx, smallConfig(), opts, out)

			convey.Convey("Then each season is reported", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(lead, convey.ShouldNotBeNil)
				convey.So(lead.Career.Seasons, convey.ShouldBeBetweenOrEqual, 1, 3)
				convey.So(out.String(), convey.ShouldContainSubstring, lead.Name)
				convey.So(out.String(), convey.ShouldContainSubstring, "S1 ")
			})
		})

		convey.Convey("When a cohort runs on the worker pool", func() {
			opts.cohort = 3
			opts.seasons = 2
			_, err := runCareer(ctx, smallConfig(), opts, out)

			convey.Convey("Then the cohort is summarised", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "cohort")
			})
		})

		convey.Convey("When the starting age is out of range", func() {
			opts.age = 45
			_, err := runCareer(ctx, smallConfig(), opts, out)

			convey.Convey("Then the run is refused", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the league file is missing", func() {
			opts.leaguePath = "does-not-exist.yaml"
			_, err := runCareer(ctx, smallConfig(), opts, out)

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		root := newRootCmd()

		convey.Convey("Then it exposes simulate and league", func() {
			names := []string{}
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			convey.So(names, convey.ShouldContain, "simulate")
			convey.So(names, convey.ShouldContain, "league")
		})

		convey.Convey("When the league command runs", func() {
			out := &bytes.Buffer{}
			root.SetOut(out)
			root.SetArgs([]string{"league", "--seed", "4"})
			err := root.ExecuteContext(context.Background())

			convey.Convey("Then it prints the generated clubs", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "clubs")
				convey.So(out.String(), convey.ShouldContainSubstring, "rivalries")
			})
		})
	})
}

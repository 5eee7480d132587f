package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/careersim/internal/adapters/repository"
	service "github.com/okian/careersim/internal/app"
	"github.com/okian/careersim/internal/config"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/internal/leaguegen"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
	"github.com/okian/careersim/pkg/rng"
)

// simulateOptions are the simulate command's flags.
type simulateOptions struct {
	configPath   string
	leaguePath   string
	seasons      int
	seed         int64
	position     string
	age          int
	tier         int
	clubsPerTier int
	cohort       int
	training     float64
	metricsAddr  string
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a career from a prospect's debut to retirement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = opts.seed
			}
			if cmd.Flags().Changed("clubs-per-tier") {
				cfg.League.ClubsPerTier = opts.clubsPerTier
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = opts.metricsAddr
			}
			if opts.leaguePath == "" {
				opts.leaguePath = cfg.LeagueFile
			}
			if err := initLogging(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.MetricsAddr != "" {
				go func() {
					if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
						logger.Get().Error(ctx, "metrics server failed", logger.Error(err))
					}
				}()
			}
			_, err = runCareer(ctx, cfg, opts, cmd.OutOrStdout())
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (defaults to $"+config.EnvFile+")")
	f.StringVar(&opts.leaguePath, "league", "", "YAML league file; a league is generated when empty")
	f.IntVar(&opts.seasons, "seasons", 25, "maximum seasons to simulate")
	f.Int64Var(&opts.seed, "seed", 1, "random seed")
	f.StringVar(&opts.position, "position", "ST", "starting position")
	f.IntVar(&opts.age, "age", 17, "starting age")
	f.IntVar(&opts.tier, "tier", 2, "division of the starting club")
	f.IntVar(&opts.clubsPerTier, "clubs-per-tier", 6, "clubs per generated division")
	f.IntVar(&opts.cohort, "cohort", 1, "athletes simulated side by side on the worker pool")
	f.Float64Var(&opts.training, "training", 0, "training spend per season")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(context.Background())
}

func initLogging(cfg *config.Config) error {
	format := logger.FormatText
	if cfg.LogFormat == string(logger.FormatJSON) {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(format)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return logger.SetLevelString(cfg.LogLevel)
}

// engines are the domain components one run shares, all drawing from one RNG.
type engines struct {
	rand   *rng.RNG
	prog   *progression.Engine
	squad  *squad.Machine
	market *transfer.Engine
	gen    *leaguegen.Generator
}

func newEngines(cfg *config.Config) (*engines, error) {
	r := rng.New(cfg.Seed)
	prog := progression.NewEngine(progression.WithConfig(cfg.Progression), progression.WithRNG(r))
	sq := squad.New(cfg.Squad)
	market := transfer.New(sq, transfer.WithConfig(cfg.Transfer), transfer.WithRNG(r))
	gen, err := leaguegen.New(cfg.League, market, prog.Rater(),
		leaguegen.WithRNG(r),
		leaguegen.WithLogger(logger.Get().Named("leaguegen")),
	)
	if err != nil {
		return nil, err
	}
	return &engines{rand: r, prog: prog, squad: sq, market: market, gen: gen}, nil
}

// world is everything one run is wired from.
type world struct {
	store *repository.MemoryStore
	gen   *leaguegen.Generator
	svc   *service.Service
}

func buildWorld(ctx context.Context, cfg *config.Config, leaguePath string) (*world, error) {
	log := logger.Get()
	e, err := newEngines(cfg)
	if err != nil {
		return nil, err
	}

	var league repository.League
	if leaguePath != "" {
		league, err = repository.LoadLeague(ctx, leaguePath)
	} else {
		league, err = e.gen.League(ctx)
	}
	if err != nil {
		return nil, err
	}

	store := repository.NewMemoryStore(
		repository.WithBudgetSlack(cfg.Transfer.Negotiation.BudgetSlack),
		repository.WithLogger(log.Named("ledger")),
	)
	if err := store.Seed(ctx, league); err != nil {
		return nil, err
	}

	svc := service.New(store,
		service.WithConfig(cfg),
		service.WithRNG(e.rand),
		service.WithProgression(e.prog),
		service.WithSquad(e.squad),
		service.WithMarket(e.market),
		service.WithStatsSource(e.gen),
		service.WithLogger(log.Named("service")),
	)
	return &world{store: store, gen: e.gen, svc: svc}, nil
}

// startingClub picks the first senior club in the requested division.
func startingClub(ctx context.Context, store repository.Store, tier int) (model.Team, error) {
	var fallback *model.Team
	for _, team := range store.Teams(ctx) {
		if team.Youth {
			continue
		}
		if team.LeagueTier == tier {
			return team, nil
		}
		if fallback == nil {
			t := team
			fallback = &t
		}
	}
	if fallback == nil {
		return model.Team{}, fmt.Errorf("no senior club: %w", repository.ErrInvalidLeague)
	}
	return *fallback, nil
}

func parsePosition(s string) (model.Position, error) {
	pos := model.Position(strings.ToUpper(strings.TrimSpace(s)))
	if !pos.Valid() {
		return "", fmt.Errorf("unknown position %q", s)
	}
	return pos, nil
}

// runCareer simulates until the lead athlete retires or the season limit is
// reached, printing one line per season to out. It returns the lead athlete.
func runCareer(ctx context.Context, cfg *config.Config, opts simulateOptions, out io.Writer) (*model.Athlete, error) {
	pos, err := parsePosition(opts.position)
	if err != nil {
		return nil, err
	}
	if opts.age < 15 || opts.age >= cfg.Orchestrator.RetirementAge {
		return nil, fmt.Errorf("starting age %d out of range", opts.age)
	}

	w, err := buildWorld(ctx, cfg, opts.leaguePath)
	if err != nil {
		return nil, err
	}
	home, err := startingClub(ctx, w.store, opts.tier)
	if err != nil {
		return nil, err
	}

	cohort := max(opts.cohort, 1)
	ids := make([]string, cohort)
	for i := range ids {
		a := w.gen.Prospect(home, pos, opts.age)
		if err := w.svc.Register(ctx, a); err != nil {
			return nil, err
		}
		ids[i] = a.ID
	}
	lead, err := w.svc.Athlete(ctx, ids[0])
	if err != nil {
		return nil, err
	}
	printHeader(out, lead, home)

	if cohort > 1 {
		if err := w.svc.Start(ctx); err != nil {
			return nil, err
		}
		defer func() { _ = w.svc.Stop(context.Background()) }()
	}

	active := ids
	for season := 1; season <= opts.seasons && len(active) > 0; season++ {
		inputs := make([]service.SeasonInput, len(active))
		for i, id := range active {
			inputs[i] = service.SeasonInput{AthleteID: id, Season: season, Training: opts.training}
		}

		var reports []service.SeasonReport
		if cohort > 1 {
			reports, err = w.svc.SimulateCohort(ctx, season, inputs)
		} else {
			var rep service.SeasonReport
			rep, err = w.svc.SimulateSeason(ctx, inputs[0])
			reports = []service.SeasonReport{rep}
		}
		if err != nil && !errors.Is(err, service.ErrAthleteRetired) {
			return nil, err
		}

		next := make([]string, 0, len(active))
		for _, rep := range reports {
			if rep.Athlete == nil {
				continue
			}
			if rep.Athlete.ID == ids[0] {
				printSeason(ctx, out, w.store, rep)
			}
			if !rep.Retired {
				next = append(next, rep.Athlete.ID)
			}
		}
		active = next
	}

	lead, err = w.svc.Athlete(ctx, ids[0])
	if err != nil {
		return nil, err
	}
	printSummary(ctx, out, w.store, lead)
	if cohort > 1 {
		printCohort(ctx, out, w.svc, ids[1:])
	}
	return lead, nil
}

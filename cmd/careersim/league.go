package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/careersim/internal/adapters/repository"
	"github.com/okian/careersim/pkg/logger"
)

func newLeagueCmd() *cobra.Command {
	var (
		configPath string
		leaguePath string
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "league",
		Short: "Print the clubs a simulation would run against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if err := initLogging(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			var league repository.League
			if leaguePath != "" {
				league, err = repository.LoadLeague(ctx, leaguePath)
			} else {
				var e *engines
				if e, err = newEngines(cfg); err == nil {
					league, err = e.gen.League(ctx)
				}
			}
			if err != nil {
				logger.Get().Error(ctx, "league unavailable", logger.Error(err))
				return err
			}
			printLeague(cmd.OutOrStdout(), league)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&leaguePath, "league", "", "YAML league file to validate and print")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

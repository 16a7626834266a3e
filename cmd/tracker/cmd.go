package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"ti-tracker/config"
	"ti-tracker/database"
	"ti-tracker/logger"
	"ti-tracker/pkg/chart"
	"ti-tracker/pkg/common"
	"ti-tracker/pkg/dataset"
	"ti-tracker/pkg/filter"
	"ti-tracker/services"
)

// serviceLoader 构造查询服务, 测试中可替换
type serviceLoader func(ctx context.Context, cfg *config.Config) (*services.DashboardService, func(), error)

func loadService(ctx context.Context, cfg *config.Config) (*services.DashboardService, func(), error) {
	data, closer, err := services.LoadDataset(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return services.NewDashboardService(data, nil), closer, nil
}

func NewRootCmd(load serviceLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Query The International match data from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newFilterCmd(load),
		newMatchCmd(load),
		newChartCmd(load),
		newImportCmd(),
	)
	return rootCmd
}

func newFilterCmd(load serviceLoader) *cobra.Command {
	var (
		heroes []string
		player string
		team   string
		mode   string
	)

	cmd := &cobra.Command{
		Use:     "filter",
		Short:   "List matches by hero, player and team",
		Example: "tracker filter --hero Axe --hero Lina --mode and",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			combinator, err := filter.ParseCombinator(mode)
			if err != nil {
				return err
			}
			return withService(cmd, load, func(svc *services.DashboardService) error {
				result := svc.Filter(filter.Criteria{
					Heroes:     heroes,
					Player:     player,
					Team:       team,
					Combinator: combinator,
				})
				rows := make([]services.MatchSummary, 0, len(result.Matches))
				for _, rec := range result.Matches {
					rows = append(rows, services.Summarize(rec))
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"count":     len(rows),
					"fell_back": result.FellBack,
					"matches":   rows,
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&heroes, "hero", nil, "hero name (repeatable or comma separated)")
	cmd.Flags().StringVar(&player, "player", "", "exact player name")
	cmd.Flags().StringVar(&team, "team", "", "exact team name")
	cmd.Flags().StringVar(&mode, "mode", string(filter.CombinatorAnd), "combine criteria with 'and' or 'or'")
	return cmd
}

func newMatchCmd(load serviceLoader) *cobra.Command {
	return &cobra.Command{
		Use:     "match [match_id]",
		Short:   "Show the detail view of one match",
		Example: "tracker match 7116846181",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, load, func(svc *services.DashboardService) error {
				match, found, _ := svc.MatchDetail(args[0])
				if !found {
					return eris.Wrapf(common.ErrNotFound, "match %q", args[0])
				}
				return printJSON(cmd.OutOrStdout(), match)
			})
		},
	}
}

func newChartCmd(load serviceLoader) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "chart [match_id]",
		Short:   "Print the net worth or KDA chart series of a match",
		Example: "tracker chart 7116846181 --kind kda",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := chart.ParseKind(kind)
			if err != nil {
				return err
			}
			return withService(cmd, load, func(svc *services.DashboardService) error {
				c, found, err := svc.Chart(args[0], k)
				if err != nil {
					return err
				}
				if !found {
					return eris.Wrapf(common.ErrNotFound, "match %q", args[0])
				}
				return printJSON(cmd.OutOrStdout(), c)
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(chart.KindNetWorth), "chart kind: networth or kda")
	return cmd
}

func newImportCmd() *cobra.Command {
	var matchesPath, heroesPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the parquet and hero CSV files into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return common.InvalidInput("DATABASE_URL is required for import")
			}
			if matchesPath == "" {
				matchesPath = cfg.MatchesPath
			}
			if heroesPath == "" {
				heroesPath = cfg.HeroesPath
			}

			ctx := cmd.Context()
			src := dataset.NewFileSource(matchesPath, heroesPath)
			records, err := src.Matches(ctx)
			if err != nil {
				return err
			}
			heroes, err := src.Heroes(ctx)
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			if err := database.Import(ctx, db, records, heroes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d matches and %d heroes\n", len(records), len(heroes))
			return nil
		},
	}

	cmd.Flags().StringVar(&matchesPath, "matches", "", "parquet file (default MATCHES_PATH)")
	cmd.Flags().StringVar(&heroesPath, "heroes", "", "hero CSV file (default HEROES_PATH)")
	return cmd
}

func withService(cmd *cobra.Command, load serviceLoader, fn func(*services.DashboardService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closer, err := load(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer()
	return fn(svc)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

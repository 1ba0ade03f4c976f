// Command ingest pulls fixtures and statistics from API-Football into the configured store.
//
// Usage:
//
//	match-stats-ingest live --league 39 --season 2025
//	match-stats-ingest date --date 2025-08-16
//	match-stats-ingest fixture --id 1208021
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-stats/internal/app"
	"github.com/riskibarqy/match-stats/internal/config"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/riskibarqy/match-stats/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "match-stats-ingest",
		Short:         "Match statistics ingestion CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(liveCmd())
	root.AddCommand(dateCmd())
	root.AddCommand(fixtureCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func liveCmd() *cobra.Command {
	var (
		leagueID int64
		season   int
	)
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Sync live fixtures of a league season",
		RunE: func(cmd *cobra.Command, args []string) error {
			if leagueID <= 0 || season <= 0 {
				return fmt.Errorf("--league and --season are required")
			}
			return runIngestion(func(ctx context.Context, svc *usecase.IngestionService) (usecase.IngestionResult, error) {
				return svc.SyncLive(ctx, leagueID, season)
			})
		},
	}
	cmd.Flags().Int64Var(&leagueID, "league", 0, "Provider league id")
	cmd.Flags().IntVar(&season, "season", 0, "Season year")
	return cmd
}

func dateCmd() *cobra.Command {
	var raw string
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Sync every fixture played on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			return runIngestion(func(ctx context.Context, svc *usecase.IngestionService) (usecase.IngestionResult, error) {
				return svc.SyncByDate(ctx, date)
			})
		},
	}
	cmd.Flags().StringVar(&raw, "date", time.Now().UTC().Format(time.DateOnly), "Fixture date (UTC)")
	return cmd
}

func fixtureCmd() *cobra.Command {
	var fixtureID int64
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Sync a single fixture by provider id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixtureID <= 0 {
				return fmt.Errorf("--id is required")
			}
			return runIngestion(func(ctx context.Context, svc *usecase.IngestionService) (usecase.IngestionResult, error) {
				return svc.SyncFixture(ctx, fixtureID)
			})
		},
	}
	cmd.Flags().Int64Var(&fixtureID, "id", 0, "Provider fixture id")
	return cmd
}

// runIngestion loads config, wires the store and provider, and runs fn until it returns
// or the process is interrupted.
func runIngestion(fn func(ctx context.Context, svc *usecase.IngestionService) (usecase.IngestionResult, error)) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	if application.Ingestion == nil {
		return fmt.Errorf("APIFOOTBALL_ENABLED=true and APIFOOTBALL_KEY are required")
	}
	if application.StoreMode == app.StoreModeDegraded {
		logger.Warn("no reachable store, ingestion runs will not write anything")
	}

	result, err := fn(ctx, application.Ingestion)
	if err != nil {
		return err
	}

	logger.Info("ingestion finished",
		"run_id", result.RunID,
		"scope", result.Scope,
		"fixtures_fetched", result.FixturesFetched,
		"matches_upserted", result.MatchesUpserted,
		"matches_skipped", result.MatchesSkipped,
		"statistics_upserted", result.StatisticsUpserted,
		"statistics_skipped", result.StatisticsSkipped,
		"duration", time.Duration(result.DurationMs)*time.Millisecond,
	)
	return nil
}

package main

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gamefinder/internal/catalog"
	"gamefinder/internal/config"
	"gamefinder/internal/gamecache"
	"gamefinder/internal/games"
	"gamefinder/internal/logging"
	"gamefinder/internal/services"
)

// refreshReport captures what the last catalog fetch did, for display.
type refreshReport struct {
	Ran      bool            `json:"ran"`
	RunID    string          `json:"run_id,omitempty"`
	Games    int             `json:"games"`
	Warnings map[string]int  `json:"warnings,omitempty"`
	Details  []warningDetail `json:"details,omitempty"`
}

type warningDetail struct {
	Stage   string `json:"stage"`
	Subject string `json:"subject,omitempty"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

// catalogFetch adapts catalog.Fetcher to gamecache.FetchFunc, tagging the run
// with a fresh run ID and recording warnings into report.
func catalogFetch(cfg *config.Config, logger *slog.Logger, report *refreshReport) gamecache.FetchFunc {
	return func(ctx context.Context) ([]games.Game, error) {
		fetcher, err := catalog.NewFromConfig(cfg, logger)
		if err != nil {
			return nil, err
		}
		runID := uuid.NewString()
		ctx = services.WithRunID(ctx, runID)
		logging.WithContext(ctx, logging.NewComponentLogger(logger, "refresh")).Info("catalog refresh started",
			logging.Int("categories", len(cfg.Categories())),
		)

		result, err := fetcher.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		report.Ran = true
		report.RunID = runID
		report.Games = len(result.Games)
		report.Warnings = map[string]int{}
		for _, w := range result.Warnings {
			report.Warnings[w.Stage]++
			report.Details = append(report.Details, warningDetail{
				Stage:   w.Stage,
				Subject: w.Subject,
				Kind:    services.Kind(w.Cause),
				Error:   w.Cause.Error(),
			})
		}
		return result.Games, nil
	}
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the catalog now and rewrite the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			store, err := ctx.cacheStore(cmd)
			if err != nil {
				return err
			}

			var report refreshReport
			if _, err := store.LoadOrRefresh(cmd.Context(), true, catalogFetch(cfg, logger, &report)); err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			printRefreshReport(newStatusPrinter(cmd.OutOrStdout()), report, store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the refresh report as JSON")
	return cmd
}

func printRefreshReport(p statusPrinter, report refreshReport, path string) {
	p.line("Catalog", statusOK, "%d games cached at %s", report.Games, path)
	if len(report.Warnings) == 0 {
		p.line("Warnings", statusOK, "none")
		return
	}
	stages := make([]string, 0, len(report.Warnings))
	for stage := range report.Warnings {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	for _, stage := range stages {
		p.line(stageLabel(stage), statusWarn, "%d degraded (see log for details)", report.Warnings[stage])
	}
}

func stageLabel(stage string) string {
	switch stage {
	case catalog.StageGenres:
		return "Genre names"
	case catalog.StagePlatforms:
		return "Platform names"
	case catalog.StageCategory:
		return "Categories"
	case catalog.StagePrice:
		return "Price lookups"
	default:
		return stage
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamefinder/internal/games"
	"gamefinder/internal/recommend"
)

const (
	defaultGenrePreference    = "Action"
	defaultPlatformPreference = "PC (Microsoft Windows)"
	defaultPriceMax           = 30.0
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var prefs games.Preferences
	var ratedOnly bool
	var sortFlag string
	var refresh bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List cached games matching genre, platform, and price",
		Long: `List games matching your preferences.

Genre must equal one of a game's genres (case-insensitive). Platform matches
any platform containing the text, so "pc" finds "PC (Microsoft Windows)".
Games priced above --price-max are dropped; a ceiling of 0 keeps only free
games. The catalog is fetched when the cache is missing or older than
cache.max_age_seconds, or when --refresh is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, ok := recommend.ParseDirection(sortFlag)
			if !ok {
				return fmt.Errorf("invalid --sort %q (want asc or desc)", sortFlag)
			}
			if prefs.PriceMax < 0 {
				return fmt.Errorf("invalid --price-max %v (must not be negative)", prefs.PriceMax)
			}

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
			list, err := store.LoadOrRefresh(cmd.Context(), refresh, catalogFetch(cfg, logger, &report))
			if err != nil {
				return err
			}

			matches := recommend.Recommend(list, prefs)
			if ratedOnly {
				matches = recommend.RatedOnly(matches)
			}
			matches = recommend.SortByPrice(matches, direction)

			if jsonOutput {
				return writeJSON(cmd, matches)
			}

			out := cmd.OutOrStdout()
			if report.Ran && len(report.Warnings) > 0 {
				printRefreshReport(newStatusPrinter(cmd.ErrOrStderr()), report, store.Path())
			}
			if len(matches) == 0 {
				fmt.Fprintln(out, "No games match your criteria.")
				return nil
			}
			fmt.Fprintln(out, renderGamesTable(matches))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefs.Genre, "genre", defaultGenrePreference, "Genre to match exactly (case-insensitive); empty matches all")
	cmd.Flags().StringVar(&prefs.Platform, "platform", defaultPlatformPreference, "Platform substring to match (case-insensitive); empty matches all")
	cmd.Flags().Float64Var(&prefs.PriceMax, "price-max", defaultPriceMax, "Highest price to include")
	cmd.Flags().BoolVar(&ratedOnly, "rated-only", false, "Only show games with a rating")
	cmd.Flags().StringVar(&sortFlag, "sort", "asc", "Price sort direction (asc or desc)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore the cache and fetch the catalog")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output matches as JSON")
	return cmd
}

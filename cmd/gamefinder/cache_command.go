package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local game cache",
	}

	cacheCmd.AddCommand(newCacheStatusCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCachePathCommand(ctx))

	return cacheCmd
}

type cacheStatusView struct {
	Path       string `json:"path"`
	Exists     bool   `json:"exists"`
	Readable   bool   `json:"readable"`
	Fresh      bool   `json:"fresh"`
	Games      int    `json:"games"`
	ModifiedAt string `json:"modified_at,omitempty"`
	AgeSeconds int64  `json:"age_seconds"`
	MaxAge     int64  `json:"max_age_seconds"`
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cache location, age, and freshness",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.cacheStore(cmd)
			if err != nil {
				return err
			}
			status, err := store.Status()
			if err != nil {
				return err
			}

			if jsonOutput {
				view := cacheStatusView{
					Path:       status.Path,
					Exists:     status.Exists,
					Readable:   status.Readable,
					Fresh:      status.Fresh,
					Games:      status.Games,
					AgeSeconds: int64(status.Age / time.Second),
					MaxAge:     int64(status.MaxAge / time.Second),
				}
				if status.Exists {
					view.ModifiedAt = status.ModTime.UTC().Format(time.RFC3339)
				}
				return writeJSON(cmd, view)
			}

			p := newStatusPrinter(cmd.OutOrStdout())
			p.line("Path", statusInfo, "%s", status.Path)
			if !status.Exists {
				p.line("Cache", statusWarn, "missing; the next recommend will fetch the catalog")
				return nil
			}
			if !status.Readable {
				p.line("Cache", statusError, "unreadable; run `gamefinder cache clear`")
			} else {
				p.line("Games", statusInfo, "%s", humanize.Comma(int64(status.Games)))
			}
			ageKind := statusOK
			freshness := "fresh"
			if !status.Fresh {
				ageKind = statusWarn
				freshness = "stale"
			}
			p.line("Updated", ageKind, "%s (%s, max age %s)",
				humanize.Time(status.ModTime), freshness, status.MaxAge)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cache file so the next run refetches",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.cacheStore(cmd)
			if err != nil {
				return err
			}
			removed, err := store.Clear()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintf(out, "Removed cache %s\n", store.Path())
			} else {
				fmt.Fprintf(out, "No cache at %s\n", store.Path())
			}
			return nil
		},
	}
}

func newCachePathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Path)
			return nil
		},
	}
}

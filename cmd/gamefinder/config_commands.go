package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gamefinder/internal/config"
	"gamefinder/internal/textutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set igdb.client_id and igdb.access_token (or export IGDB_CLIENT_ID and IGDB_ACCESS_TOKEN) before running gamefinder.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			p := newStatusPrinter(cmd.OutOrStdout())
			p.line("Config path", statusInfo, "%s", ctx.configPath)
			if !ctx.configSeen {
				p.line("Config file", statusWarn, "not found; defaults were used")
			}
			p.line("IGDB client id", credentialKind(cfg.IGDB.ClientID), "set: %s", yesNo(cfg.IGDB.ClientID != ""))
			p.line("IGDB token", credentialKind(cfg.IGDB.AccessToken), "set: %s", yesNo(cfg.IGDB.AccessToken != ""))
			categories := cfg.Categories()
			names := make([]string, 0, len(categories))
			for _, category := range categories {
				names = append(names, fmt.Sprintf("%s (%d)", textutil.Title(category.Name), category.GenreID))
			}
			p.line("Categories", statusInfo, "%s", strings.Join(names, ", "))
			p.line("Cache", statusInfo, "%s (max age %s)", cfg.Cache.Path, cfg.CacheMaxAge())
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	}
}

// credentialKind flags missing credentials; IGDB rejects the first request
// without them.
func credentialKind(value string) statusKind {
	if value == "" {
		return statusWarn
	}
	return statusOK
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"gamefinder/internal/config"
	"gamefinder/internal/services"
)

type tokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// fetchAppToken runs the Twitch client-credentials grant for the configured
// IGDB application.
func fetchAppToken(ctx context.Context, cfg *config.Config) (*oauth2.Token, error) {
	if cfg.IGDB.ClientID == "" || cfg.IGDB.ClientSecret == "" {
		return nil, services.Wrap(services.ErrConfiguration, "token", "client credentials",
			"igdb.client_id and igdb.client_secret are required (or IGDB_CLIENT_ID / IGDB_CLIENT_SECRET)", nil)
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.IGDB.ClientID,
		ClientSecret: cfg.IGDB.ClientSecret,
		TokenURL:     cfg.IGDB.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.HTTPTimeout()})
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrStatus, "token", "client credentials", "token request failed", err)
	}
	return token, nil
}

func newTokenCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Exchange the IGDB client id and secret for an app access token",
		Long: `Request an app access token from Twitch using the client credentials grant.

The token is printed, not stored. Put it in igdb.access_token or export it as
IGDB_ACCESS_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			token, err := fetchAppToken(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			view := tokenView{AccessToken: token.AccessToken, TokenType: token.Type()}
			if !token.Expiry.IsZero() {
				view.ExpiresAt = token.Expiry.UTC().Format(time.RFC3339)
			}
			if jsonOutput {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token.AccessToken)
			if !token.Expiry.IsZero() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Token expires %s. Export it with:\n  export IGDB_ACCESS_TOKEN=%s\n",
					humanize.Time(token.Expiry), token.AccessToken)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the token as JSON")
	return cmd
}

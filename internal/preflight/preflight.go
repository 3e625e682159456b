package preflight

import (
	"context"
	"path/filepath"

	"gamefinder/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every check for the given config in display order.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.Cache.Path)),
		CheckCredentials(cfg.IGDB.ClientID, cfg.IGDB.AccessToken),
	}

	// Without credentials the IGDB call can only fail with 401.
	if results[1].Passed {
		results = append(results, CheckIGDB(ctx, cfg))
	}
	results = append(results, CheckCheapShark(ctx, cfg))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

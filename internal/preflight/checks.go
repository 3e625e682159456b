package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"gamefinder/internal/cheapshark"
	"gamefinder/internal/config"
	"gamefinder/internal/igdb"
	"gamefinder/internal/services"
)

const checkTimeout = 5 * time.Second

// probeTitle is looked up to confirm the pricing API answers; any
// well-formed reply, including no deals, counts as reachable.
const probeTitle = "Portal"

// CheckCredentials verifies that IGDB credentials were supplied.
func CheckCredentials(clientID, accessToken string) Result {
	const name = "IGDB credentials"
	switch {
	case clientID == "" && accessToken == "":
		return Result{Name: name, Detail: "client id and access token missing (set IGDB_CLIENT_ID and IGDB_ACCESS_TOKEN)"}
	case clientID == "":
		return Result{Name: name, Detail: "client id missing (set IGDB_CLIENT_ID)"}
	case accessToken == "":
		return Result{Name: name, Detail: "access token missing (run `gamefinder token`)"}
	default:
		return Result{Name: name, Passed: true, Detail: "present"}
	}
}

// CheckIGDB performs one genre lookup to confirm the credentials work.
func CheckIGDB(ctx context.Context, cfg *config.Config) Result {
	const name = "IGDB"

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := igdb.New(cfg.IGDB.ClientID, cfg.IGDB.AccessToken, cfg.IGDB.BaseURL,
		igdb.WithHTTPClient(&http.Client{Timeout: checkTimeout}))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	genres, err := client.FetchGenres(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeIGDBError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%d genres)", len(genres))}
}

// CheckCheapShark performs one price lookup.
func CheckCheapShark(ctx context.Context, cfg *config.Config) Result {
	const name = "CheapShark"

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := cheapshark.New(cfg.CheapShark.BaseURL, cheapshark.WithHTTPClient(&http.Client{Timeout: checkTimeout}))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	outcome := client.Price(checkCtx, probeTitle)
	if outcome.IsDegraded() && !errors.Is(outcome.Cause, services.ErrNotFound) {
		return Result{Name: name, Detail: summarizeTransportError(outcome.Cause)}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeIGDBError(err error) string {
	var statusErr *igdb.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "auth failed (invalid client id or expired token; run `gamefinder token`)"
		default:
			return fmt.Sprintf("request failed (%d)", statusErr.Code)
		}
	}
	return summarizeTransportError(err)
}

func summarizeTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out (API unreachable)"
	}
	return err.Error()
}

package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamefinder/internal/games"
	"gamefinder/internal/services"
)

const component = "igdb"

// Client issues Apicalypse queries against IGDB.
type Client struct {
	clientID    string
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an IGDB client. Credentials are not checked here; IGDB reports
// missing or expired ones as a 401 on the first request.
func New(clientID, accessToken, baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("igdb base url required")
	}
	client := &Client{
		clientID:    strings.TrimSpace(clientID),
		accessToken: strings.TrimSpace(accessToken),
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchGames returns one page of games tagged with genreID.
func (c *Client) FetchGames(ctx context.Context, genreID int64, limit, offset int) ([]RawGame, error) {
	var rows []RawGame
	if err := c.query(ctx, "games", GamesQuery(genreID, limit, offset), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchGenres returns the genre id to name lookup.
func (c *Client) FetchGenres(ctx context.Context) (games.IDNames, error) {
	return c.fetchNames(ctx, "genres")
}

// FetchPlatforms returns the platform id to name lookup.
func (c *Client) FetchPlatforms(ctx context.Context) (games.IDNames, error) {
	return c.fetchNames(ctx, "platforms")
}

func (c *Client) fetchNames(ctx context.Context, endpoint string) (games.IDNames, error) {
	var rows []namedEntity
	if err := c.query(ctx, endpoint, MappingQuery(), &rows); err != nil {
		return nil, err
	}
	names := make(games.IDNames, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (c *Client) query(ctx context.Context, endpoint, body string, out any) error {
	operation := "query " + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrConfiguration, component, operation, "build request", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
		return services.Wrap(services.ErrStatus, component, operation, fmt.Sprintf("latency=%v", latency), statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrDecode, component, operation, "decode response", err)
	}
	return nil
}

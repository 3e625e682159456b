package cheapshark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamefinder/internal/logging"
	"gamefinder/internal/services"
)

const component = "cheapshark"

// Deal is the subset of a /games search row that gamefinder reads.
type Deal struct {
	GameID   string          `json:"gameID"`
	External string          `json:"external"`
	Cheapest json.RawMessage `json:"cheapest"`
}

// Client queries the CheapShark /games endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
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

// WithLogger sets the logger used for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a CheapShark client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("cheapshark base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, component)
	return client, nil
}

// Price returns the cheapest known price for title. It never returns an
// error; failures come back as a degraded zero.
func (c *Client) Price(ctx context.Context, title string) services.Outcome[float64] {
	value, err := c.lookup(ctx, title)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "price lookup degraded", "price_lookup_"+services.Kind(err),
			logging.String("title", title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access to the pricing API"),
			logging.String(logging.FieldImpact, "price recorded as 0.00"),
		)
		return services.Degraded(0.0, err)
	}
	return services.Ok(value)
}

// FetchPrice is Price without the outcome wrapper.
func (c *Client) FetchPrice(ctx context.Context, title string) float64 {
	return c.Price(ctx, title).Value
}

func (c *Client) lookup(ctx context.Context, title string) (float64, error) {
	endpoint, err := url.Parse(c.baseURL + "/games")
	if err != nil {
		return 0, services.Wrap(services.ErrConfiguration, component, "price lookup", "parse url", err)
	}
	params := url.Values{}
	params.Set("title", title)
	params.Set("limit", "1")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, services.Wrap(services.ErrConfiguration, component, "price lookup", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return 0, services.Wrap(services.ErrTransport, component, "price lookup", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, services.Wrap(services.ErrStatus, component, "price lookup", fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var deals []Deal
	if err := json.NewDecoder(resp.Body).Decode(&deals); err != nil {
		return 0, services.Wrap(services.ErrDecode, component, "price lookup", "decode response", err)
	}
	if len(deals) == 0 {
		return 0, services.Wrap(services.ErrNotFound, component, "price lookup", "no deals for "+strconv.Quote(title), nil)
	}
	return parseCheapest(deals[0].Cheapest)
}

// parseCheapest accepts the string form CheapShark sends ("19.99") and a
// bare number. Negative amounts clamp to zero.
func parseCheapest(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, services.Wrap(services.ErrDecode, component, "price lookup", "missing cheapest field", nil)
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, services.Wrap(services.ErrDecode, component, "price lookup", "decode cheapest", err)
		}
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, services.Wrap(services.ErrDecode, component, "price lookup", "non-numeric cheapest "+strconv.Quote(text), err)
	}
	if value < 0 {
		return 0, nil
	}
	return value, nil
}

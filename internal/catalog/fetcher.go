package catalog

import (
	"context"
	"log/slog"
	"net/http"

	"gamefinder/internal/cheapshark"
	"gamefinder/internal/config"
	"gamefinder/internal/games"
	"gamefinder/internal/igdb"
	"gamefinder/internal/logging"
	"gamefinder/internal/services"
)

// Source is the catalog transport.
type Source interface {
	FetchGames(ctx context.Context, genreID int64, limit, offset int) ([]igdb.RawGame, error)
	FetchGenres(ctx context.Context) (games.IDNames, error)
	FetchPlatforms(ctx context.Context) (games.IDNames, error)
}

// PriceLookup resolves a best-effort price for a title.
type PriceLookup interface {
	Price(ctx context.Context, title string) services.Outcome[float64]
}

// Stage names where a Warning was raised.
const (
	StageGenres    = "genres"
	StagePlatforms = "platforms"
	StageCategory  = "category"
	StagePrice     = "price"
)

// Warning records one degraded step of a refresh.
type Warning struct {
	Stage   string
	Subject string
	Cause   error
}

// Result is the output of one refresh.
type Result struct {
	Games    []games.Game
	Warnings []Warning
}

// Fetcher runs the fetch-and-merge pipeline.
type Fetcher struct {
	source       Source
	prices       PriceLookup
	categories   []games.Category
	desiredCount int
	logger       *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCategories overrides the sampled categories.
func WithCategories(categories []games.Category) Option {
	return func(f *Fetcher) {
		if len(categories) > 0 {
			f.categories = append([]games.Category(nil), categories...)
		}
	}
}

// WithDesiredCount overrides how many games are kept per category.
func WithDesiredCount(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.desiredCount = n
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher wires a pipeline over the given source and price lookup.
func NewFetcher(source Source, prices PriceLookup, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:       source,
		prices:       prices,
		categories:   games.DefaultCategories(),
		desiredCount: games.DesiredCount,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.NewComponentLogger(f.logger, "catalog")
	return f
}

// NewFromConfig builds the IGDB and CheapShark clients from cfg, sharing one
// HTTP client with the configured timeout.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Fetcher, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}
	source, err := igdb.New(cfg.IGDB.ClientID, cfg.IGDB.AccessToken, cfg.IGDB.BaseURL, igdb.WithHTTPClient(httpClient))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "init", "igdb client", err)
	}
	prices, err := cheapshark.New(cfg.CheapShark.BaseURL, cheapshark.WithHTTPClient(httpClient), cheapshark.WithLogger(logger))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "init", "cheapshark client", err)
	}
	return NewFetcher(source, prices,
		WithCategories(cfg.Categories()),
		WithDesiredCount(cfg.IGDB.DesiredCount),
		WithLogger(logger),
	), nil
}

// Fetch samples every category and returns the merged games in category
// order. Only context cancellation is returned as an error; every other
// failure degrades and shows up in Result.Warnings.
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	var result Result

	genres := f.lookupNames(ctx, StageGenres, f.source.FetchGenres, &result)
	platforms := f.lookupNames(ctx, StagePlatforms, f.source.FetchPlatforms, &result)

	for _, category := range f.categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		categoryCtx := services.WithCategory(ctx, category.Name)
		rows := f.fetchCategory(categoryCtx, category, &result)
		for _, row := range rows {
			result.Games = append(result.Games, f.merge(categoryCtx, row, genres, platforms, &result))
		}
		logging.WithContext(categoryCtx, f.logger).Info("category fetched", logging.Int("games", len(rows)))
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	f.logger.Info("catalog fetch complete",
		logging.Int("games", len(result.Games)),
		logging.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

func (f *Fetcher) lookupNames(ctx context.Context, stage string, lookup func(context.Context) (games.IDNames, error), result *Result) games.IDNames {
	names, err := lookup(ctx)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, f.logger), "name lookup failed", "catalog_"+stage+"_"+services.Kind(err),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check IGDB credentials and connectivity"),
			logging.String(logging.FieldImpact, stage+" resolve to Unknown for this refresh"),
		)
		result.Warnings = append(result.Warnings, Warning{Stage: stage, Cause: err})
		return games.IDNames{}
	}
	return names
}

// fetchCategory pages until the desired count is reached, a page comes back
// empty, or a request fails. A failure keeps whatever earlier pages returned.
func (f *Fetcher) fetchCategory(ctx context.Context, category games.Category, result *Result) []igdb.RawGame {
	var rows []igdb.RawGame
	offset := 0
	for len(rows) < f.desiredCount {
		page, err := f.source.FetchGames(ctx, category.GenreID, f.desiredCount, offset)
		if err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, f.logger), "category page failed", "catalog_category_"+services.Kind(err),
				logging.Int64("genre_id", category.GenreID),
				logging.Int("offset", offset),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check IGDB credentials and connectivity"),
				logging.String(logging.FieldImpact, "category skipped or partially sampled"),
			)
			result.Warnings = append(result.Warnings, Warning{Stage: StageCategory, Subject: category.Name, Cause: err})
			break
		}
		if len(page) == 0 {
			break
		}
		rows = append(rows, page...)
		offset += f.desiredCount
	}
	if len(rows) > f.desiredCount {
		rows = rows[:f.desiredCount]
	}
	return rows
}

func (f *Fetcher) merge(ctx context.Context, row igdb.RawGame, genres, platforms games.IDNames, result *Result) games.Game {
	name := row.Name
	if name == "" {
		name = games.UnknownGame
	}
	var rating float64
	if row.Rating != nil {
		rating = games.RoundRating(*row.Rating)
	}
	var cover string
	if row.Cover != nil {
		cover = row.Cover.URL
	}

	price := f.prices.Price(ctx, name)
	if price.IsDegraded() {
		result.Warnings = append(result.Warnings, Warning{Stage: StagePrice, Subject: name, Cause: price.Cause})
	}
	value := price.Value
	if value < 0 {
		value = 0
	}

	return games.Game{
		Name:        name,
		Description: games.PlaceholderDescription,
		Genre:       genres.Resolve(row.Genres),
		Platforms:   platforms.Resolve(row.Platforms),
		Rating:      rating,
		ImageURL:    games.CoverURL(cover),
		Price:       games.Price(value),
	}
}

package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gamefinder/internal/catalog"
	"gamefinder/internal/games"
	"gamefinder/internal/igdb"
	"gamefinder/internal/services"
	"gamefinder/internal/testsupport"
)

type stubPrices struct {
	prices map[string]float64
	calls  []string
}

func (s *stubPrices) Price(_ context.Context, title string) services.Outcome[float64] {
	s.calls = append(s.calls, title)
	if value, ok := s.prices[title]; ok {
		return services.Ok(value)
	}
	return services.Degraded(0.0, services.Wrap(services.ErrNotFound, "stub", "price", title, nil))
}

func newClient(t *testing.T, fake *testsupport.FakeIGDB) *igdb.Client {
	t.Helper()
	client, err := igdb.New("client", "token", fake.URL)
	if err != nil {
		t.Fatalf("igdb.New: %v", err)
	}
	return client
}

func manyGames(prefix string, n int, genreID int64) []igdb.RawGame {
	rows := make([]igdb.RawGame, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, testsupport.RawGame(fmt.Sprintf("%s %02d", prefix, i), 50, []int64{genreID}, []int64{6}, ""))
	}
	return rows
}

func TestFetchMergesRows(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Genres = map[int64]string{4: "Action"}
	fake.Platforms = map[int64]string{6: "PC (Microsoft Windows)"}
	fake.Games[4] = []igdb.RawGame{
		testsupport.RawGame("Doom", 87.456, []int64{4, 99}, []int64{6}, "//images.igdb.com/doom.jpg"),
		testsupport.RawGame("", 0, nil, nil, ""),
	}
	prices := &stubPrices{prices: map[string]float64{"Doom": 4.99}}

	fetcher := catalog.NewFetcher(newClient(t, fake), prices, catalog.WithCategories([]games.Category{{Name: "action", GenreID: 4}}))
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(result.Games))
	}

	doom := result.Games[0]
	if doom.Name != "Doom" || doom.Rating != 87.5 || doom.Price != 4.99 {
		t.Fatalf("unexpected doom: %#v", doom)
	}
	if got := doom.Genre; len(got) != 2 || got[0] != "Action" || got[1] != games.UnknownName {
		t.Fatalf("unexpected genres: %v", got)
	}
	if doom.Platforms[0] != "PC (Microsoft Windows)" {
		t.Fatalf("unexpected platforms: %v", doom.Platforms)
	}
	if doom.ImageURL != "https://images.igdb.com/doom.jpg" {
		t.Fatalf("unexpected image url: %q", doom.ImageURL)
	}
	if doom.Description != games.PlaceholderDescription {
		t.Fatalf("unexpected description: %q", doom.Description)
	}

	bare := result.Games[1]
	if bare.Name != games.UnknownGame || bare.Rating != 0 || bare.ImageURL != "https://via.placeholder.com/200" {
		t.Fatalf("unexpected placeholder game: %#v", bare)
	}
	if bare.Genre == nil || len(bare.Genre) != 0 {
		t.Fatalf("expected empty non-nil genre list, got %#v", bare.Genre)
	}

	if len(result.Warnings) != 1 || result.Warnings[0].Stage != catalog.StagePrice || result.Warnings[0].Subject != games.UnknownGame {
		t.Fatalf("expected one price warning, got %#v", result.Warnings)
	}
	if !errors.Is(result.Warnings[0].Cause, services.ErrNotFound) {
		t.Fatalf("unexpected warning cause: %v", result.Warnings[0].Cause)
	}
}

func TestFetchPaginatesAndTruncates(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Games[4] = manyGames("Action", 45, 4)
	prices := &stubPrices{prices: map[string]float64{}}

	fetcher := catalog.NewFetcher(newClient(t, fake), prices,
		catalog.WithCategories([]games.Category{{Name: "action", GenreID: 4}}),
		catalog.WithDesiredCount(20),
	)
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 20 {
		t.Fatalf("expected exactly 20 games, got %d", len(result.Games))
	}
	if result.Games[19].Name != "Action 19" {
		t.Fatalf("unexpected last game %q", result.Games[19].Name)
	}
	if got := fake.Requests("/games"); got != 1 {
		t.Fatalf("expected a single page request, got %d", got)
	}
	if len(prices.calls) != 20 {
		t.Fatalf("expected one price lookup per kept game, got %d", len(prices.calls))
	}
}

func TestFetchStopsOnShortCategory(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Games[4] = manyGames("Action", 7, 4)

	fetcher := catalog.NewFetcher(newClient(t, fake), &stubPrices{},
		catalog.WithCategories([]games.Category{{Name: "action", GenreID: 4}}),
		catalog.WithDesiredCount(5),
	)
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 5 {
		t.Fatalf("expected 5 games, got %d", len(result.Games))
	}
	// First page is full (5), so a second page is requested only if needed.
	if got := fake.Requests("/games"); got != 1 {
		t.Fatalf("expected 1 page request, got %d", got)
	}

	fake.Games[4] = manyGames("Action", 3, 4)
	result, err = fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(result.Games))
	}
	// 3 rows then an empty page.
	if got := fake.Requests("/games"); got != 3 {
		t.Fatalf("expected 3 page requests in total, got %d", got)
	}
}

func TestFetchIsolatesCategoryFailures(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Genres = map[int64]string{4: "Action", 31: "Adventure"}
	fake.Games[4] = manyGames("Action", 2, 4)
	fake.Games[31] = manyGames("Adventure", 2, 31)
	fake.FailGenre[4] = true

	fetcher := catalog.NewFetcher(newClient(t, fake), &stubPrices{},
		catalog.WithCategories([]games.Category{{Name: "action", GenreID: 4}, {Name: "adventure", GenreID: 31}}),
	)
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 2 || result.Games[0].Name != "Adventure 00" {
		t.Fatalf("expected only adventure games, got %#v", result.Games)
	}

	var categoryWarnings int
	for _, w := range result.Warnings {
		if w.Stage == catalog.StageCategory {
			categoryWarnings++
			if w.Subject != "action" || !errors.Is(w.Cause, services.ErrStatus) {
				t.Fatalf("unexpected category warning: %#v", w)
			}
		}
	}
	if categoryWarnings != 1 {
		t.Fatalf("expected 1 category warning, got %d", categoryWarnings)
	}
}

func TestFetchUsesUnknownWhenLookupsFail(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Genres = map[int64]string{4: "Action"}
	fake.Platforms = map[int64]string{6: "PC"}
	fake.FailLookup = true
	fake.Games[4] = []igdb.RawGame{testsupport.RawGame("Doom", 90, []int64{4}, []int64{6}, "")}

	fetcher := catalog.NewFetcher(newClient(t, fake), &stubPrices{prices: map[string]float64{"Doom": 1}},
		catalog.WithCategories([]games.Category{{Name: "action", GenreID: 4}}),
	)
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(result.Games))
	}
	doom := result.Games[0]
	if doom.Genre[0] != games.UnknownName || doom.Platforms[0] != games.UnknownName {
		t.Fatalf("expected Unknown names, got %v / %v", doom.Genre, doom.Platforms)
	}
	if fake.Requests("/genres") != 1 || fake.Requests("/platforms") != 1 {
		t.Fatal("expected exactly one lookup per mapping endpoint")
	}
	stages := map[string]bool{}
	for _, w := range result.Warnings {
		stages[w.Stage] = true
	}
	if !stages[catalog.StageGenres] || !stages[catalog.StagePlatforms] {
		t.Fatalf("expected lookup warnings, got %#v", result.Warnings)
	}
}

func TestFetchPricesAreNonNegativeAndRatingsRounded(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Games[4] = []igdb.RawGame{
		testsupport.RawGame("One", 71.249, []int64{4}, nil, ""),
		testsupport.RawGame("Two", 12.25, []int64{4}, nil, ""),
	}
	prices := &stubPrices{prices: map[string]float64{"One": -5, "Two": 3}}

	fetcher := catalog.NewFetcher(newClient(t, fake), prices, catalog.WithCategories([]games.Category{{Name: "action", GenreID: 4}}))
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	want := []float64{71.2, 12.3}
	for i, game := range result.Games {
		if game.Price < 0 {
			t.Fatalf("%s has negative price %v", game.Name, game.Price)
		}
		if game.Rating != want[i] {
			t.Fatalf("%s rating = %v, want %v", game.Name, game.Rating, want[i])
		}
	}
}

func TestFetchDefaultCategoriesInOrder(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	for _, category := range games.DefaultCategories() {
		fake.Games[category.GenreID] = manyGames(category.Name, 1, category.GenreID)
	}

	result, err := catalog.NewFetcher(newClient(t, fake), &stubPrices{}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	var names []string
	for _, game := range result.Games {
		names = append(names, game.Name)
	}
	want := []string{"action 00", "adventure 00", "strategy 00", "rpg 00", "simulation 00"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestFetchReturnsContextError(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.NewFetcher(newClient(t, fake), &stubPrices{}).Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewFromConfigUsesFakeServers(t *testing.T) {
	fake := testsupport.NewFakeIGDB(t)
	fake.Genres = map[int64]string{12: "Role-playing (RPG)"}
	fake.Games[12] = []igdb.RawGame{testsupport.RawGame("Baldur's Gate", 95, []int64{12}, nil, "")}
	shop := testsupport.NewFakeCheapShark(t)
	shop.Prices["Baldur's Gate"] = "9.99"

	cfg := testsupport.NewConfig(t,
		testsupport.WithIGDB(fake.URL),
		testsupport.WithCheapShark(shop.URL),
		testsupport.WithCategories(games.Category{Name: "rpg", GenreID: 12}),
	)
	fetcher, err := catalog.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(result.Games) != 1 || result.Games[0].Price != 9.99 || result.Games[0].Genre[0] != "Role-playing (RPG)" {
		t.Fatalf("unexpected result: %#v", result.Games)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", result.Warnings)
	}
	if shop.Calls() != 1 {
		t.Fatalf("expected 1 price call, got %d", shop.Calls())
	}
}

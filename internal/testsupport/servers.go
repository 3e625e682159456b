package testsupport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"gamefinder/internal/igdb"
)

var pageQuery = regexp.MustCompile(`where genres = \((\d+)\); limit (\d+) offset (\d+);`)

// FakeIGDB serves /genres, /platforms, and paginated /games from memory.
type FakeIGDB struct {
	*httptest.Server

	mu        sync.Mutex
	Genres    map[int64]string
	Platforms map[int64]string
	// Games holds every row tagged with a genre; pages are sliced from it.
	Games map[int64][]igdb.RawGame
	// FailGenre makes /games return FailStatus for that genre id.
	FailGenre  map[int64]bool
	FailLookup bool
	FailStatus int

	requests map[string]int
}

// NewFakeIGDB starts a fake catalog server and registers cleanup.
func NewFakeIGDB(t testing.TB) *FakeIGDB {
	t.Helper()
	fake := &FakeIGDB{
		Genres:     map[int64]string{},
		Platforms:  map[int64]string{},
		Games:      map[int64][]igdb.RawGame{},
		FailGenre:  map[int64]bool{},
		FailStatus: http.StatusInternalServerError,
		requests:   map[string]int{},
	}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Close)
	return fake
}

// Requests returns how many calls hit path.
func (f *FakeIGDB) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

// TotalRequests returns the number of calls across all paths.
func (f *FakeIGDB) TotalRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.requests {
		total += n
	}
	return total
}

func (f *FakeIGDB) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[r.URL.Path]++

	switch r.URL.Path {
	case "/genres":
		f.writeNames(w, f.Genres)
	case "/platforms":
		f.writeNames(w, f.Platforms)
	case "/games":
		match := pageQuery.FindStringSubmatch(string(body))
		if match == nil {
			http.Error(w, fmt.Sprintf("unparsed query %q", body), http.StatusBadRequest)
			return
		}
		genreID, _ := strconv.ParseInt(match[1], 10, 64)
		limit, _ := strconv.Atoi(match[2])
		offset, _ := strconv.Atoi(match[3])
		if f.FailGenre[genreID] {
			w.WriteHeader(f.FailStatus)
			return
		}
		rows := f.Games[genreID]
		page := []igdb.RawGame{}
		if offset < len(rows) {
			end := min(offset+limit, len(rows))
			page = rows[offset:end]
		}
		writeJSON(w, page)
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeIGDB) writeNames(w http.ResponseWriter, names map[int64]string) {
	if f.FailLookup {
		w.WriteHeader(f.FailStatus)
		return
	}
	type row struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	rows := make([]row, 0, len(names))
	for id, name := range names {
		rows = append(rows, row{ID: id, Name: name})
	}
	writeJSON(w, rows)
}

// FakeCheapShark serves /games price searches from a title to cheapest map.
// Titles missing from Prices get an empty result.
type FakeCheapShark struct {
	*httptest.Server

	mu     sync.Mutex
	Prices map[string]string
	calls  int
}

// NewFakeCheapShark starts a fake pricing server and registers cleanup.
func NewFakeCheapShark(t testing.TB) *FakeCheapShark {
	t.Helper()
	fake := &FakeCheapShark{Prices: map[string]string{}}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Close)
	return fake
}

// Calls returns the number of price lookups served.
func (f *FakeCheapShark) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeCheapShark) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if r.URL.Path != "/games" {
		http.NotFound(w, r)
		return
	}
	title := r.URL.Query().Get("title")
	cheapest, ok := f.Prices[title]
	if !ok {
		writeJSON(w, []any{})
		return
	}
	writeJSON(w, []map[string]string{{"external": title, "cheapest": cheapest}})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// RawGame builds a catalog row for fixtures.
func RawGame(name string, rating float64, genres []int64, platforms []int64, cover string) igdb.RawGame {
	row := igdb.RawGame{Name: name, Genres: genres, Platforms: platforms}
	if rating > 0 {
		row.Rating = &rating
	}
	if cover != "" {
		row.Cover = &igdb.Cover{URL: cover}
	}
	return row
}

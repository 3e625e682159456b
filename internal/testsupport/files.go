package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamefinder/internal/games"
)

// WriteCache writes a cache document at path and backdates its mtime to
// modified. A zero modified leaves the mtime at now.
func WriteCache(t testing.TB, path string, list []games.Game, modified time.Time) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data, err := json.MarshalIndent(games.Document{Games: list}, "", "    ")
	if err != nil {
		t.Fatalf("marshal cache: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if !modified.IsZero() {
		if err := os.Chtimes(path, modified, modified); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}
}

// SampleGames returns the two-game fixture used across filter tests.
func SampleGames() []games.Game {
	return []games.Game{
		{
			Name:        "A",
			Description: games.PlaceholderDescription,
			Genre:       []string{"Action"},
			Platforms:   []string{"PC (Microsoft Windows)"},
			Rating:      80.5,
			ImageURL:    games.CoverURL(""),
			Price:       10,
		},
		{
			Name:        "B",
			Description: games.PlaceholderDescription,
			Genre:       []string{"Adventure"},
			Platforms:   []string{"Xbox"},
			ImageURL:    games.CoverURL(""),
			Price:       50,
		},
	}
}

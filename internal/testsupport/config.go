package testsupport

import (
	"path/filepath"
	"testing"

	"gamefinder/internal/config"
	"gamefinder/internal/games"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp cache path per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.IGDB.ClientID = "test-client"
	cfgVal.IGDB.AccessToken = "test-token"
	cfgVal.IGDB.BaseURL = "http://127.0.0.1:0"
	cfgVal.CheapShark.BaseURL = "http://127.0.0.1:0"
	cfgVal.Cache.Path = filepath.Join(base, "cache", "knowledge_base.json")
	cfgVal.HTTP.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithIGDB points the catalog client at baseURL.
func WithIGDB(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.IGDB.BaseURL = baseURL
	}
}

// WithCheapShark points the price client at baseURL.
func WithCheapShark(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.CheapShark.BaseURL = baseURL
	}
}

// WithCategories replaces the sampled categories.
func WithCategories(categories ...games.Category) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Categories = categories
	}
}

// WithDesiredCount overrides the per-category game count.
func WithDesiredCount(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.IGDB.DesiredCount = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Cache.Path))
}

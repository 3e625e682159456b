package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"gamefinder/internal/fileutil"
	"gamefinder/internal/games"
)

//go:embed sample_config.toml
var sampleConfig string

// IGDB contains configuration for the IGDB catalog API and its Twitch credentials.
type IGDB struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	AccessToken  string `toml:"access_token"`
	BaseURL      string `toml:"base_url"`
	TokenURL     string `toml:"token_url"`
	DesiredCount int    `toml:"desired_count"`
}

// Catalog contains the genre buckets sampled on refresh.
type Catalog struct {
	Categories []games.Category `toml:"categories"`
}

// CheapShark contains configuration for the pricing API.
type CheapShark struct {
	BaseURL string `toml:"base_url"`
}

// Cache contains configuration for the local game cache file.
type Cache struct {
	Path          string `toml:"path"`
	MaxAgeSeconds int    `toml:"max_age_seconds"`
}

// HTTP contains shared HTTP client settings.
type HTTP struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for gamefinder.
//
// Configuration sections by subsystem:
//   - IGDB: catalog API credentials, endpoints, and page size
//   - Catalog: category to genre mapping
//   - CheapShark: pricing API endpoint
//   - Cache: cache file location and staleness threshold
//   - HTTP: request timeout
//   - Logging: log format and level
type Config struct {
	IGDB       IGDB       `toml:"igdb"`
	Catalog    Catalog    `toml:"catalog"`
	CheapShark CheapShark `toml:"cheapshark"`
	Cache      Cache      `toml:"cache"`
	HTTP       HTTP       `toml:"http"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and environment fallbacks applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadEnvFiles(dotenvCandidates(resolvedPath)); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("gamefinder.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// dotenvCandidates lists .env files next to the config file and in the
// working directory, without duplicates.
func dotenvCandidates(configPath string) []string {
	var candidates []string
	if configPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(configPath), ".env"))
	}
	if local, err := filepath.Abs(".env"); err == nil {
		if len(candidates) == 0 || candidates[0] != local {
			candidates = append(candidates, local)
		}
	}
	return candidates
}

// loadEnvFiles exports variables from each existing file. Variables already
// present in the environment win.
func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// EnsureDirectories creates the cache directory.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Cache.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory %q: %w", dir, err)
	}
	return nil
}

// CacheMaxAge returns the staleness threshold for the cache file.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Cache.MaxAgeSeconds) * time.Second
}

// HTTPTimeout returns the per-request timeout for outbound API calls.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Categories returns the configured categories, or the defaults when none are set.
func (c *Config) Categories() []games.Category {
	if len(c.Catalog.Categories) == 0 {
		return games.DefaultCategories()
	}
	out := make([]games.Category, len(c.Catalog.Categories))
	copy(out, c.Catalog.Categories)
	return out
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "gamefinder", defaultCacheFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/gamefinder/" + defaultCacheFileName
	}
	return filepath.Join(home, ".cache", "gamefinder", defaultCacheFileName)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

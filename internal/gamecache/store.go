package gamecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"gamefinder/internal/config"
	"gamefinder/internal/fileutil"
	"gamefinder/internal/games"
	"gamefinder/internal/logging"
)

// DefaultMaxAge is the staleness threshold used when none is configured.
const DefaultMaxAge = time.Hour

// FetchFunc produces a fresh game list on a cache miss.
type FetchFunc func(ctx context.Context) ([]games.Game, error)

// Status describes the cache file on disk.
// Readable is false when the file exists but does not decode.
type Status struct {
	Path     string
	Exists   bool
	ModTime  time.Time
	Age      time.Duration
	MaxAge   time.Duration
	Fresh    bool
	Readable bool
	Games    int
}

// Store reads and writes the cache document.
type Store struct {
	path   string
	maxAge time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store for path. A non-positive maxAge uses DefaultMaxAge.
func New(path string, maxAge time.Duration, opts ...Option) *Store {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	s := &Store{
		path:   path,
		maxAge: maxAge,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "gamecache")
	return s
}

// NewFromConfig creates a store for the configured cache path and max age.
func NewFromConfig(cfg *config.Config, opts ...Option) *Store {
	return New(cfg.Cache.Path, cfg.CacheMaxAge(), opts...)
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// LoadOrRefresh returns the cached games when the file is fresh and force is
// false. Otherwise it calls fetch and saves the result. A failed save is
// logged and the fetched games are still returned; only a fetch error is
// returned to the caller.
func (s *Store) LoadOrRefresh(ctx context.Context, force bool, fetch FetchFunc) ([]games.Game, error) {
	if !force {
		status, err := s.stat()
		if err == nil && status.Fresh {
			list, err := s.Load()
			if err == nil {
				s.logger.Debug("cache hit",
					logging.String("path", s.path),
					logging.Int("games", len(list)),
					logging.Duration("age", status.Age),
				)
				return list, nil
			}
			logging.WarnWithContext(s.logger, "cache unreadable", "cache_load_failed",
				logging.String("path", s.path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run gamefinder cache clear if this repeats"),
				logging.String(logging.FieldImpact, "refreshing from the catalog"),
			)
		}
	}

	list, err := fetch(ctx)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "catalog refresh failed", "cache_refresh_failed",
			logging.String("path", s.path),
			logging.Error(err),
		)
		return nil, err
	}
	if list == nil {
		list = []games.Game{}
	}

	if err := s.Save(list); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "cache write failed", "cache_save_failed",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the cache directory"),
			logging.String(logging.FieldImpact, "next run will refresh again"),
		)
	}
	return list, nil
}

// Load decodes the cache document.
func (s *Store) Load() ([]games.Game, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	var doc games.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	if doc.Games == nil {
		doc.Games = []games.Game{}
	}
	return doc.Games, nil
}

// Save replaces the cache document with list.
func (s *Store) Save(list []games.Game) error {
	if list == nil {
		list = []games.Game{}
	}
	data, err := json.MarshalIndent(games.Document{Games: list}, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	s.logger.Info("cache saved",
		logging.String("path", s.path),
		logging.Int("games", len(list)),
	)
	return nil
}

// Status reports on the cache file. A missing file is not an error.
func (s *Store) Status() (Status, error) {
	status, err := s.stat()
	if err != nil || !status.Exists {
		return status, err
	}
	if list, err := s.Load(); err == nil {
		status.Readable = true
		status.Games = len(list)
	}
	return status, nil
}

func (s *Store) stat() (Status, error) {
	status := Status{Path: s.path, MaxAge: s.maxAge}
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("stat cache: %w", err)
	}
	status.Exists = true
	status.ModTime = info.ModTime()
	status.Age = s.now().Sub(status.ModTime)
	status.Fresh = status.Age < s.maxAge
	return status, nil
}

// Clear removes the cache file and its lock file. It reports whether a cache
// file existed.
func (s *Store) Clear() (bool, error) {
	removed, err := fileutil.RemoveIfExists(s.path)
	if err != nil {
		return false, fmt.Errorf("remove cache: %w", err)
	}
	if _, err := fileutil.RemoveIfExists(s.lockPath()); err != nil {
		return removed, fmt.Errorf("remove cache lock: %w", err)
	}
	return removed, nil
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

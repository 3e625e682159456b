package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Catalog credentials are not
// checked here: missing values surface as authentication failures from IGDB.
func (c *Config) Validate() error {
	if err := c.validateIGDB(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateHTTP(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateIGDB() error {
	if c.IGDB.DesiredCount <= 0 {
		return errors.New("igdb.desired_count must be positive")
	}
	if c.IGDB.DesiredCount > maxIGDBPageSize {
		return fmt.Errorf("igdb.desired_count must not exceed %d", maxIGDBPageSize)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	seen := make(map[string]struct{}, len(c.Catalog.Categories))
	for i, category := range c.Catalog.Categories {
		if category.Name == "" {
			return fmt.Errorf("catalog.categories[%d].name must be set", i)
		}
		if category.GenreID <= 0 {
			return fmt.Errorf("catalog.categories[%d].genre_id must be positive", i)
		}
		if _, dup := seen[category.Name]; dup {
			return fmt.Errorf("catalog.categories: duplicate category %q", category.Name)
		}
		seen[category.Name] = struct{}{}
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Path == "" {
		return errors.New("cache.path must be set")
	}
	if c.Cache.MaxAgeSeconds <= 0 {
		return errors.New("cache.max_age_seconds must be positive")
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return errors.New("http.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

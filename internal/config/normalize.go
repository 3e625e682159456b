package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeIGDB()
	c.normalizeCatalog()
	c.normalizeCheapShark()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeIGDB() {
	c.IGDB.ClientID = strings.TrimSpace(c.IGDB.ClientID)
	if c.IGDB.ClientID == "" {
		if value, ok := os.LookupEnv(envIGDBClientID); ok {
			c.IGDB.ClientID = strings.TrimSpace(value)
		}
	}
	c.IGDB.ClientSecret = strings.TrimSpace(c.IGDB.ClientSecret)
	if c.IGDB.ClientSecret == "" {
		if value, ok := os.LookupEnv(envIGDBClientSecret); ok {
			c.IGDB.ClientSecret = strings.TrimSpace(value)
		}
	}
	c.IGDB.AccessToken = strings.TrimSpace(c.IGDB.AccessToken)
	if c.IGDB.AccessToken == "" {
		if value, ok := os.LookupEnv(envIGDBAccessToken); ok {
			c.IGDB.AccessToken = strings.TrimSpace(value)
		}
	}
	c.IGDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.IGDB.BaseURL), "/")
	if c.IGDB.BaseURL == "" {
		c.IGDB.BaseURL = defaultIGDBBaseURL
	}
	c.IGDB.TokenURL = strings.TrimSpace(c.IGDB.TokenURL)
	if c.IGDB.TokenURL == "" {
		c.IGDB.TokenURL = defaultTwitchTokenURL
	}
}

func (c *Config) normalizeCatalog() {
	for i := range c.Catalog.Categories {
		c.Catalog.Categories[i].Name = strings.ToLower(strings.TrimSpace(c.Catalog.Categories[i].Name))
	}
}

func (c *Config) normalizeCheapShark() {
	c.CheapShark.BaseURL = strings.TrimRight(strings.TrimSpace(c.CheapShark.BaseURL), "/")
	if c.CheapShark.BaseURL == "" {
		c.CheapShark.BaseURL = defaultCheapSharkBaseURL
	}
}

func (c *Config) normalizeCache() error {
	if value, ok := os.LookupEnv(envGamefinderCacheOverride); ok && strings.TrimSpace(value) != "" {
		c.Cache.Path = value
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath()
	}
	var err error
	if c.Cache.Path, err = expandPath(strings.TrimSpace(c.Cache.Path)); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import "gamefinder/internal/games"

const (
	defaultConfigPath          = "~/.config/gamefinder/config.toml"
	defaultCacheFileName       = "knowledge_base.json"
	defaultIGDBBaseURL         = "https://api.igdb.com/v4"
	defaultTwitchTokenURL      = "https://id.twitch.tv/oauth2/token"
	defaultCheapSharkBaseURL   = "https://www.cheapshark.com/api/1.0"
	defaultCacheMaxAgeSeconds  = 3600
	defaultHTTPTimeoutSeconds  = 15
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	maxIGDBPageSize            = 500
	envIGDBClientID            = "IGDB_CLIENT_ID"
	envIGDBClientSecret        = "IGDB_CLIENT_SECRET"
	envIGDBAccessToken         = "IGDB_ACCESS_TOKEN"
	envGamefinderCacheOverride = "GAMEFINDER_CACHE_PATH"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		IGDB: IGDB{
			BaseURL:      defaultIGDBBaseURL,
			TokenURL:     defaultTwitchTokenURL,
			DesiredCount: games.DesiredCount,
		},
		CheapShark: CheapShark{
			BaseURL: defaultCheapSharkBaseURL,
		},
		Cache: Cache{
			Path:          defaultCachePath(),
			MaxAgeSeconds: defaultCacheMaxAgeSeconds,
		},
		HTTP: HTTP{
			TimeoutSeconds: defaultHTTPTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

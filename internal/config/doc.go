// Package config loads, normalizes, and validates gamefinder configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads optional .env files, and honours
// environment fallbacks such as IGDB_CLIENT_ID and IGDB_ACCESS_TOKEN. The
// Config type centralizes every knob the CLI needs so catalog credentials,
// cache location, and logging settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

// Package catalog turns IGDB pages into priced games.Game values.
//
// Fetcher samples each configured category with offset pagination, resolves
// genre and platform identifiers through one lookup per refresh, and asks a
// PriceLookup for every surviving game. It never touches the cache file:
// persisting the result is left to gamecache. Every fallback taken along the
// way is returned as a Warning so callers can report a partial refresh.
package catalog

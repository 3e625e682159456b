// Package games defines the merged game record shared by the catalog
// pipeline, the on-disk cache, and the recommendation filter.
//
// A Game is what the CLI displays: names rather than IGDB identifiers, a
// rating rounded to one decimal, an absolute cover URL, and a best-effort
// price. Categories describe the fixed genre buckets sampled on refresh.
package games

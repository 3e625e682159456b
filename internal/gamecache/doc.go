// Package gamecache persists the merged game list as a single JSON document
// and decides when it is stale.
//
// The file's modification time is the staleness clock. A fresh file is
// authoritative: LoadOrRefresh returns it without calling the fetch function
// unless a refresh is forced. Writes go through a temp file and rename while
// holding an flock on a sibling ".lock" file, so readers never observe a
// half-written document. Concurrent refreshes still resolve last-writer-wins.
package gamecache

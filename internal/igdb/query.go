package igdb

import (
	"fmt"
	"strings"
)

// MappingLimit caps the /genres and /platforms lookups.
const MappingLimit = 50

var gameFields = []string{"name", "genres", "platforms", "rating", "cover.url"}

// GamesQuery builds the paginated body for one category page.
func GamesQuery(genreID int64, limit, offset int) string {
	return fmt.Sprintf("fields %s; where genres = (%d); limit %d offset %d;",
		strings.Join(gameFields, ", "), genreID, limit, offset)
}

// MappingQuery builds the body for an id/name lookup endpoint.
func MappingQuery() string {
	return fmt.Sprintf("fields id, name; limit %d;", MappingLimit)
}

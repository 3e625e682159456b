package games

// Category is a genre bucket sampled from the catalog on refresh.
type Category struct {
	Name    string `toml:"name" json:"name"`
	GenreID int64  `toml:"genre_id" json:"genre_id"`
}

// DefaultCategories returns the five buckets sampled when no override is configured.
func DefaultCategories() []Category {
	return []Category{
		{Name: "action", GenreID: 4},
		{Name: "adventure", GenreID: 31},
		{Name: "strategy", GenreID: 15},
		{Name: "rpg", GenreID: 12},
		{Name: "simulation", GenreID: 8},
	}
}

// IDNames maps catalog identifiers (genres, platforms) to display names.
type IDNames map[int64]string

// Resolve maps each identifier to its name, substituting UnknownName for
// identifiers missing from the map. The result is never nil.
func (m IDNames) Resolve(ids []int64) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := m[id]
		if !ok {
			name = UnknownName
		}
		names = append(names, name)
	}
	return names
}

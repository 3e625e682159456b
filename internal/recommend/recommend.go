package recommend

import (
	"cmp"
	"slices"

	"gamefinder/internal/games"
	"gamefinder/internal/textutil"
)

// Direction orders SortByPrice.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps "asc"/"desc" (any case) to a Direction.
func ParseDirection(value string) (Direction, bool) {
	switch textutil.Fold(value) {
	case "asc", "ascending", "low-to-high":
		return Ascending, true
	case "desc", "descending", "high-to-low":
		return Descending, true
	default:
		return Ascending, false
	}
}

func (d Direction) String() string {
	return textutil.Ternary(d == Descending, "desc", "asc")
}

// Recommend returns the games matching prefs in their original order. The
// result is never nil.
func Recommend(list []games.Game, prefs games.Preferences) []games.Game {
	out := make([]games.Game, 0, len(list))
	genre := textutil.Fold(prefs.Genre)
	platform := textutil.Fold(prefs.Platform)
	for _, game := range list {
		if genre != "" && !hasGenre(game, genre) {
			continue
		}
		if platform != "" && !onPlatform(game, platform) {
			continue
		}
		if game.Price.Float() > prefs.PriceMax {
			continue
		}
		out = append(out, game)
	}
	return out
}

func hasGenre(game games.Game, folded string) bool {
	return slices.ContainsFunc(game.Genre, func(name string) bool {
		return textutil.Fold(name) == folded
	})
}

func onPlatform(game games.Game, folded string) bool {
	return slices.ContainsFunc(game.Platforms, func(name string) bool {
		return textutil.ContainsFold(name, folded)
	})
}

// RatedOnly drops games without a rating.
func RatedOnly(list []games.Game) []games.Game {
	out := make([]games.Game, 0, len(list))
	for _, game := range list {
		if game.Rated() {
			out = append(out, game)
		}
	}
	return out
}

// SortByPrice returns a copy of list stably sorted by price.
func SortByPrice(list []games.Game, dir Direction) []games.Game {
	out := slices.Clone(list)
	if out == nil {
		out = []games.Game{}
	}
	slices.SortStableFunc(out, func(a, b games.Game) int {
		c := cmp.Compare(a.Price, b.Price)
		if dir == Descending {
			return -c
		}
		return c
	})
	return out
}

package games

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// DesiredCount is the number of games kept per category after pagination.
	DesiredCount = 20
	// UnknownName replaces genre or platform identifiers missing from the lookup maps.
	UnknownName = "Unknown"
	// UnknownGame is used when the catalog omits a game name.
	UnknownGame = "Unknown Game"
	// PlaceholderDescription is stored for every game; the catalog query does not request summaries.
	PlaceholderDescription = "No description available."
	// PlaceholderCover is the protocol-relative image used when a game has no cover.
	PlaceholderCover = "//via.placeholder.com/200"
)

// Game is a catalog entry merged with its price.
type Game struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Platforms   []string `json:"platforms"`
	Rating      float64  `json:"rating"`
	ImageURL    string   `json:"image_url"`
	Price       Price    `json:"price"`
}

// Rated reports whether the catalog supplied a rating for the game.
func (g Game) Rated() bool {
	return g.Rating > 0
}

// Document is the cache file layout.
type Document struct {
	Games []Game `json:"games"`
}

// Price is a non-negative amount in the pricing API's currency. Decoding is
// lenient: numbers and numeric strings are accepted, anything else becomes 0.
type Price float64

// Float returns the price as a float64.
func (p Price) Float() float64 {
	return float64(p)
}

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = ParsePrice(data)
	return nil
}

// ParsePrice coerces a raw JSON value into a Price. Values that are not a
// finite number (or a string holding one) coerce to 0.
func ParsePrice(raw []byte) Price {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
	} else {
		text = string(raw)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return Price(value)
}

// RoundRating rounds a catalog rating to one decimal place.
func RoundRating(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return math.Round(value*10) / 10
}

// CoverURL turns a protocol-relative cover URL into an https URL, falling
// back to the placeholder image.
func CoverURL(protocolRelative string) string {
	protocolRelative = strings.TrimSpace(protocolRelative)
	if protocolRelative == "" {
		protocolRelative = PlaceholderCover
	}
	return "https:" + protocolRelative
}

// Preferences are the user's filter choices for a single recommendation request.
type Preferences struct {
	Genre    string
	Platform string
	PriceMax float64
}

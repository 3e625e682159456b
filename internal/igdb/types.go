package igdb

import "fmt"

// StatusError carries a non-200 response from IGDB.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Cover is the nested cover object requested via `cover.url`.
type Cover struct {
	URL string `json:"url"`
}

// RawGame is one row of the /games endpoint. Rating and Cover are pointers
// because IGDB omits them for unrated or coverless games.
type RawGame struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Genres    []int64  `json:"genres"`
	Platforms []int64  `json:"platforms"`
	Rating    *float64 `json:"rating"`
	Cover     *Cover   `json:"cover"`
}

type namedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

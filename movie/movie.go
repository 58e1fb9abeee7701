package movie

import (
	"encoding/json"
	"math"
)

const (
	UnknownTitle = "Unknown Title"
	NoOverview   = "No overview available"
)

// Attribute names the service reads from a stored record.
const (
	AttrMovieID  = "movieId"
	AttrTitle    = "title"
	AttrGenreIDs = "genreIds"
	AttrOverview = "overview"
)

// Movie is a metadata record exactly as the store holds it. Fields are
// neither added nor normalised on the way out.
type Movie map[string]interface{}

// Placeholder stands in for a movie with no stored metadata.
func Placeholder() Movie {
	return Movie{
		AttrTitle:    UnknownTitle,
		AttrGenreIDs: []interface{}{},
		AttrOverview: NoOverview,
	}
}

// MovieID reports the record's movieId when it holds a whole number.
func (m Movie) MovieID() (int, bool) {
	return IntAttr(m[AttrMovieID])
}

// IntAttr reads a whole number decoded from JSON or a store item.
func IntAttr(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

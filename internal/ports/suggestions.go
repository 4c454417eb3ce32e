package ports

import "github.com/dbal0503/MightyMammoths-sub000/internal/domain"

// One entry of the recent search-suggestion list: an opaque place reference
// and, when the suggestions provider supplied one, the place's coordinates.
type Suggestion struct {
	PlaceRef string
	Location *domain.Coordinates
}

// Read-only lookup over the most recent search-suggestion list. The caller
// refreshes the underlying list; the engine only reads it.
type SuggestionSource interface {
	Lookup(displayName string) (Suggestion, bool)
}

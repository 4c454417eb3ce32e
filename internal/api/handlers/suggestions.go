package handlers

import (
	"net/http"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/location"
	"github.com/dbal0503/MightyMammoths-sub000/internal/api/dto"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// SuggestionHandler lets the client sync its latest autocomplete results so
// place resolution can match them by display name.
type SuggestionHandler struct {
	Store *location.SuggestionStore
}

func (h *SuggestionHandler) Replace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SuggestionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entries := make(map[string]ports.Suggestion, len(req.Suggestions))
	for _, s := range req.Suggestions {
		entry := ports.Suggestion{PlaceRef: s.PlaceRef}
		if s.Location != nil {
			entry.Location = &domain.Coordinates{
				Lat: s.Location.Latitude,
				Lon: s.Location.Longitude,
			}
		}
		entries[s.Name] = entry
	}

	h.Store.Replace(entries)
	w.WriteHeader(http.StatusNoContent)
}

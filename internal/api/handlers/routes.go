package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/location"
	"github.com/dbal0503/MightyMammoths-sub000/internal/api/dto"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/services"
)

// RoutesHandler runs one aggregation cycle per request and returns the
// resulting per-mode estimate set.
type RoutesHandler struct {
	Aggregator *services.Aggregator
	Device     *location.DeviceGeolocator
}

func (h *RoutesHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RoutesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Position != nil && h.Device != nil {
		h.Device.Set(domain.Coordinates{
			Lat: req.Position.Latitude,
			Lon: req.Position.Longitude,
		})
	}

	set, err := h.Aggregator.Plan(r.Context(), req.Origin, req.Destination)
	if err != nil {
		var unresolved *services.UnresolvedPlaceError
		if errors.As(err, &unresolved) {
			writeError(w, r, http.StatusUnprocessableEntity, unresolved.Error())
			return
		}

		log.Printf("plan routes failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route computation failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RoutesResponse{Routes: set})
}

// Latest reports the last published estimate set without running a new
// cycle. A cycle that never published leaves Routes empty and Valid false.
func (h *RoutesHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	set, valid := h.Aggregator.Published()

	res := dto.LatestRoutesResponse{
		State: h.Aggregator.State().String(),
		Valid: valid,
	}
	if valid {
		res.Routes = set
	}

	writeJSON(w, r, http.StatusOK, res)
}

package ports

import (
	"context"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

// Contract for retrieving candidate routes from the external mapping
// provider. Implementations return zero or more candidates; callers reduce
// them to the shortest-duration one with domain.BestEstimate. A nil or empty
// slice with a nil error means the provider found no route for the mode.
type DirectionsProvider interface {
	GetRoutes(ctx context.Context, origin, destination string, mode domain.TravelMode) ([]domain.RouteEstimate, error)
}

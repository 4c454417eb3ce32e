package ports

import (
	"context"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

// Port for the device's live position, used to resolve the
// current-location place identifier.
type Geolocator interface {
	CurrentLocation(ctx context.Context) (domain.Coordinates, error)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// UnresolvedPlaceError means a place identifier matched neither the
// current-location sentinel, the building registry, a raw lat,lon pair, nor
// the recent suggestion list. Fatal to the aggregation cycle that hit it.
type UnresolvedPlaceError struct {
	Place string
}

func (e *UnresolvedPlaceError) Error() string {
	return fmt.Sprintf("unresolved place %q", e.Place)
}

// Resolved is a place identifier in the form the directions provider
// accepts, plus coordinates when the resolution path knows them. Suggestion
// hits may carry no coordinates; zone classification then skips the shuttle.
type Resolved struct {
	Query  string
	Coords *domain.Coordinates
}

// Resolver converts human-facing place identifiers into provider queries.
type Resolver struct {
	Campuses    *campus.Registry
	Suggestions ports.SuggestionSource
	Geo         ports.Geolocator
}

// Resolve applies the resolution order: current-location sentinel, building
// registry, raw "lat,lon" pair, recent suggestion list.
func (r *Resolver) Resolve(ctx context.Context, place string) (Resolved, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return Resolved{}, &UnresolvedPlaceError{Place: place}
	}

	if place == domain.CurrentLocation {
		if r.Geo == nil {
			return Resolved{}, fmt.Errorf("resolve %q: no geolocator available", place)
		}
		loc, err := r.Geo.CurrentLocation(ctx)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve %q: %w", place, err)
		}
		return Resolved{Query: loc.Query(), Coords: &loc}, nil
	}

	if r.Campuses != nil {
		if b, ok := r.Campuses.Building(place); ok {
			loc := b.Location
			return Resolved{Query: "place_id:" + b.PlaceRef, Coords: &loc}, nil
		}
	}

	if coords, err := domain.ParseCoordinates(place); err == nil {
		return Resolved{Query: coords.Query(), Coords: &coords}, nil
	}

	if r.Suggestions != nil {
		if s, ok := r.Suggestions.Lookup(place); ok && s.PlaceRef != "" {
			return Resolved{Query: "place_id:" + s.PlaceRef, Coords: s.Location}, nil
		}
	}

	return Resolved{}, &UnresolvedPlaceError{Place: place}
}

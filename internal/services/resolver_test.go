package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

type stubGeolocator struct {
	loc domain.Coordinates
	err error
}

func (s *stubGeolocator) CurrentLocation(ctx context.Context) (domain.Coordinates, error) {
	return s.loc, s.err
}

type stubSuggestions map[string]ports.Suggestion

func (s stubSuggestions) Lookup(name string) (ports.Suggestion, bool) {
	v, ok := s[name]
	return v, ok
}

func newResolver() *Resolver {
	return &Resolver{
		Campuses: campus.Default(),
		Geo:      &stubGeolocator{loc: domain.Coordinates{Lat: 45.4960, Lon: -73.5770}},
		Suggestions: stubSuggestions{
			"Atwater Market": {PlaceRef: "ref-atwater", Location: &domain.Coordinates{Lat: 45.4790, Lon: -73.5770}},
			"Mystery Place":  {PlaceRef: "ref-mystery"},
		},
	}
}

func TestResolveSentinel(t *testing.T) {
	r := newResolver()

	got, err := r.Resolve(context.Background(), domain.CurrentLocation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Coords == nil {
		t.Fatal("expected coordinates from geolocator")
	}
	if got.Query != got.Coords.Query() {
		t.Fatalf("query = %q, want coordinate form", got.Query)
	}
}

func TestResolveSentinelGeolocatorFailure(t *testing.T) {
	r := newResolver()
	r.Geo = &stubGeolocator{err: errors.New("gps unavailable")}

	if _, err := r.Resolve(context.Background(), domain.CurrentLocation); err == nil {
		t.Fatal("expected error when geolocation fails")
	}
}

func TestResolveBuilding(t *testing.T) {
	r := newResolver()

	got, err := r.Resolve(context.Background(), "Hall Building")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Query != "place_id:ChIJ19Q2HV4ayUwRbvJj2zA1dzs" {
		t.Fatalf("query = %q", got.Query)
	}
	if got.Coords == nil {
		t.Fatal("buildings must resolve with coordinates")
	}
}

func TestResolveRawPair(t *testing.T) {
	r := newResolver()

	got, err := r.Resolve(context.Background(), "45.4582,-73.6405")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Coords == nil || got.Coords.Lat != 45.4582 {
		t.Fatalf("got %+v", got)
	}
}

func TestResolveSuggestion(t *testing.T) {
	r := newResolver()

	got, err := r.Resolve(context.Background(), "Atwater Market")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Query != "place_id:ref-atwater" {
		t.Fatalf("query = %q", got.Query)
	}

	// A suggestion without coordinates still resolves.
	got, err = r.Resolve(context.Background(), "Mystery Place")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Coords != nil {
		t.Fatal("expected nil coordinates for coordinate-less suggestion")
	}
}

func TestResolveUnknownPlace(t *testing.T) {
	r := newResolver()

	_, err := r.Resolve(context.Background(), "Narnia")
	var unresolved *UnresolvedPlaceError
	if !errors.As(err, &unresolved) {
		t.Fatalf("err = %v, want UnresolvedPlaceError", err)
	}
	if unresolved.Place != "Narnia" {
		t.Fatalf("place = %q", unresolved.Place)
	}
}

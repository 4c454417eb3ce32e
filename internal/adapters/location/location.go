// Package location supplies the caller-side location adapters: the device
// position used for the current-location sentinel and the refreshable
// search-suggestion table.
package location

import (
	"context"
	"sync"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// DeviceGeolocator reports the device position last pushed by the client.
// The server has no GPS of its own; the mobile caller ships its coordinates
// and the handlers keep this adapter current.
type DeviceGeolocator struct {
	mu  sync.RWMutex
	pos domain.Coordinates
}

func NewDeviceGeolocator(pos domain.Coordinates) *DeviceGeolocator {
	return &DeviceGeolocator{pos: pos}
}

func (g *DeviceGeolocator) CurrentLocation(ctx context.Context) (domain.Coordinates, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pos, nil
}

// Set updates the device position.
func (g *DeviceGeolocator) Set(pos domain.Coordinates) {
	g.mu.Lock()
	g.pos = pos
	g.mu.Unlock()
}

// SuggestionStore is the in-memory recent-suggestion table. The caller
// replaces the whole list whenever its autocomplete results change; the
// engine only reads it.
type SuggestionStore struct {
	mu sync.RWMutex
	m  map[string]ports.Suggestion
}

func NewSuggestionStore() *SuggestionStore {
	return &SuggestionStore{m: make(map[string]ports.Suggestion)}
}

// Replace swaps the full suggestion list.
func (s *SuggestionStore) Replace(entries map[string]ports.Suggestion) {
	m := make(map[string]ports.Suggestion, len(entries))
	for k, v := range entries {
		m[k] = v
	}

	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
}

func (s *SuggestionStore) Lookup(displayName string) (ports.Suggestion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[displayName]
	return v, ok
}

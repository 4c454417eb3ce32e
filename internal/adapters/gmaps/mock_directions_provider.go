package gmaps

import (
	"context"
	"fmt"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

type MockRoute struct {
	From, To string
	Mode     domain.TravelMode
	Routes   []domain.RouteEstimate
	Err      error
}

// MockDirectionsProvider serves canned candidates per (origin, destination,
// mode) triple. Unknown triples return no route, mirroring the real
// provider's ZERO_RESULTS.
type MockDirectionsProvider struct {
	m     map[string]MockRoute
	Calls []string
}

func NewMockDirectionsProvider(routes []MockRoute) *MockDirectionsProvider {
	m := make(map[string]MockRoute, len(routes))
	for _, r := range routes {
		m[mockKey(r.From, r.To, r.Mode)] = r
	}
	return &MockDirectionsProvider{m: m}
}

func mockKey(from, to string, mode domain.TravelMode) string {
	return fmt.Sprintf("%s|%s|%s", from, to, mode)
}

func (p *MockDirectionsProvider) GetRoutes(
	ctx context.Context,
	origin, destination string,
	mode domain.TravelMode,
) ([]domain.RouteEstimate, error) {
	k := mockKey(origin, destination, mode)
	p.Calls = append(p.Calls, k)

	r, ok := p.m[k]
	if !ok {
		return nil, nil
	}
	if r.Err != nil {
		return nil, r.Err
	}

	return r.Routes, nil
}

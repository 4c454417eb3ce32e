// Package gmaps is the HTTP adapter for the external mapping provider's
// directions API. It parses the provider's JSON into typed structures and
// distinguishes "no route" from malformed responses.
package gmaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/cache"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/platform/obs"
)

// ErrMalformedResponse means the provider answered with a body that does not
// match the directions schema. Distinct from "no route for this mode".
var ErrMalformedResponse = errors.New("malformed directions response")

// Request counters implemented by the metrics collector. A nil Metrics
// disables instrumentation.
type Metrics interface {
	ProviderRequestInc(mode, outcome string)
	RouteCacheHitInc()
	RouteCacheMissInc()
}

// DirectionsProvider implements ports.DirectionsProvider against a
// Google-style directions endpoint.
//
// It coordinates:
//   - Request construction and API-key auth
//   - External calls with retry/backoff
//   - Typed response parsing with candidate extraction
//   - An optional short-TTL Redis response cache
//
// The provider is safe for concurrent use.
type DirectionsProvider struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	routeCache *cache.RedisRouteCache
	metrics    Metrics
}

func NewDirectionsProvider(apiKey, baseURL string, routeCache *cache.RedisRouteCache, metrics Metrics) (*DirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("directions api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}

	return &DirectionsProvider{
		session:    &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		routeCache: routeCache,
		metrics:    metrics,
	}, nil
}

type directionsResponse struct {
	Status string          `json:"status"`
	Routes []providerRoute `json:"routes"`
}

type providerRoute struct {
	OverviewPolyline struct {
		Points string `json:"points"`
	} `json:"overview_polyline"`
	Legs []providerLeg `json:"legs"`
}

type providerLeg struct {
	Duration *textValue     `json:"duration"`
	Distance *textValue     `json:"distance"`
	Steps    []providerStep `json:"steps"`
}

type providerStep struct {
	HTMLInstructions string     `json:"html_instructions"`
	Duration         *textValue `json:"duration"`
	Distance         *textValue `json:"distance"`
	Polyline         struct {
		Points string `json:"points"`
	} `json:"polyline"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// GetRoutes requests all candidate routes for one mode. An empty slice with
// a nil error means the provider has no route between the endpoints.
func (p *DirectionsProvider) GetRoutes(
	ctx context.Context,
	origin, destination string,
	mode domain.TravelMode,
) (_ []domain.RouteEstimate, err error) {
	defer obs.Time(ctx, "gmaps.GetRoutes")(&err)

	if origin == "" || destination == "" {
		return nil, errors.New("get routes: origin and destination must be non-empty")
	}

	if p.routeCache != nil {
		routes, hit, cerr := p.routeCache.Get(ctx, origin, destination, mode)
		if cerr != nil {
			log.Printf("route cache read failed: %v", cerr)
		} else if hit {
			if p.metrics != nil {
				p.metrics.RouteCacheHitInc()
			}
			return routes, nil
		}
		if p.metrics != nil {
			p.metrics.RouteCacheMissInc()
		}
	}

	endpoint := p.baseURL + "/maps/api/directions/json"

	makeReq := func() (*http.Request, error) {
		req, err := p.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("origin", origin)
		q.Set("destination", destination)
		q.Set("mode", string(mode))
		q.Set("alternatives", "true")
		q.Set("key", p.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := p.doWithRetry(ctx, makeReq)
	if err != nil {
		p.requestInc(mode, "error")
		return nil, fmt.Errorf("directions request %q -> %q: %w", origin, destination, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		p.requestInc(mode, "malformed")
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		p.requestInc(mode, "zero_results")
		return nil, nil
	case "":
		p.requestInc(mode, "malformed")
		return nil, fmt.Errorf("%w: missing status", ErrMalformedResponse)
	default:
		p.requestInc(mode, "error")
		return nil, fmt.Errorf("directions request %q -> %q: provider status %q", origin, destination, decoded.Status)
	}

	routes, err := toEstimates(decoded.Routes, mode)
	if err != nil {
		p.requestInc(mode, "malformed")
		return nil, err
	}

	p.requestInc(mode, "ok")

	if p.routeCache != nil {
		if err := p.routeCache.Put(ctx, origin, destination, mode, routes); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return routes, nil
}

func (p *DirectionsProvider) requestInc(mode domain.TravelMode, outcome string) {
	if p.metrics != nil {
		p.metrics.ProviderRequestInc(string(mode), outcome)
	}
}

// toEstimates validates the route -> leg -> step structure and flattens each
// candidate into a RouteEstimate. Multi-leg candidates are summed; only
// waypoint-free requests are issued here, so more than one leg is unusual
// but legal.
func toEstimates(routes []providerRoute, mode domain.TravelMode) ([]domain.RouteEstimate, error) {
	out := make([]domain.RouteEstimate, 0, len(routes))

	for i, r := range routes {
		if len(r.Legs) == 0 {
			return nil, fmt.Errorf("%w: route %d has no legs", ErrMalformedResponse, i)
		}

		est := domain.RouteEstimate{
			Mode:     mode,
			Polyline: r.OverviewPolyline.Points,
		}

		for j, leg := range r.Legs {
			if leg.Duration == nil || leg.Distance == nil {
				return nil, fmt.Errorf("%w: route %d leg %d missing duration or distance", ErrMalformedResponse, i, j)
			}

			est.DurationSeconds += leg.Duration.Value
			est.DistanceMeters += leg.Distance.Value
			if est.DurationText == "" {
				est.DurationText = leg.Duration.Text
				est.DistanceText = leg.Distance.Text
			}

			for _, s := range leg.Steps {
				step := domain.Step{
					Instruction: s.HTMLInstructions,
					Polyline:    s.Polyline.Points,
				}
				if s.Duration != nil {
					step.DurationSeconds = s.Duration.Value
				}
				if s.Distance != nil {
					step.DistanceText = s.Distance.Text
				}
				est.Steps = append(est.Steps, step)
			}
		}

		out = append(out, est)
	}

	return out, nil
}

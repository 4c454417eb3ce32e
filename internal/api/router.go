package api

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/location"
	"github.com/dbal0503/MightyMammoths-sub000/internal/api/handlers"
	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
	"github.com/dbal0503/MightyMammoths-sub000/internal/services"
)

// Deps bundles everything the HTTP layer needs. Generator may be nil when
// the plan collaborator is not configured; the plans endpoint then returns
// 503.
type Deps struct {
	Aggregator  *services.Aggregator
	Builder     *services.MatrixBuilder
	Generator   ports.PlanGenerator
	Campuses    *campus.Registry
	Device      *location.DeviceGeolocator
	Suggestions *location.SuggestionStore
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	routesHandler := &handlers.RoutesHandler{
		Aggregator: d.Aggregator,
		Device:     d.Device,
	}
	planHandler := &handlers.PlanHandler{
		Builder:   d.Builder,
		Generator: d.Generator,
		Campuses:  d.Campuses,
	}
	suggestionHandler := &handlers.SuggestionHandler{Store: d.Suggestions}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes", routesHandler.Plan)
	mux.HandleFunc("/routes/latest", routesHandler.Latest)
	mux.HandleFunc("/plans/matrix", planHandler.Matrix)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/suggestions", suggestionHandler.Replace)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	return requestIDMiddleware(c.Handler(loggingMiddleware(mux)))
}

package dto

import "github.com/dbal0503/MightyMammoths-sub000/internal/domain"

// Position is a device fix shipped by the mobile client. The engine has no
// GPS of its own, so "Your Location" trips only work when the caller keeps
// this current.
type Position struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type RoutesRequest struct {
	Origin      string    `json:"origin" validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	Position    *Position `json:"position,omitempty"`
}

type RoutesResponse struct {
	Routes domain.RouteEstimateSet `json:"routes"`
}

// LatestRoutesResponse reports the engine's last published estimate set
// together with the aggregation state it is in right now.
type LatestRoutesResponse struct {
	State  string                  `json:"state"`
	Valid  bool                    `json:"valid"`
	Routes domain.RouteEstimateSet `json:"routes,omitempty"`
}

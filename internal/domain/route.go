package domain

// Sentinel place identifier for the device's live position.
const CurrentLocation = "Your Location"

// Transport mode requested from the directions provider.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeTransit   TravelMode = "transit"
	ModeBicycling TravelMode = "bicycling"
	ModeWalking   TravelMode = "walking"
	// ModeShuttle is never sent to the provider; shuttle estimates are
	// synthesized from walking and driving legs plus the bus timetable.
	ModeShuttle TravelMode = "shuttle"
)

// FetchModes are the modes requested directly from the provider, in request order.
var FetchModes = []TravelMode{ModeDriving, ModeTransit, ModeBicycling, ModeWalking}

// One instruction of a route, kept opaque beyond display fields.
type Step struct {
	Instruction     string `json:"instruction"`
	DistanceText    string `json:"distance_text"`
	DurationSeconds int    `json:"duration_seconds"`
	Polyline        string `json:"polyline,omitempty"`
}

// Kind of shuttle itinerary leg.
type LegKind string

const (
	LegWalk LegKind = "WALK"
	LegWait LegKind = "WAIT"
	LegBus  LegKind = "BUS"
)

// One leg of a synthesized shuttle itinerary.
// WAIT legs carry only a duration; WALK and BUS legs carry full route data.
type ShuttleLeg struct {
	Kind            LegKind `json:"kind"`
	Polyline        string  `json:"polyline,omitempty"`
	DurationText    string  `json:"duration_text"`
	DurationSeconds int     `json:"duration_seconds"`
	DistanceText    string  `json:"distance_text,omitempty"`
	DistanceMeters  int     `json:"distance_meters,omitempty"`
	Steps           []Step  `json:"steps,omitempty"`
}

// One candidate path for one transport mode.
// A shuttle estimate additionally carries its four legs in order
// WALK, WAIT, BUS, WALK.
type RouteEstimate struct {
	Mode            TravelMode   `json:"mode"`
	Polyline        string       `json:"polyline"`
	DurationText    string       `json:"duration_text"`
	DurationSeconds int          `json:"duration_seconds"`
	DistanceText    string       `json:"distance_text"`
	DistanceMeters  int          `json:"distance_meters"`
	Steps           []Step       `json:"steps,omitempty"`
	Legs            []ShuttleLeg `json:"legs,omitempty"`
}

// Per-mode collection of Route Estimates for one trip. Each mode holds at
// most one estimate. A set is built fresh every aggregation cycle and never
// merged with a previous one.
type RouteEstimateSet map[TravelMode][]RouteEstimate

// BestEstimate reduces provider candidates to the single shortest-duration
// one. The second return is false when there are no candidates.
func BestEstimate(candidates []RouteEstimate) (RouteEstimate, bool) {
	if len(candidates) == 0 {
		return RouteEstimate{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.DurationSeconds < best.DurationSeconds {
			best = c
		}
	}

	return best, true
}

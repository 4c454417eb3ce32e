package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// Aggregation cycle state, exposed for observability.
type AggregatorState int32

const (
	StateIdle AggregatorState = iota
	StateResolving
	StateFetching
	StateEvaluatingShuttle
	StateReady
	StateError
)

func (s AggregatorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StateEvaluatingShuttle:
		return "evaluating_shuttle"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Aggregator orchestrates one trip's route estimates: it resolves both place
// identifiers, fetches an estimate per supported mode, decides whether a
// shuttle alternative applies, and publishes the completed set.
//
// Cycles are identified by a generation counter. Re-triggering while an
// older cycle is in flight does not cancel it; the older cycle simply loses
// the right to publish when it finishes late.
type Aggregator struct {
	Resolver *Resolver
	Provider ports.DirectionsProvider
	Shuttle  *ShuttleSynthesizer
	Campuses *campus.Registry
	Metrics  Metrics

	mu         sync.Mutex
	generation uint64
	state      AggregatorState
	published  domain.RouteEstimateSet
	valid      bool
}

// Plan runs one aggregation cycle and returns its Route Estimate Set. The
// set is also published for Published readers, unless a newer cycle started
// while this one was in flight.
//
// Resolution failures abort the cycle; so does a transport failure on the
// first directions request. Later modes degrade individually: a mode with no
// route, or whose request failed, is simply absent from the set.
func (a *Aggregator) Plan(ctx context.Context, origin, destination string) (domain.RouteEstimateSet, error) {
	start := time.Now()

	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.state = StateResolving
	a.valid = false
	a.mu.Unlock()

	from, err := a.Resolver.Resolve(ctx, origin)
	if err != nil {
		a.fail(gen)
		return nil, fmt.Errorf("aggregate routes: resolve origin: %w", err)
	}

	to, err := a.Resolver.Resolve(ctx, destination)
	if err != nil {
		a.fail(gen)
		return nil, fmt.Errorf("aggregate routes: resolve destination: %w", err)
	}

	a.setState(gen, StateFetching)

	set := domain.RouteEstimateSet{}
	for i, mode := range domain.FetchModes {
		candidates, err := a.Provider.GetRoutes(ctx, from.Query, to.Query, mode)
		if err != nil {
			if i == 0 {
				a.fail(gen)
				return nil, fmt.Errorf("aggregate routes: %s request: %w", mode, err)
			}
			log.Printf("aggregate routes: %s request failed, mode omitted: %v", mode, err)
			continue
		}

		if best, ok := domain.BestEstimate(candidates); ok {
			set[mode] = []domain.RouteEstimate{best}
		}
	}

	a.setState(gen, StateEvaluatingShuttle)

	if zone := a.shuttleBoardingZone(from, to); zone != "" {
		if shuttle := a.Shuttle.Synthesize(ctx, from.Query, to.Query, zone); len(shuttle) > 0 {
			set[domain.ModeShuttle] = shuttle
		}
	}

	published := a.publish(gen, set)
	if !published {
		log.Printf("aggregate routes: dropping stale result (generation %d)", gen)
	}

	if a.Metrics != nil {
		a.Metrics.AggregationObserve(time.Since(start).Seconds())
	}

	return set, nil
}

// shuttleBoardingZone returns the boarding zone when a shuttle alternative
// applies: both endpoints classify to known, distinct zones. The origin's
// zone is always the boarding side.
func (a *Aggregator) shuttleBoardingZone(from, to Resolved) string {
	if from.Coords == nil || to.Coords == nil {
		return ""
	}

	originZone := a.Campuses.Classify(from.Coords.Lat, from.Coords.Lon)
	destZone := a.Campuses.Classify(to.Coords.Lat, to.Coords.Lon)

	if originZone == "" || destZone == "" || originZone == destZone {
		return ""
	}

	return originZone
}

// Published returns the most recently completed Route Estimate Set and
// whether it is valid (loaded and not superseded by an in-flight cycle).
func (a *Aggregator) Published() (domain.RouteEstimateSet, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.published, a.valid
}

// State reports the latest cycle's state.
func (a *Aggregator) State() AggregatorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Aggregator) setState(gen uint64, s AggregatorState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen == a.generation {
		a.state = s
	}
}

func (a *Aggregator) fail(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen == a.generation {
		a.state = StateError
		a.valid = false
	}
}

// publish installs the set if gen is still the latest cycle. Older cycles
// finishing late are discarded here.
func (a *Aggregator) publish(gen uint64, set domain.RouteEstimateSet) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		return false
	}

	a.published = set
	a.valid = true
	a.state = StateReady
	return true
}

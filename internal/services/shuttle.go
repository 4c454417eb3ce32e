package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
	"github.com/dbal0503/MightyMammoths-sub000/internal/schedule"
)

// Counters implemented by the metrics collector. A nil Metrics disables
// instrumentation on the services that carry one.
type Metrics interface {
	ShuttleSynthesisInc(outcome string)
	MatrixPairInc(outcome string)
	AggregationObserve(seconds float64)
}

// ShuttleSynthesizer composes a walking leg, a timetable wait, a bus leg and
// a second walking leg into one shuttle itinerary between the campuses.
type ShuttleSynthesizer struct {
	Provider ports.DirectionsProvider
	Schedule *schedule.Table
	Campuses *campus.Registry
	Metrics  Metrics

	// Now is the clock used for projected arrival times; nil means time.Now.
	Now func() time.Time
}

// Synthesize returns zero or one shuttle estimates between the resolved
// origin and destination queries, boarding at boardingZone. Any missing leg
// or schedule signal yields an empty result, never an error: "no shuttle
// offered" is a normal outcome and callers fall back to the other modes.
func (s *ShuttleSynthesizer) Synthesize(ctx context.Context, origin, destination, boardingZone string) []domain.RouteEstimate {
	pickup, ok := s.Campuses.Zone(boardingZone)
	if !ok {
		log.Printf("shuttle: unknown boarding zone %q", boardingZone)
		return s.done("unknown_zone")
	}
	dropoff, ok := s.Campuses.OtherZone(boardingZone)
	if !ok {
		log.Printf("shuttle: no destination zone for boarding zone %q", boardingZone)
		return s.done("unknown_zone")
	}

	walkToStop, ok := s.bestLeg(ctx, origin, pickup.ShuttleStop.Query(), domain.ModeWalking)
	if !ok {
		return s.done("no_walk_to_stop")
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	arrival := now.Add(time.Duration(walkToStop.DurationSeconds) * time.Second)
	day := now.Weekday().String()

	departure, err := s.Schedule.NextDeparture(day, boardingZone, arrival.Format("15:04"))
	if err != nil {
		if !errors.Is(err, schedule.ErrNoService) && !errors.Is(err, schedule.ErrNoMoreToday) {
			log.Printf("shuttle: schedule lookup: %v", err)
		}
		return s.done("no_departure")
	}

	// Negative raw waits mean the bus is already boarding; treat as zero
	// wait, not as an error.
	waitMins := departureWaitMinutes(arrival, departure)

	bus, ok := s.bestLeg(ctx, pickup.ShuttleStop.Query(), dropoff.ShuttleStop.Query(), domain.ModeDriving)
	if !ok {
		return s.done("no_bus_leg")
	}

	walkFromStop, ok := s.bestLeg(ctx, dropoff.ShuttleStop.Query(), destination, domain.ModeWalking)
	if !ok {
		return s.done("no_walk_from_stop")
	}

	totalMins := ceilMinutes(walkToStop.DurationSeconds) +
		waitMins +
		ceilMinutes(bus.DurationSeconds) +
		ceilMinutes(walkFromStop.DurationSeconds)

	totalMeters := walkToStop.DistanceMeters + bus.DistanceMeters + walkFromStop.DistanceMeters

	est := domain.RouteEstimate{
		Mode:            domain.ModeShuttle,
		DurationText:    fmt.Sprintf("%d mins", totalMins),
		DurationSeconds: totalMins * 60,
		DistanceText:    fmt.Sprintf("%.2f km", float64(totalMeters)/1000),
		DistanceMeters:  totalMeters,
		Legs: []domain.ShuttleLeg{
			walkLeg(walkToStop),
			{
				Kind:            domain.LegWait,
				DurationText:    fmt.Sprintf("%d mins", waitMins),
				DurationSeconds: waitMins * 60,
			},
			busLeg(bus),
			walkLeg(walkFromStop),
		},
	}

	if s.Metrics != nil {
		s.Metrics.ShuttleSynthesisInc("ok")
	}

	return []domain.RouteEstimate{est}
}

// bestLeg requests one leg from the provider and reduces it to the
// shortest-duration candidate. Provider errors are logged, not propagated.
func (s *ShuttleSynthesizer) bestLeg(ctx context.Context, origin, destination string, mode domain.TravelMode) (domain.RouteEstimate, bool) {
	routes, err := s.Provider.GetRoutes(ctx, origin, destination, mode)
	if err != nil {
		log.Printf("shuttle: %s leg %q -> %q: %v", mode, origin, destination, err)
		return domain.RouteEstimate{}, false
	}

	return domain.BestEstimate(routes)
}

func (s *ShuttleSynthesizer) done(outcome string) []domain.RouteEstimate {
	if s.Metrics != nil {
		s.Metrics.ShuttleSynthesisInc(outcome)
	}
	return nil
}

// departureWaitMinutes computes whole minutes between the projected arrival
// clock time and the scheduled "HH:MM" departure, clamped to >= 0.
func departureWaitMinutes(arrival time.Time, departure string) int {
	var h, m int
	if _, err := fmt.Sscanf(departure, "%02d:%02d", &h, &m); err != nil {
		return 0
	}

	wait := (h*60 + m) - (arrival.Hour()*60 + arrival.Minute())
	if wait < 0 {
		return 0
	}
	return wait
}

func ceilMinutes(seconds int) int {
	return (seconds + 59) / 60
}

func walkLeg(est domain.RouteEstimate) domain.ShuttleLeg {
	leg := toLeg(est)
	leg.Kind = domain.LegWalk
	return leg
}

func busLeg(est domain.RouteEstimate) domain.ShuttleLeg {
	leg := toLeg(est)
	leg.Kind = domain.LegBus
	return leg
}

func toLeg(est domain.RouteEstimate) domain.ShuttleLeg {
	return domain.ShuttleLeg{
		Polyline:        est.Polyline,
		DurationText:    est.DurationText,
		DurationSeconds: est.DurationSeconds,
		DistanceText:    est.DistanceText,
		DistanceMeters:  est.DistanceMeters,
		Steps:           est.Steps,
	}
}

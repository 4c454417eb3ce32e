package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/gmaps"
	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/planner"
	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

func walkingPair(from, to, distance, duration string, seconds int) gmaps.MockRoute {
	return gmaps.MockRoute{
		From: from, To: to, Mode: domain.ModeWalking,
		Routes: []domain.RouteEstimate{{
			Mode:            domain.ModeWalking,
			DistanceText:    distance,
			DurationText:    duration,
			DurationSeconds: seconds,
		}},
	}
}

func entryKeys(entries []domain.MatrixEntry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, domain.PairKey(e.From, e.To))
	}
	sort.Strings(keys)
	return keys
}

func TestBuildMatrixAllOrderedPairs(t *testing.T) {
	tasks := []domain.TaskLocation{
		{Name: "A", PlaceID: "place_id:a"},
		{Name: "B", PlaceID: "place_id:b"},
		{Name: "C", PlaceID: "place_id:c"},
	}

	provider := gmaps.NewMockDirectionsProvider([]gmaps.MockRoute{
		walkingPair("place_id:a", "place_id:b", "0.5 km", "6 mins", 360),
		walkingPair("place_id:b", "place_id:a", "0.6 km", "7 mins", 420),
		walkingPair("place_id:a", "place_id:c", "1.0 km", "12 mins", 720),
		walkingPair("place_id:c", "place_id:a", "1.0 km", "12 mins", 720),
		walkingPair("place_id:b", "place_id:c", "0.8 km", "10 mins", 600),
		walkingPair("place_id:c", "place_id:b", "0.8 km", "10 mins", 600),
	})

	b := &MatrixBuilder{Provider: provider}
	entries := b.BuildMatrix(context.Background(), tasks)

	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6 directed pairs", len(entries))
	}

	// (A,B) and (B,A) are distinct entries with their own values.
	byKey := make(map[string]domain.MatrixEntry)
	for _, e := range entries {
		byKey[domain.PairKey(e.From, e.To)] = e
	}
	if byKey["A|B"].DurationText != "6 mins" {
		t.Fatalf("A->B = %+v", byKey["A|B"])
	}
	if byKey["B|A"].DurationText != "7 mins" {
		t.Fatalf("B->A = %+v", byKey["B|A"])
	}

	// Each directed pair is requested exactly once.
	if len(provider.Calls) != 6 {
		t.Fatalf("provider calls = %d, want 6", len(provider.Calls))
	}
}

func TestBuildMatrixSkipsBlankIdentifiersPerPair(t *testing.T) {
	tasks := []domain.TaskLocation{
		{Name: "A", PlaceID: "place_id:a"},
		{Name: "NoID", PlaceID: ""},
		{Name: "C", PlaceID: "place_id:c"},
	}

	provider := gmaps.NewMockDirectionsProvider([]gmaps.MockRoute{
		walkingPair("place_id:a", "place_id:c", "1.0 km", "12 mins", 720),
		walkingPair("place_id:c", "place_id:a", "1.0 km", "12 mins", 720),
	})

	b := &MatrixBuilder{Provider: provider}
	entries := b.BuildMatrix(context.Background(), tasks)

	// The blank identifier drops only its own pairs; A<->C still computes
	// even though the blank pair was seen first.
	want := []string{"A|C", "C|A"}
	if got := entryKeys(entries); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestBuildMatrixPairErrorsAreNotFatal(t *testing.T) {
	tasks := []domain.TaskLocation{
		{Name: "A", PlaceID: "place_id:a"},
		{Name: "B", PlaceID: "place_id:b"},
	}

	provider := gmaps.NewMockDirectionsProvider([]gmaps.MockRoute{
		{From: "place_id:a", To: "place_id:b", Mode: domain.ModeWalking, Err: errors.New("rate limited")},
		walkingPair("place_id:b", "place_id:a", "0.6 km", "7 mins", 420),
	})

	b := &MatrixBuilder{Provider: provider}
	entries := b.BuildMatrix(context.Background(), tasks)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].From != "B" || entries[0].To != "A" {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestBuildMatrixKeepsShortestCandidate(t *testing.T) {
	tasks := []domain.TaskLocation{
		{Name: "A", PlaceID: "place_id:a"},
		{Name: "B", PlaceID: "place_id:b"},
	}

	provider := gmaps.NewMockDirectionsProvider([]gmaps.MockRoute{
		{
			From: "place_id:a", To: "place_id:b", Mode: domain.ModeWalking,
			Routes: []domain.RouteEstimate{
				{DurationSeconds: 720, DurationText: "12 mins", DistanceText: "1.0 km"},
				{DurationSeconds: 600, DurationText: "10 mins", DistanceText: "0.9 km"},
			},
		},
		walkingPair("place_id:b", "place_id:a", "0.9 km", "10 mins", 600),
	})

	b := &MatrixBuilder{Provider: provider}
	entries := b.BuildMatrix(context.Background(), tasks)

	for _, e := range entries {
		if e.From == "A" && e.DurationText != "10 mins" {
			t.Fatalf("A->B kept %q, want the shortest candidate", e.DurationText)
		}
	}
}

func TestBuildMatrixIdempotent(t *testing.T) {
	tasks := []domain.TaskLocation{
		{Name: "A", PlaceID: "place_id:a"},
		{Name: "B", PlaceID: "place_id:b"},
	}

	routes := []gmaps.MockRoute{
		walkingPair("place_id:a", "place_id:b", "0.5 km", "6 mins", 360),
		walkingPair("place_id:b", "place_id:a", "0.6 km", "7 mins", 420),
	}

	b1 := &MatrixBuilder{Provider: gmaps.NewMockDirectionsProvider(routes)}
	b2 := &MatrixBuilder{Provider: gmaps.NewMockDirectionsProvider(routes)}

	first := entryKeys(b1.BuildMatrix(context.Background(), tasks))
	second := entryKeys(b2.BuildMatrix(context.Background(), tasks))

	if len(first) != len(second) {
		t.Fatalf("runs differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("runs differ at %d: %v vs %v", i, first, second)
		}
	}
}

func TestPlanTasks(t *testing.T) {
	tasks := []domain.TaskLocation{
		{Name: "A", PlaceID: "place_id:a"},
		{Name: "B", PlaceID: "place_id:b"},
	}

	provider := gmaps.NewMockDirectionsProvider([]gmaps.MockRoute{
		walkingPair("place_id:a", "place_id:b", "0.5 km", "6 mins", 360),
		walkingPair("place_id:b", "place_id:a", "0.6 km", "7 mins", 420),
	})

	builder := &MatrixBuilder{Provider: provider}
	gen := &planner.MockPlanGenerator{Override: []string{"B", "A"}}

	plan, err := PlanTasks(context.Background(), tasks, builder, gen, campus.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Order) != 2 || plan.Order[0] != "B" {
		t.Fatalf("order = %v", plan.Order)
	}
	if len(plan.Matrix) != 2 {
		t.Fatalf("matrix = %d entries, want 2", len(plan.Matrix))
	}

	if gen.LastReq == nil {
		t.Fatal("generator never called")
	}
	if len(gen.LastReq.BuildingsByCampus["SGW"]) == 0 {
		t.Fatal("request must carry the per-campus building lists")
	}

	// Collaborator failures propagate; the engine does not invent orderings.
	gen.Err = errors.New("planner down")
	if _, err := PlanTasks(context.Background(), tasks, builder, gen, campus.Default()); err == nil {
		t.Fatal("expected error when the collaborator fails")
	}
}

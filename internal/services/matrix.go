package services

import (
	"context"
	"log"
	"strings"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/cache"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// MatrixBuilder computes the all-pairs walking distance matrix for a task
// plan. Requests go out one pair at a time; the external provider's rate
// limits make sequential fan-out the safe default.
type MatrixBuilder struct {
	Provider ports.DirectionsProvider
	// PairCache is optional; nil disables caching.
	PairCache *cache.SQLPairCache
	Metrics   Metrics
}

// BuildMatrix computes every directed pair (i, j), i != j, of the task list.
// Pairs with a blank identifier on either side are skipped individually.
// Provider errors and empty results drop only the affected pair; the batch
// never fails as a whole. Entry order is unspecified.
func (b *MatrixBuilder) BuildMatrix(ctx context.Context, tasks []domain.TaskLocation) []domain.MatrixEntry {
	computed := make(map[string]struct{})
	entries := make([]domain.MatrixEntry, 0, len(tasks)*(len(tasks)-1))

	for i, from := range tasks {
		for j, to := range tasks {
			if i == j {
				continue
			}

			key := domain.PairKey(from.Name, to.Name)
			if _, done := computed[key]; done {
				continue
			}
			computed[key] = struct{}{}

			// Per-pair check only: a blank identifier skips this pair and
			// nothing else.
			if strings.TrimSpace(from.PlaceID) == "" || strings.TrimSpace(to.PlaceID) == "" {
				log.Printf("matrix: skipping pair %q -> %q: missing place identifier", from.Name, to.Name)
				b.pairInc("missing_id")
				continue
			}

			entry, ok := b.pairEntry(ctx, from, to)
			if !ok {
				continue
			}

			entries = append(entries, entry)
		}
	}

	return entries
}

func (b *MatrixBuilder) pairEntry(ctx context.Context, from, to domain.TaskLocation) (domain.MatrixEntry, bool) {
	if b.PairCache != nil {
		cached, hit, err := b.PairCache.Get(ctx, from.Name, to.Name)
		if err != nil {
			log.Printf("matrix: pair cache read %q -> %q: %v", from.Name, to.Name, err)
		} else if hit {
			b.pairInc("cache_hit")
			return cached, true
		}
	}

	candidates, err := b.Provider.GetRoutes(ctx, from.PlaceID, to.PlaceID, domain.ModeWalking)
	if err != nil {
		log.Printf("matrix: pair %q -> %q omitted: %v", from.Name, to.Name, err)
		b.pairInc("error")
		return domain.MatrixEntry{}, false
	}

	best, ok := domain.BestEstimate(candidates)
	if !ok {
		log.Printf("matrix: pair %q -> %q has no walking route", from.Name, to.Name)
		b.pairInc("no_route")
		return domain.MatrixEntry{}, false
	}

	entry := domain.MatrixEntry{
		From:         from.Name,
		To:           to.Name,
		DistanceText: best.DistanceText,
		DurationText: best.DurationText,
	}

	if b.PairCache != nil {
		if err := b.PairCache.Put(ctx, entry); err != nil {
			log.Printf("matrix: pair cache write %q -> %q: %v", from.Name, to.Name, err)
		}
	}

	b.pairInc("ok")
	return entry, true
}

func (b *MatrixBuilder) pairInc(outcome string) {
	if b.Metrics != nil {
		b.Metrics.MatrixPairInc(outcome)
	}
}

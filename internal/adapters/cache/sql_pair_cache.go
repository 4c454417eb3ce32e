package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/platform/obs"
)

// SQLPairCache is a SQL-backed cache for directed walking pairs of the
// distance matrix. Keys are expected to be consistent (e.g., already
// normalized) by the caller. The cache is optional: a nil *SQLPairCache is
// simply skipped by the matrix builder.
type SQLPairCache struct {
	DB *sql.DB
}

func NewSQLPairCache(db *sql.DB) *SQLPairCache {
	return &SQLPairCache{DB: db}
}

// InitSchema creates the cache table when it does not exist.
func (s *SQLPairCache) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("pair cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS walking_pair_cache (
		origin        TEXT NOT NULL,
		destination   TEXT NOT NULL,
		distance_text TEXT NOT NULL,
		duration_text TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("pair cache: init schema: %w", err)
	}

	return nil
}

// Get fetches one cached directed pair. The bool return is false on a miss.
func (s *SQLPairCache) Get(
	ctx context.Context,
	origin, destination string,
) (_ domain.MatrixEntry, _ bool, err error) {
	defer obs.Time(ctx, "paircache.Get")(&err)

	if s.DB == nil {
		return domain.MatrixEntry{}, false, errors.New("pair cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return domain.MatrixEntry{}, false, errors.New("pair cache get: origin and destination must be non-empty")
	}

	q := `
	SELECT distance_text, duration_text
	FROM walking_pair_cache
	WHERE origin = $1 AND destination = $2;
	`

	var distanceText, durationText string
	row := s.DB.QueryRowContext(ctx, q, origin, destination)
	if err := row.Scan(&distanceText, &durationText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MatrixEntry{}, false, nil
		}
		return domain.MatrixEntry{}, false, fmt.Errorf("pair cache get: scan: %w", err)
	}

	return domain.MatrixEntry{
		From:         origin,
		To:           destination,
		DistanceText: distanceText,
		DurationText: durationText,
	}, true, nil
}

// Put stores one directed pair, overwriting any previous value.
func (s *SQLPairCache) Put(ctx context.Context, entry domain.MatrixEntry) error {
	if s.DB == nil {
		return errors.New("pair cache: db is nil")
	}

	if strings.TrimSpace(entry.From) == "" || strings.TrimSpace(entry.To) == "" {
		return errors.New("pair cache put: origin and destination must be non-empty")
	}

	q := `
	INSERT INTO walking_pair_cache (origin, destination, distance_text, duration_text)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_text = EXCLUDED.distance_text,
		duration_text = EXCLUDED.duration_text;
	`

	if _, err := s.DB.ExecContext(ctx, q, entry.From, entry.To, entry.DistanceText, entry.DurationText); err != nil {
		return fmt.Errorf("pair cache put %q -> %q: %w", entry.From, entry.To, err)
	}

	return nil
}

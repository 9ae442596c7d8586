package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/platform/obs"
	"genetic-route-service/internal/ports"
)

// SQLDistanceCache keeps road matrix rows in postgres. Each call reads or
// writes one origin row in a single statement, passing the destination
// columns as arrays.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

const pgRowLookup = `
	SELECT want.dest, c.distance_meters, c.duration_seconds
	FROM unnest($2::text[]) AS want(dest)
	JOIN distance_cache c
		ON c.origin = $1 AND c.destination = want.dest;
`

const pgRowUpsert = `
	INSERT INTO distance_cache (origin, destination, distance_meters, duration_seconds)
	SELECT $1, r.dest, r.meters, r.seconds
	FROM unnest($2::text[], $3::int8[], $4::int8[]) AS r(dest, meters, seconds)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
`

// GetMany returns the cached cells of origin's row. Destinations without an
// entry are absent from the result.
func (s *SQLDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.postgres.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres distance cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("postgres distance cache get: origin must not be empty")
	}

	want := uniqueKeys(destinations)
	if len(want) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, pgRowLookup, origin, want)
	if err != nil {
		return nil, fmt.Errorf("postgres distance cache get origin=%s: %w", origin, err)
	}
	defer rows.Close()

	out, err := scanRow(rows, len(want))
	if err != nil {
		return nil, fmt.Errorf("postgres distance cache get origin=%s: %w", origin, err)
	}
	return out, nil
}

// PutMany upserts origin's row. The statement is atomic, so a failed write
// leaves no partial row behind.
func (s *SQLDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) (err error) {
	defer obs.Time(ctx, "distance.cache.postgres.PutMany")(&err)

	if s.DB == nil {
		return errors.New("postgres distance cache: db is nil")
	}
	if origin == "" {
		return errors.New("postgres distance cache put: origin must not be empty")
	}

	cols, err := splitRow(results)
	if err != nil {
		return fmt.Errorf("postgres distance cache put origin=%s: %w", origin, err)
	}
	if cols.Len() == 0 {
		return nil
	}

	if _, err := s.DB.ExecContext(ctx, pgRowUpsert, origin, cols.dests, cols.meters, cols.seconds); err != nil {
		return fmt.Errorf("postgres distance cache put origin=%s cells=%d: %w", origin, cols.Len(), err)
	}
	return nil
}

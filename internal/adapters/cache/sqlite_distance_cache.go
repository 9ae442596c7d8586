package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"genetic-route-service/internal/platform/obs"
	"genetic-route-service/internal/ports"
	"strings"
)

// Cells per multi-row INSERT. Four bound values each keeps a statement well
// under SQLite's variable limit.
const sqliteUpsertChunk = 200

// SQLite backed store of road matrix rows.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// The wanted destinations travel as one JSON array expanded by json_each.
const sqliteRowLookup = `
	SELECT want.value, c.distance_meters, c.duration_seconds
	FROM json_each(?) AS want
	JOIN distance_cache c
		ON c.origin = ? AND c.destination = want.value;
`

// GetMany returns the cached cells of origin's row.
func (s *SqliteDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite distance cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("sqlite distance cache get: origin must not be empty")
	}

	want := uniqueKeys(destinations)
	if len(want) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}
	wantJSON, err := json.Marshal(want)
	if err != nil {
		return nil, fmt.Errorf("sqlite distance cache get: encode keys: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, sqliteRowLookup, string(wantJSON), origin)
	if err != nil {
		return nil, fmt.Errorf("sqlite distance cache get origin=%s: %w", origin, err)
	}
	defer rows.Close()

	out, err := scanRow(rows, len(want))
	if err != nil {
		return nil, fmt.Errorf("sqlite distance cache get origin=%s: %w", origin, err)
	}
	return out, nil
}

// PutMany upserts origin's row in one transaction, a chunk of cells per
// statement.
func (s *SqliteDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) (err error) {
	defer obs.Time(ctx, "distance.cache.sqlite.PutMany")(&err)

	if s.DB == nil {
		return errors.New("sqlite distance cache: db is nil")
	}
	if origin == "" {
		return errors.New("sqlite distance cache put: origin must not be empty")
	}

	cols, err := splitRow(results)
	if err != nil {
		return fmt.Errorf("sqlite distance cache put origin=%s: %w", origin, err)
	}
	if cols.Len() == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite distance cache put: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for lo := 0; lo < cols.Len(); lo += sqliteUpsertChunk {
		hi := min(lo+sqliteUpsertChunk, cols.Len())
		q, args := sqliteUpsert(origin, cols, lo, hi)
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("sqlite distance cache put origin=%s cells=%d..%d: %w", origin, lo, hi, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite distance cache put: commit: %w", err)
	}
	return nil
}

// sqliteUpsert builds one INSERT for cells [lo, hi). Only placeholders are
// interpolated.
func sqliteUpsert(origin string, cols rowColumns, lo, hi int) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO distance_cache (origin, destination, distance_meters, duration_seconds) VALUES ")

	args := make([]any, 0, 4*(hi-lo))
	for i := lo; i < hi; i++ {
		if i > lo {
			b.WriteByte(',')
		}
		b.WriteString("(?, ?, ?, ?)")
		args = append(args, origin, cols.dests[i], cols.meters[i], cols.seconds[i])
	}

	b.WriteString(` ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = excluded.distance_meters,
		duration_seconds = excluded.duration_seconds;`)
	return b.String(), args
}

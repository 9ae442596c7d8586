package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/ports"
	"slices"
	"strings"
)

// LocationKey is the cache key of a coordinate pair, rounded to about 10 cm.
func LocationKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// uniqueKeys trims keys and drops empty and repeated ones, keeping order.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// A matrix row flattened into parallel columns, ordered by destination key.
type rowColumns struct {
	dests   []string
	meters  []int64
	seconds []int64
}

func (c rowColumns) Len() int { return len(c.dests) }

// splitRow flattens the results of one origin. Destination keys are trimmed
// and must not be empty.
func splitRow(results map[string]ports.DistanceResult) (rowColumns, error) {
	dests := make([]string, 0, len(results))
	byKey := make(map[string]ports.DistanceResult, len(results))
	for dest, r := range results {
		key := strings.TrimSpace(dest)
		if key == "" {
			return rowColumns{}, errors.New("empty destination key")
		}
		if _, ok := byKey[key]; !ok {
			dests = append(dests, key)
		}
		byKey[key] = r
	}
	slices.Sort(dests)

	cols := rowColumns{
		dests:   dests,
		meters:  make([]int64, len(dests)),
		seconds: make([]int64, len(dests)),
	}
	for i, d := range dests {
		cols.meters[i] = int64(byKey[d].DistanceMeters)
		cols.seconds[i] = int64(byKey[d].DurationSeconds)
	}
	return cols, nil
}

// scanRow reads (destination, meters, seconds) rows into a lookup map.
func scanRow(rows *sql.Rows, sizeHint int) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, sizeHint)
	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return out, nil
}

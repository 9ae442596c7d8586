package cache

import (
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "52.520000,13.405000", LocationKey(domain.Coordinates{Lat: 52.52, Lon: 13.405}))
}

func TestUniqueKeys(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, uniqueKeys([]string{" b", "a", "", "b ", "a"}))
}

func TestSplitRowOrdersByDestination(t *testing.T) {
	cols, err := splitRow(map[string]ports.DistanceResult{
		"c":  {DistanceMeters: 30, DurationSeconds: 3},
		" a": {DistanceMeters: 10, DurationSeconds: 1},
		"b":  {DistanceMeters: 20, DurationSeconds: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cols.Len())
	assert.Equal(t, []string{"a", "b", "c"}, cols.dests)
	assert.Equal(t, []int64{10, 20, 30}, cols.meters)
	assert.Equal(t, []int64{1, 2, 3}, cols.seconds)
}

func TestSplitRowRejectsEmptyKey(t *testing.T) {
	_, err := splitRow(map[string]ports.DistanceResult{"": {}})
	assert.Error(t, err)
}

func TestSqliteUpsertPlaceholders(t *testing.T) {
	cols, err := splitRow(map[string]ports.DistanceResult{"a": {DistanceMeters: 1}, "b": {DistanceMeters: 2}})
	require.NoError(t, err)

	q, args := sqliteUpsert("o", cols, 1, 2)
	assert.Contains(t, q, "VALUES (?, ?, ?, ?) ON CONFLICT")
	assert.Equal(t, []any{"o", "b", int64(2), int64(0)}, args)
}

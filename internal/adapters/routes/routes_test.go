package routes

import (
	"bytes"
	"genetic-route-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() ([]domain.City, domain.RoutePlan) {
	cities := []domain.City{
		{Name: "A", Coordinates: domain.Coordinates{Lat: 0, Lon: 0}},
		{Name: "B", Coordinates: domain.Coordinates{Lat: 0, Lon: 1}},
		{Name: "C", Coordinates: domain.Coordinates{Lat: 1, Lon: 1}},
	}
	plan := domain.RoutePlan{Order: []int{0, 2, 1}, Distance: 12.34}
	return cities, plan
}

func TestCSVWriterWritesRouteOrder(t *testing.T) {
	cities, plan := testRoute()

	var buf bytes.Buffer
	require.NoError(t, CSVWriter{}.WriteRoute(&buf, cities, plan))

	assert.Equal(t, "A,0,0\nC,1,1\nB,0,1\n", buf.String())
}

func TestGPXWriterClosesTrack(t *testing.T) {
	cities, plan := testRoute()

	var buf bytes.Buffer
	require.NoError(t, GPXWriter{TrackName: "test"}.WriteRoute(&buf, cities, plan))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 3, strings.Count(out, "<wpt "))
	// Three stops plus the return to the start.
	assert.Equal(t, 4, strings.Count(out, "<trkpt "))
	assert.Contains(t, out, "<name>test</name>")
}

func TestForFormat(t *testing.T) {
	w, err := ForFormat("GPX")
	require.NoError(t, err)
	assert.Equal(t, "gpx", w.Ext())

	w, err = ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "csv", w.Ext())

	_, err = ForFormat("kml")
	assert.Error(t, err)
}

func TestWriteFileNamesByDistance(t *testing.T) {
	cities, plan := testRoute()
	dir := t.TempDir()

	path, err := WriteFile(CSVWriter{}, dir, "/data/tasks/berlin.csv", cities, plan)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "berlin-12.3km.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A,0,0\nC,1,1\nB,0,1\n", string(content))
}

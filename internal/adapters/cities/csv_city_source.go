package cities

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Reads cities from a CSV file with rows "name,lat,lon" in degrees.
// A first row whose coordinates are not numeric is treated as a header.
type CSVCitySource struct {
	Path string
}

func NewCSVCitySource(path string) *CSVCitySource {
	return &CSVCitySource{Path: path}
}

func (s *CSVCitySource) Name() string { return filepath.Base(s.Path) }

func (s *CSVCitySource) LoadCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, "cities.csv.LoadCities")(&err)

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load csv cities: open %q: %w", s.Path, err)
	}
	defer f.Close()

	cities, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load csv cities: %q: %w", s.Path, err)
	}
	return cities, nil
}

// ParseCSV reads "name,lat,lon" rows. Blank lines are skipped.
func ParseCSV(r io.Reader) ([]domain.City, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	cities := make([]domain.City, 0, 64)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}

		if len(rec) < 3 {
			return nil, fmt.Errorf("parse csv: line %d: want 3 fields (name,lat,lon), got %d", line, len(rec))
		}

		name := strings.TrimSpace(rec[0])
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if latErr != nil || lonErr != nil {
			if len(cities) == 0 && line == 1 {
				continue
			}
			return nil, fmt.Errorf("parse csv: line %d: invalid coordinates %q,%q", line, rec[1], rec[2])
		}

		cities = append(cities, domain.City{
			Name:        name,
			Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
		})
	}

	return cities, nil
}

package cities

import (
	"context"
	"encoding/json"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
	"os"
	"path/filepath"
)

type CitySeed struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Reads cities from a JSON array of {"name","lat","lon"} objects.
type JSONCitySource struct {
	Path string
}

func NewJSONCitySource(path string) *JSONCitySource {
	return &JSONCitySource{Path: path}
}

func (s *JSONCitySource) Name() string { return filepath.Base(s.Path) }

func (s *JSONCitySource) LoadCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, "cities.json.LoadCities")(&err)

	bytes, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load json cities: read %q: %w", s.Path, err)
	}

	var data []CitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load json cities: parse %q: %w", s.Path, err)
	}

	cities := make([]domain.City, 0, len(data))
	for _, item := range data {
		cities = append(cities, domain.City{
			Name:        item.Name,
			Coordinates: domain.Coordinates{Lat: item.Lat, Lon: item.Lon},
		})
	}
	return cities, nil
}

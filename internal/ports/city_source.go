package ports

import (
	"context"
	"genetic-route-service/internal/domain"
)

// Port: a boundary for retrieving the cities of one routing task.
type CitySource interface {
	// Return cities in input order. The order defines each city's index.
	LoadCities(ctx context.Context) ([]domain.City, error)
	// Human readable identifier used in logs, run records and output names.
	Name() string
}

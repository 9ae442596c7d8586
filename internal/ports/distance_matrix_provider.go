package ports

import (
	"context"
	"genetic-route-service/internal/domain"
)

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return the full square matrix of distances between all locations.
	// Row i, column j holds the result from locations[i] to locations[j].
	GetMatrix(ctx context.Context, locations []domain.Coordinates) ([][]DistanceResult, error)
}

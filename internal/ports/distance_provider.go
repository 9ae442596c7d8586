package ports

import (
	"context"
	"genetic-route-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between two coordinates.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two locations.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}

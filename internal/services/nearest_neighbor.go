package services

import (
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"math"
)

// Build a closed route with the greedy nearest-neighbor heuristic.
//
// Starting at the point with id start, the route always moves to the closest
// unvisited point under the tour's metric. It is a baseline for judging an
// evolved route, not an optimizer.
// Ties go to the lower point id so the result is deterministic.
func NearestNeighborTour(base domain.Tour, start int) (domain.Tour, error) {
	n := base.Len()
	if n == 0 {
		return base, nil
	}

	metric := base.Metric()
	remaining := base.Points()

	current := -1
	for i, p := range remaining {
		if p.ID() == start {
			current = i
			break
		}
	}
	if current < 0 {
		return domain.Tour{}, fmt.Errorf("nearest neighbor: start id %d not in tour", start)
	}

	route := make([]domain.Point, 0, n)
	route = append(route, remaining[current])
	remaining = append(remaining[:current], remaining[current+1:]...)

	for len(remaining) > 0 {
		from := route[len(route)-1]

		best := -1
		minDistance := math.Inf(1)
		// Select next stop by minimum distance (greedy step).
		for i, p := range remaining {
			d := metric(from, p)
			if d < minDistance || (d == minDistance && (best < 0 || p.ID() < remaining[best].ID())) {
				minDistance = d
				best = i
			}
		}
		if best < 0 {
			return domain.Tour{}, errors.New("nearest neighbor: failed to select next point")
		}

		route = append(route, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	tour, err := domain.NewTour(route, metric)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("nearest neighbor: %w", err)
	}
	return tour, nil
}

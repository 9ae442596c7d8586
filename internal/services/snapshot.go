package services

import (
	"genetic-route-service/internal/domain"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summarize a generation for progress reporting.
func newSnapshot(gen int, elapsed time.Duration, pop domain.Population, best domain.Tour) domain.Snapshot {
	distances := make([]float64, pop.Len())
	for i := range distances {
		distances[i] = pop.At(i).Distance()
	}

	s := domain.Snapshot{
		Generation:   gen,
		Elapsed:      elapsed,
		BestDistance: best.Distance(),
		BestFitness:  best.Fitness(),
		PopSize:      pop.Len(),
	}
	switch len(distances) {
	case 0:
	case 1:
		s.MeanDistance = distances[0]
	default:
		s.MeanDistance, s.StdDevDistance = stat.MeanStdDev(distances, nil)
	}
	return s
}

package domain

import "time"

// Represents the planned closed route over a set of input cities.
// A RoutePlan is the output of an evolution run. Order holds input indices
// and always starts at index 0, the first city read.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	Order       []int
	Metric      string
	Distance    float64
	Fitness     float64
	Generations int
	Elapsed     time.Duration
	StopReason  string
	// Length of the greedy nearest-neighbor route over the same cities.
	Baseline float64
}

// Build a RoutePlan from a tour whose point ids are input indices.
func NewRoutePlan(t Tour, metric string) RoutePlan {
	rotated := t.RotateTo(0)
	return RoutePlan{
		Order:    rotated.IDs(),
		Metric:   metric,
		Distance: rotated.Distance(),
		Fitness:  rotated.Fitness(),
	}
}

// Return the cities in route order.
func (r RoutePlan) Cities(cities []City) []City {
	out := make([]City, 0, len(r.Order))
	for _, i := range r.Order {
		if i >= 0 && i < len(cities) {
			out = append(out, cities[i])
		}
	}
	return out
}

package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Represents one candidate closed route: an ordered permutation of points.
//
// A Tour is an immutable value. Every operator returns a new Tour backed by a
// freshly allocated slice, so tours of different generations never alias.
// Distance is computed once when the tour is built.
type Tour struct {
	points   []Point
	metric   Metric
	distance float64
}

// Build a tour visiting points in the given order.
// Point ids must be unique; a nil metric selects Haversine.
func NewTour(points []Point, metric Metric) (Tour, error) {
	seen := make(map[int]struct{}, len(points))
	for i, p := range points {
		if _, ok := seen[p.id]; ok {
			return Tour{}, fmt.Errorf("new tour: point %d (id=%d): %w", i, p.id, ErrDuplicatePoint)
		}
		seen[p.id] = struct{}{}
	}

	if metric == nil {
		metric = Haversine
	}

	return freeze(append([]Point(nil), points...), metric), nil
}

// freeze takes ownership of points and computes the cyclic distance.
func freeze(points []Point, metric Metric) Tour {
	t := Tour{points: points, metric: metric}

	n := len(points)
	if n < 2 {
		return t
	}
	for i := range n {
		t.distance += metric(points[i], points[(i+1)%n])
	}
	return t
}

func (t Tour) Len() int { return len(t.points) }
func (t Tour) At(i int) Point { return t.points[i] }
func (t Tour) Metric() Metric { return t.metric }
func (t Tour) Distance() float64 { return t.distance }

// Fitness is the inverse of the distance; higher is better.
// A tour of zero length (fewer than two points) has infinite fitness.
func (t Tour) Fitness() float64 {
	if t.distance == 0 {
		return math.Inf(1)
	}
	return 1 / t.distance
}

// Return a copy of the points in tour order.
func (t Tour) Points() []Point { return append([]Point(nil), t.points...) }

// Return the point ids in tour order.
func (t Tour) IDs() []int {
	ids := make([]int, len(t.points))
	for i, p := range t.points {
		ids[i] = p.id
	}
	return ids
}

// Report whether both tours visit the same ids in the same order.
func (t Tour) Equal(other Tour) bool {
	if len(t.points) != len(other.points) {
		return false
	}
	for i := range t.points {
		if t.points[i].id != other.points[i].id {
			return false
		}
	}
	return true
}

// Return the tour rotated so that the point with the given id comes first.
// The closed route, and therefore the distance, is unchanged.
func (t Tour) RotateTo(id int) Tour {
	n := len(t.points)
	pivot := -1
	for i, p := range t.points {
		if p.id == id {
			pivot = i
			break
		}
	}
	if pivot <= 0 {
		return t.with(t.Points())
	}

	out := make([]Point, 0, n)
	out = append(out, t.points[pivot:]...)
	out = append(out, t.points[:pivot]...)
	return t.with(out)
}

// Return the tour traversed in the opposite direction.
func (t Tour) Reverse() Tour {
	n := len(t.points)
	out := make([]Point, n)
	for i, p := range t.points {
		out[n-1-i] = p
	}
	return t.with(out)
}

func (t Tour) with(points []Point) Tour { return freeze(points, t.metric) }

// Return the same points in a uniformly random order (Fisher–Yates).
func (t Tour) Shuffle(rng *rand.Rand) Tour {
	out := t.Points()
	for n := len(out); n > 1; n-- {
		k := rng.IntN(n)
		out[k], out[n-1] = out[n-1], out[k]
	}
	return t.with(out)
}

// Produce one child by ordered crossover.
//
// A contiguous segment t[i..j] keeps its position and internal order; every
// other slot is filled with the remaining cities in the order other visits
// them. The child is a permutation of other's cities.
func (t Tour) Crossover(rng *rand.Rand, other Tour) (Tour, error) {
	points, err := t.crossover(rng, other)
	if err != nil {
		return Tour{}, err
	}
	return freeze(points, other.metric), nil
}

// crossover returns the child's points in a slice owned by the caller.
func (t Tour) crossover(rng *rand.Rand, other Tour) ([]Point, error) {
	n := len(t.points)
	if len(other.points) != n {
		return nil, fmt.Errorf("crossover: %d vs %d points: %w", n, len(other.points), ErrTourSizeMismatch)
	}
	if n == 0 {
		return []Point{}, nil
	}

	i := rng.IntN(n)
	j := i + rng.IntN(n-i)
	segment := t.points[i : j+1]

	inSegment := make(map[int]struct{}, len(segment))
	for _, p := range segment {
		inSegment[p.id] = struct{}{}
	}

	rest := make([]Point, 0, n-len(segment))
	for _, p := range other.points {
		if _, ok := inSegment[p.id]; !ok {
			rest = append(rest, p)
		}
	}

	if len(rest)+len(segment) != n {
		return nil, fmt.Errorf(
			"crossover: segment=%d remainder=%d size=%d: %w",
			len(segment), len(rest), n, ErrCrossoverMismatch,
		)
	}

	child := make([]Point, 0, n)
	child = append(child, rest[:i]...)
	child = append(child, segment...)
	child = append(child, rest[i:]...)
	return child, nil
}

// With probability rate, swap two uniformly chosen positions (possibly the
// same one). Otherwise return an unchanged copy.
func (t Tour) Mutate(rng *rand.Rand, rate float64) Tour {
	out := t.Points()
	mutateOnce(rng, out, rate)
	return t.with(out)
}

// mutateOnce performs one mutation trial in place.
func mutateOnce(rng *rand.Rand, points []Point, rate float64) {
	if rng.Float64() >= rate || len(points) == 0 {
		return
	}
	i := rng.IntN(len(points))
	j := rng.IntN(len(points))
	points[i], points[j] = points[j], points[i]
}

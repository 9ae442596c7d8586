package domain

import (
	"math"
	"math/rand/v2"
)

// Mean Earth diameter in kilometers.
const EarthDiameterKm = 2 * 6378.1370

// Represents one location visited by a tour.
// A Point is immutable; its id is the identity used when tours are recombined,
// so two points with equal coordinates are still distinct cities.
type Point struct {
	id   int
	name string
	x    float64
	y    float64
}

func NewPoint(id int, name string, x, y float64) Point {
	return Point{id: id, name: name, x: x, y: y}
}

// Return a point with coordinates drawn uniformly from [0,1).
// Intended for synthetic instances only.
func RandomPoint(rng *rand.Rand, id int) Point {
	return Point{id: id, x: rng.Float64(), y: rng.Float64()}
}

func (p Point) ID() int { return p.id }
func (p Point) Name() string { return p.name }
func (p Point) X() float64 { return p.x }
func (p Point) Y() float64 { return p.y }

// Return the great-circle distance in kilometers to another point.
func (p Point) DistanceTo(other Point) float64 { return Haversine(p, other) }

// Pairwise distance between two points. The coordinate system belongs to the
// metric, not to Point.
type Metric func(a, b Point) float64

// Haversine treats x as latitude and y as longitude, both in radians, and
// returns the great-circle distance in kilometers.
func Haversine(a, b Point) float64 {
	h := 0.5 * (1 - math.Cos(b.x-a.x) + math.Cos(a.x)*math.Cos(b.x)*(1-math.Cos(b.y-a.y)))
	// Rounding can push h slightly outside [0,1] for antipodal or identical points.
	h = math.Min(1, math.Max(0, h))
	return EarthDiameterKm * math.Asin(math.Sqrt(h))
}

// Planar returns the Euclidean distance between two points.
func Planar(a, b Point) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}

// MatrixMetric looks distances up by point id in a precomputed square matrix.
// Ids outside the matrix yield +Inf.
func MatrixMetric(m [][]float64) Metric {
	return func(a, b Point) float64 {
		if a.id < 0 || a.id >= len(m) || b.id < 0 || b.id >= len(m[a.id]) {
			return math.Inf(1)
		}
		return m[a.id][b.id]
	}
}

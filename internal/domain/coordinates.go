package domain

import "math"

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Return coordinates converted to radians.
func (c Coordinates) Radians() (lat, lon float64) {
	const d2r = math.Pi / 180
	return c.Lat * d2r, c.Lon * d2r
}

// A named input location, kept in the order it was read.
// The position of a City in its input list is the id of the Point built from it.
type City struct {
	Name string
	Coordinates
}

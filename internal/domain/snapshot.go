package domain

import "time"

// Progress of an evolution run at the start of one generation.
type Snapshot struct {
	Generation     int
	Elapsed        time.Duration
	BestDistance   float64
	BestFitness    float64
	MeanDistance   float64
	StdDevDistance float64
	PopSize        int
}

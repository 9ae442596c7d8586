package domain

import "fmt"

// Evolution parameters read once per run.
type Params struct {
	// Number of tours in every generation.
	PopSize int
	// Probability in [0,1] that a single mutation trial swaps two cities.
	// Every child gets one trial per city.
	MutationRate float64
	// Number of best tours carried over unchanged into the next generation.
	Elitism int
}

// Return the defaults of the original solver: a population of 20 with the
// 5 best surviving and a 2.5% per-gene mutation rate.
func DefaultParams() Params {
	return Params{PopSize: 20, MutationRate: 0.025, Elitism: 5}
}

func (p Params) Validate() error {
	if p.PopSize <= 0 {
		return fmt.Errorf("validate params: pop size %d must be positive: %w", p.PopSize, ErrInvalidParams)
	}
	if p.MutationRate < 0 || p.MutationRate > 1 {
		return fmt.Errorf("validate params: mutation rate %g must be within [0,1]: %w", p.MutationRate, ErrInvalidParams)
	}
	if p.Elitism < 0 || p.Elitism > p.PopSize {
		return fmt.Errorf(
			"validate params: elitism %d must be within [0,%d]: %w",
			p.Elitism, p.PopSize, ErrInvalidParams,
		)
	}
	return nil
}

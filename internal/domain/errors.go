package domain

import "errors"

var (
	// ErrInvalidParams is returned when evolution parameters are out of range.
	ErrInvalidParams = errors.New("invalid evolution parameters")

	// ErrTooFewPoints is returned when a route has fewer than two points.
	// A closed tour over 0 or 1 points has zero length and no defined fitness.
	ErrTooFewPoints = errors.New("at least two points are required")

	ErrDuplicatePoint    = errors.New("duplicate point id")
	ErrTourSizeMismatch  = errors.New("tours have different sizes")
	ErrCrossoverMismatch = errors.New("crossover remainder does not reconcile with tour size")
	ErrEliteOutOfRange   = errors.New("elite count out of range")
	ErrEmptyPopulation   = errors.New("population is empty")
	ErrNoStopCondition   = errors.New("no stop condition configured")
)

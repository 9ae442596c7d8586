package services

import (
	"context"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"time"
)

// Stop reasons reported in results and run records.
const (
	ReasonTimeBudget       = "time budget"
	ReasonGenerationBudget = "generation budget"
	ReasonTargetDistance   = "target distance"
	ReasonInterrupted      = "interrupted"
)

// What a stop condition sees once per generation.
type Status struct {
	// Number of completed generations.
	Generation int
	Elapsed    time.Duration
	// Best tour of the current generation.
	Best domain.Tour
}

// A predicate polled once per generation, before the generation is evolved.
type StopCondition interface {
	ShouldStop(s Status) bool
	Reason() string
}

type stopFunc struct {
	reason string
	fn     func(Status) bool
}

func (s stopFunc) ShouldStop(st Status) bool { return s.fn(st) }
func (s stopFunc) Reason() string { return s.reason }

// Stop once the elapsed time exceeds d.
func TimeBudget(d time.Duration) StopCondition {
	return stopFunc{
		reason: ReasonTimeBudget,
		fn:     func(s Status) bool { return s.Elapsed > d },
	}
}

// Stop once n generations have been evolved.
func GenerationBudget(n int) StopCondition {
	return stopFunc{
		reason: ReasonGenerationBudget,
		fn:     func(s Status) bool { return s.Generation >= n },
	}
}

// Stop once the best tour is no longer than d.
func TargetDistance(d float64) StopCondition {
	return stopFunc{
		reason: ReasonTargetDistance,
		fn:     func(s Status) bool { return s.Best.Len() > 0 && s.Best.Distance() <= d },
	}
}

// Stop once ctx is cancelled (signal, client disconnect, deadline).
func Interrupted(ctx context.Context) StopCondition {
	return stopFunc{
		reason: ReasonInterrupted,
		fn:     func(Status) bool { return ctx.Err() != nil },
	}
}

var ErrInvalidBudget = errors.New("invalid budget")

// Budgets bundles the optional run budgets. Zero values are left out.
type Budgets struct {
	TimeLimit      time.Duration
	MaxGenerations int
	TargetDistance float64
}

func (b Budgets) Validate() error {
	if b.TimeLimit < 0 {
		return fmt.Errorf("validate budgets: time limit %s must not be negative: %w", b.TimeLimit, ErrInvalidBudget)
	}
	if b.MaxGenerations < 0 {
		return fmt.Errorf("validate budgets: max generations %d must not be negative: %w", b.MaxGenerations, ErrInvalidBudget)
	}
	if b.TargetDistance < 0 {
		return fmt.Errorf("validate budgets: target distance %g must not be negative: %w", b.TargetDistance, ErrInvalidBudget)
	}
	return nil
}

// Return one stop condition per configured budget.
func (b Budgets) Conditions() []StopCondition {
	var out []StopCondition
	if b.TimeLimit > 0 {
		out = append(out, TimeBudget(b.TimeLimit))
	}
	if b.MaxGenerations > 0 {
		out = append(out, GenerationBudget(b.MaxGenerations))
	}
	if b.TargetDistance > 0 {
		out = append(out, TargetDistance(b.TargetDistance))
	}
	return out
}

package services

import (
	"context"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/ports"
	"math/rand/v2"
	"time"
)

// Lifecycle of an Evolver.
type State int

const (
	StateInit State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome of one evolution run.
type Result struct {
	// Best tour of the last completed generation.
	Best domain.Tour
	// Best tour of any generation. Equal to Best whenever Elitism >= 1.
	BestSeen    domain.Tour
	Generations int
	Elapsed     time.Duration
	Reason      string
}

type EvolverOption func(*Evolver)

// Report a snapshot each time the best fitness improves.
func WithReporter(r ports.ProgressReporter) EvolverOption {
	return func(e *Evolver) { e.reporter = r }
}

// Replace the wall clock, mainly for tests.
func WithClock(now func() time.Time) EvolverOption {
	return func(e *Evolver) { e.now = now }
}

// Evolver drives one population through successive generations until a stop
// condition fires. It owns the population and the random source of its run
// and is used exactly once.
type Evolver struct {
	params   domain.Params
	rng      *rand.Rand
	stops    []StopCondition
	reporter ports.ProgressReporter
	now      func() time.Time
	state    State
}

func NewEvolver(params domain.Params, rng *rand.Rand, stops []StopCondition, opts ...EvolverOption) (*Evolver, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("new evolver: %w", err)
	}
	if rng == nil {
		return nil, errors.New("new evolver: random source must be non-nil")
	}

	e := &Evolver{
		params: params,
		rng:    rng,
		stops:  stops,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Evolver) State() State { return e.state }

// Run evolves random shuffles of base until a stop condition fires or ctx is
// cancelled. Cancellation is a normal stop, not an error.
func (e *Evolver) Run(ctx context.Context, base domain.Tour) (Result, error) {
	if e.state != StateInit {
		return Result{}, fmt.Errorf("run evolution: evolver is %s", e.state)
	}
	if base.Len() < 2 {
		return Result{}, fmt.Errorf("run evolution: %d points: %w", base.Len(), domain.ErrTooFewPoints)
	}
	if len(e.stops) == 0 && ctx.Done() == nil {
		return Result{}, fmt.Errorf("run evolution: %w", domain.ErrNoStopCondition)
	}

	start := e.now()
	pop := domain.Randomized(e.rng, base, e.params.PopSize)
	e.state = StateRunning
	defer func() { e.state = StateStopped }()

	stops := append([]StopCondition{Interrupted(ctx)}, e.stops...)

	gen := 0
	better := true
	bestSeen, _ := pop.FindBest()
	var reason string

	for {
		best, _ := pop.FindBest()
		if best.Fitness() > bestSeen.Fitness() {
			bestSeen = best
		}
		elapsed := e.now().Sub(start)

		if better && e.reporter != nil {
			e.reporter.Report(ctx, newSnapshot(gen, elapsed, pop, best))
		}

		reason = firstStop(stops, Status{Generation: gen, Elapsed: elapsed, Best: best})
		if reason != "" {
			break
		}

		oldFit := pop.MaxFitness()
		next, err := pop.Evolve(e.rng, e.params)
		if err != nil {
			return Result{}, fmt.Errorf("run evolution: generation %d: %w", gen+1, err)
		}
		pop = next
		gen++
		better = pop.MaxFitness() > oldFit
	}

	best, _ := pop.FindBest()
	return Result{
		Best:        best,
		BestSeen:    bestSeen,
		Generations: gen,
		Elapsed:     e.now().Sub(start),
		Reason:      reason,
	}, nil
}

func firstStop(stops []StopCondition, s Status) string {
	for _, c := range stops {
		if c.ShouldStop(s) {
			return c.Reason()
		}
	}
	return ""
}

package services

import (
	"context"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
	"genetic-route-service/internal/ports"
	"log"
	"time"
)

// Supported distance metrics.
const (
	// Great-circle distance in km over input degrees.
	MetricHaversine = "haversine"
	// Euclidean distance over raw input coordinates.
	MetricPlanar = "planar"
	// Road distance in km from a DistanceMatrixProvider.
	MetricRoad = "road"
)

var (
	ErrUnknownMetric = errors.New("unknown metric")
	// The road metric was requested but no distance matrix provider is configured.
	ErrMetricUnavailable = errors.New("metric unavailable")
	// Every city sits at the same location, so no route has a finite fitness.
	ErrZeroLengthRoute = errors.New("zero-length route")
)

type SolveRequest struct {
	Source  string
	Cities  []domain.City
	Metric  string
	Params  domain.Params
	Budgets Budgets
	// Zero selects a time-based seed.
	Seed uint64
}

// Solver turns a list of cities into a RoutePlan. Every dependency is optional
// except Matrix, which the road metric requires.
type Solver struct {
	Matrix   ports.DistanceMatrixProvider
	Runs     ports.RunRepository
	Reporter ports.ProgressReporter
	Now      func() time.Time
}

// Solve validates the request, evolves a route and, when a run repository is
// configured, records the result. A failure to record is logged, not returned.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "solve")(&err)

	if len(req.Cities) < 2 {
		return nil, fmt.Errorf("solve %s: %d cities: %w", req.Source, len(req.Cities), domain.ErrTooFewPoints)
	}
	if err := req.Params.Validate(); err != nil {
		return nil, fmt.Errorf("solve %s: %w", req.Source, err)
	}
	if err := req.Budgets.Validate(); err != nil {
		return nil, fmt.Errorf("solve %s: %w", req.Source, err)
	}

	metricName := req.Metric
	if metricName == "" {
		metricName = MetricHaversine
	}

	points, metric, err := s.buildPoints(ctx, req.Cities, metricName)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", req.Source, err)
	}

	base, err := domain.NewTour(points, metric)
	if err != nil {
		return nil, fmt.Errorf("solve %s: build base tour: %w", req.Source, err)
	}
	if base.Distance() == 0 {
		return nil, fmt.Errorf("solve %s: %d cities: %w", req.Source, len(req.Cities), ErrZeroLengthRoute)
	}

	baseline, err := NearestNeighborTour(base, 0)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", req.Source, err)
	}

	rng, seed := NewRand(req.Seed)
	opts := []EvolverOption{WithClock(s.now)}
	if s.Reporter != nil {
		opts = append(opts, WithReporter(s.Reporter))
	}

	evolver, err := NewEvolver(req.Params, rng, req.Budgets.Conditions(), opts...)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", req.Source, err)
	}

	log.Printf(
		"solve start source=%s cities=%d metric=%s pop=%d mutation=%g elitism=%d seed=%d baseline=%.3f",
		req.Source, len(req.Cities), metricName, req.Params.PopSize, req.Params.MutationRate, req.Params.Elitism, seed,
		baseline.Distance(),
	)

	res, err := evolver.Run(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", req.Source, err)
	}

	plan := domain.NewRoutePlan(res.Best, metricName)
	plan.Generations = res.Generations
	plan.Elapsed = res.Elapsed
	plan.StopReason = res.Reason
	plan.Baseline = baseline.Distance()

	if s.Reporter != nil {
		s.Reporter.Finish(ctx, plan)
	}

	if s.Runs != nil {
		// Interrupted runs are recorded too.
		run := domain.NewRun(req.Source, len(req.Cities), req.Params, plan, s.now())
		if _, err := s.Runs.SaveRun(context.WithoutCancel(ctx), run); err != nil {
			log.Printf("save run failed source=%s err=%v", req.Source, err)
		}
	}

	return &plan, nil
}

func (s *Solver) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// buildPoints converts input cities into core points whose ids are the input
// indices, together with the metric matching their coordinate system.
func (s *Solver) buildPoints(ctx context.Context, cities []domain.City, metric string) ([]domain.Point, domain.Metric, error) {
	points := make([]domain.Point, len(cities))

	switch metric {
	case MetricHaversine:
		for i, c := range cities {
			lat, lon := c.Radians()
			points[i] = domain.NewPoint(i, c.Name, lat, lon)
		}
		return points, domain.Haversine, nil

	case MetricPlanar:
		for i, c := range cities {
			points[i] = domain.NewPoint(i, c.Name, c.Lat, c.Lon)
		}
		return points, domain.Planar, nil

	case MetricRoad:
		if s.Matrix == nil {
			return nil, nil, fmt.Errorf("build points: %s needs a distance matrix provider: %w", metric, ErrMetricUnavailable)
		}

		locations := make([]domain.Coordinates, len(cities))
		for i, c := range cities {
			points[i] = domain.NewPoint(i, c.Name, c.Lat, c.Lon)
			locations[i] = c.Coordinates
		}

		results, err := s.Matrix.GetMatrix(ctx, locations)
		if err != nil {
			return nil, nil, fmt.Errorf("build points: get road matrix: %w", err)
		}
		km, err := kilometerMatrix(results, len(cities))
		if err != nil {
			return nil, nil, fmt.Errorf("build points: %w", err)
		}
		return points, domain.MatrixMetric(km), nil
	}

	return nil, nil, fmt.Errorf("build points: %q: %w", metric, ErrUnknownMetric)
}

func kilometerMatrix(results [][]ports.DistanceResult, n int) ([][]float64, error) {
	if len(results) != n {
		return nil, fmt.Errorf("road matrix has %d rows, want %d", len(results), n)
	}

	km := make([][]float64, n)
	for i, row := range results {
		if len(row) != n {
			return nil, fmt.Errorf("road matrix row %d has %d columns, want %d", i, len(row), n)
		}
		km[i] = make([]float64, n)
		for j, r := range row {
			km[i][j] = float64(r.DistanceMeters) / 1000
		}
	}
	return km, nil
}

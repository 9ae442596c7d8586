package services

import (
	"context"
	"genetic-route-service/internal/domain"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
	finished  []domain.RoutePlan
}

func (r *recordingReporter) Report(ctx context.Context, s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

func (r *recordingReporter) Finish(ctx context.Context, plan domain.RoutePlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, plan)
}

// Return a clock that advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func squareTour(t *testing.T) domain.Tour {
	t.Helper()
	tour, err := domain.NewTour([]domain.Point{
		domain.NewPoint(0, "a", 0, 0),
		domain.NewPoint(1, "b", 0, 1),
		domain.NewPoint(2, "c", 1, 1),
		domain.NewPoint(3, "d", 1, 0),
	}, domain.Planar)
	require.NoError(t, err)
	return tour
}

func randomTour(t *testing.T, seed uint64, n int) domain.Tour {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	points := make([]domain.Point, n)
	for i := range points {
		points[i] = domain.RandomPoint(rng, i)
	}
	tour, err := domain.NewTour(points, domain.Planar)
	require.NoError(t, err)
	return tour
}

func newTestEvolver(t *testing.T, seed uint64, stops []StopCondition, opts ...EvolverOption) *Evolver {
	t.Helper()
	rng, _ := NewRand(seed)
	e, err := NewEvolver(domain.Params{PopSize: 40, MutationRate: 0.025, Elitism: 4}, rng, stops, opts...)
	require.NoError(t, err)
	return e
}

func TestEvolverGenerationBudget(t *testing.T) {
	e := newTestEvolver(t, 1, []StopCondition{GenerationBudget(25)})
	assert.Equal(t, StateInit, e.State())

	res, err := e.Run(context.Background(), randomTour(t, 3, 10))
	require.NoError(t, err)

	assert.Equal(t, StateStopped, e.State())
	assert.Equal(t, 25, res.Generations)
	assert.Equal(t, ReasonGenerationBudget, res.Reason)
	assert.Equal(t, 10, res.Best.Len())
	assert.LessOrEqual(t, res.BestSeen.Distance(), res.Best.Distance())
}

func TestEvolverTimeBudget(t *testing.T) {
	e := newTestEvolver(t, 2, []StopCondition{TimeBudget(3 * time.Second)}, WithClock(steppingClock(time.Second)))

	res, err := e.Run(context.Background(), randomTour(t, 4, 6))
	require.NoError(t, err)

	// Elapsed is 1s at generation 0 and first exceeds 3s at generation 3.
	assert.Equal(t, 3, res.Generations)
	assert.Equal(t, ReasonTimeBudget, res.Reason)
}

func TestEvolverTargetDistance(t *testing.T) {
	e := newTestEvolver(t, 3, []StopCondition{TargetDistance(4.05), GenerationBudget(1000)})

	res, err := e.Run(context.Background(), squareTour(t))
	require.NoError(t, err)

	assert.Equal(t, ReasonTargetDistance, res.Reason)
	assert.LessOrEqual(t, res.Best.Distance(), 4.05)
}

func TestEvolverFirstConditionWins(t *testing.T) {
	e := newTestEvolver(t, 4, []StopCondition{GenerationBudget(0), TimeBudget(0)}, WithClock(steppingClock(time.Second)))

	res, err := e.Run(context.Background(), squareTour(t))
	require.NoError(t, err)
	assert.Equal(t, ReasonGenerationBudget, res.Reason)
	assert.Equal(t, 0, res.Generations)
}

func TestEvolverCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEvolver(t, 5, nil)
	res, err := e.Run(ctx, randomTour(t, 5, 8))
	require.NoError(t, err)

	assert.Equal(t, ReasonInterrupted, res.Reason)
	assert.Equal(t, 0, res.Generations)
	assert.Equal(t, 8, res.Best.Len())
}

func TestEvolverInterruptedWhileRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopAfter := stopFunc{reason: "test", fn: func(s Status) bool {
		if s.Generation == 10 {
			cancel()
		}
		return false
	}}

	e := newTestEvolver(t, 6, []StopCondition{stopAfter})
	res, err := e.Run(ctx, randomTour(t, 6, 8))
	require.NoError(t, err)

	assert.Equal(t, ReasonInterrupted, res.Reason)
	assert.Equal(t, 11, res.Generations)
}

func TestEvolverRequiresStopCondition(t *testing.T) {
	e := newTestEvolver(t, 7, nil)

	_, err := e.Run(context.Background(), squareTour(t))
	assert.ErrorIs(t, err, domain.ErrNoStopCondition)
	assert.Equal(t, StateInit, e.State())
}

func TestEvolverRejectsTooFewPoints(t *testing.T) {
	single, err := domain.NewTour([]domain.Point{domain.NewPoint(0, "a", 0, 0)}, domain.Planar)
	require.NoError(t, err)

	e := newTestEvolver(t, 8, []StopCondition{GenerationBudget(1)})
	_, err = e.Run(context.Background(), single)
	assert.ErrorIs(t, err, domain.ErrTooFewPoints)
}

func TestEvolverRunsOnce(t *testing.T) {
	e := newTestEvolver(t, 9, []StopCondition{GenerationBudget(1)})

	_, err := e.Run(context.Background(), squareTour(t))
	require.NoError(t, err)

	_, err = e.Run(context.Background(), squareTour(t))
	assert.Error(t, err)
}

func TestNewEvolverValidates(t *testing.T) {
	rng, _ := NewRand(1)

	_, err := NewEvolver(domain.Params{PopSize: 2, Elitism: 3}, rng, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)

	_, err = NewEvolver(domain.DefaultParams(), nil, nil)
	assert.Error(t, err)
}

func TestEvolverReportsImprovements(t *testing.T) {
	rep := &recordingReporter{}
	e := newTestEvolver(t, 10, []StopCondition{GenerationBudget(200)}, WithReporter(rep))

	res, err := e.Run(context.Background(), randomTour(t, 10, 15))
	require.NoError(t, err)

	require.NotEmpty(t, rep.snapshots)
	assert.Equal(t, 0, rep.snapshots[0].Generation)
	assert.Equal(t, 40, rep.snapshots[0].PopSize)

	for i := 1; i < len(rep.snapshots); i++ {
		prev, cur := rep.snapshots[i-1], rep.snapshots[i]
		assert.Greater(t, cur.Generation, prev.Generation)
		assert.Less(t, cur.BestDistance, prev.BestDistance)
	}

	last := rep.snapshots[len(rep.snapshots)-1]
	assert.InDelta(t, res.Best.Distance(), last.BestDistance, 1e-9)
	assert.GreaterOrEqual(t, last.MeanDistance, last.BestDistance)
}

func TestEvolverIsDeterministicPerSeed(t *testing.T) {
	run := func() Result {
		e := newTestEvolver(t, 77, []StopCondition{GenerationBudget(50)})
		res, err := e.Run(context.Background(), randomTour(t, 11, 12))
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.Best.IDs(), b.Best.IDs())
	assert.Equal(t, a.Best.Distance(), b.Best.Distance())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "init", StateInit.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "State(9)", State(9).String())
}

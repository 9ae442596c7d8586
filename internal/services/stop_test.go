package services

import (
	"context"
	"genetic-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopConditions(t *testing.T) {
	best := squareTour(t)

	tests := []struct {
		name   string
		cond   StopCondition
		status Status
		want   bool
	}{
		{name: "time under budget", cond: TimeBudget(time.Second), status: Status{Elapsed: time.Second}, want: false},
		{name: "time over budget", cond: TimeBudget(time.Second), status: Status{Elapsed: time.Second + 1}, want: true},
		{name: "generations under budget", cond: GenerationBudget(5), status: Status{Generation: 4}, want: false},
		{name: "generations reached", cond: GenerationBudget(5), status: Status{Generation: 5}, want: true},
		{name: "target not reached", cond: TargetDistance(3.9), status: Status{Best: best}, want: false},
		{name: "target reached exactly", cond: TargetDistance(4), status: Status{Best: best}, want: true},
		{name: "target without a tour", cond: TargetDistance(100), status: Status{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.ShouldStop(tt.status))
		})
	}
}

func TestInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cond := Interrupted(ctx)

	assert.False(t, cond.ShouldStop(Status{}))
	cancel()
	assert.True(t, cond.ShouldStop(Status{}))
	assert.Equal(t, ReasonInterrupted, cond.Reason())
}

func TestBudgetsConditions(t *testing.T) {
	assert.Empty(t, Budgets{}.Conditions())

	conds := Budgets{TimeLimit: time.Second, MaxGenerations: 10, TargetDistance: 4}.Conditions()
	require.Len(t, conds, 3)
	assert.Equal(t, ReasonTimeBudget, conds[0].Reason())
	assert.Equal(t, ReasonGenerationBudget, conds[1].Reason())
	assert.Equal(t, ReasonTargetDistance, conds[2].Reason())
}

func TestBudgetsValidate(t *testing.T) {
	assert.NoError(t, Budgets{}.Validate())

	for _, b := range []Budgets{
		{TimeLimit: -time.Second},
		{MaxGenerations: -1},
		{TargetDistance: -0.5},
	} {
		assert.ErrorIs(t, b.Validate(), ErrInvalidBudget, "%+v", b)
	}
}

func TestNewRandReproducesSeed(t *testing.T) {
	a, seedA := NewRand(99)
	b, seedB := NewRand(99)
	require.Equal(t, uint64(99), seedA)
	require.Equal(t, seedA, seedB)

	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}

	_, picked := NewRand(0)
	assert.NotZero(t, picked)
}

func TestNewSnapshot(t *testing.T) {
	tour := squareTour(t)
	worse, err := domain.NewTour([]domain.Point{tour.At(0), tour.At(2), tour.At(1), tour.At(3)}, domain.Planar)
	require.NoError(t, err)

	pop := domain.NewPopulation([]domain.Tour{tour, worse})
	s := newSnapshot(3, time.Second, pop, tour)

	assert.Equal(t, 3, s.Generation)
	assert.Equal(t, 2, s.PopSize)
	assert.Equal(t, 4.0, s.BestDistance)
	assert.InDelta(t, (4+worse.Distance())/2, s.MeanDistance, 1e-9)
	assert.Greater(t, s.StdDevDistance, 0.0)

	single := newSnapshot(0, 0, domain.NewPopulation([]domain.Tour{tour}), tour)
	assert.Equal(t, 4.0, single.MeanDistance)
	assert.Zero(t, single.StdDevDistance)
}

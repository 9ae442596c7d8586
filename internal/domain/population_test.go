package domain

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func squarePoints() []Point {
	return []Point{
		NewPoint(0, "a", 0, 0),
		NewPoint(1, "b", 0, 1),
		NewPoint(2, "c", 1, 1),
		NewPoint(3, "d", 1, 0),
	}
}

func TestEliteIsSortedAndDistinct(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	base := mustTour(t, randomPoints(rng, 8), Planar)
	pop := Randomized(rng, base, 30)

	distinct := 0
	for i := 0; i < pop.Len(); i++ {
		seen := false
		for j := 0; j < i; j++ {
			seen = seen || pop.At(j).Equal(pop.At(i))
		}
		if !seen {
			distinct++
		}
	}

	for _, k := range []int{0, 1, 5, 30} {
		elite, err := pop.Elite(k)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}
		if elite.Len() != k {
			t.Fatalf("k=%d: expected %d tours, got %d", k, k, elite.Len())
		}
		for i := 1; i < elite.Len(); i++ {
			if elite.At(i).Fitness() > elite.At(i-1).Fitness() {
				t.Fatalf("k=%d: fitness increases at %d", k, i)
			}
		}
		for i := 0; k <= distinct && i < elite.Len(); i++ {
			for j := i + 1; j < elite.Len(); j++ {
				if elite.At(i).Equal(elite.At(j)) {
					t.Fatalf("k=%d: elite %d and %d are the same tour", k, i, j)
				}
			}
		}
		if k > 0 {
			best, _ := pop.FindBest()
			if elite.At(0).Fitness() != best.Fitness() {
				t.Fatalf("k=%d: first elite is not the best tour", k)
			}
		}
	}
}

func TestEliteTakesEachMemberOnce(t *testing.T) {
	tour := mustTour(t, squarePoints(), Planar)
	pop := NewPopulation([]Tour{tour, tour.Reverse(), tour.RotateTo(2)})

	elite, err := pop.Elite(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !elite.At(0).Equal(tour) || !elite.At(1).Equal(tour.Reverse()) || !elite.At(2).Equal(tour.RotateTo(2)) {
		t.Fatal("equal-fitness members were not kept in population order")
	}
}

func TestEliteSkipsClones(t *testing.T) {
	short := mustTour(t, squarePoints(), Planar)
	crossed, err := NewTour([]Point{short.At(0), short.At(2), short.At(1), short.At(3)}, Planar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pop := NewPopulation([]Tour{short, short, crossed})

	elite, err := pop.Elite(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !elite.At(0).Equal(short) || !elite.At(1).Equal(crossed) {
		t.Fatalf("expected the best tour then the distinct one, got %v and %v", elite.At(0).IDs(), elite.At(1).IDs())
	}

	// Clones fill the remaining slots once distinct tours run out.
	elite, err = pop.Elite(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !elite.At(0).Equal(short) || !elite.At(1).Equal(short) || !elite.At(2).Equal(crossed) {
		t.Fatalf("expected clone before the weaker tour, got %v %v %v", elite.At(0).IDs(), elite.At(1).IDs(), elite.At(2).IDs())
	}
}

func TestEliteOutOfRange(t *testing.T) {
	pop := NewPopulation([]Tour{mustTour(t, squarePoints(), Planar)})

	for _, k := range []int{-1, 2} {
		if _, err := pop.Elite(k); !errors.Is(err, ErrEliteOutOfRange) {
			t.Fatalf("k=%d: expected ErrEliteOutOfRange, got %v", k, err)
		}
	}
}

func TestSelectSingleMember(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tour := mustTour(t, squarePoints(), Planar).Shuffle(rng)
	pop := NewPopulation([]Tour{tour})

	for range 100 {
		if got := pop.Select(rng); !got.Equal(tour) {
			t.Fatalf("expected the sole member, got %v", got.IDs())
		}
	}
}

func TestSelectFavoursFitterMembers(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	good := mustTour(t, squarePoints(), Planar)
	bad, err := NewTour([]Point{good.At(0), good.At(2), good.At(1), good.At(3)}, Planar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pop := NewPopulation([]Tour{good, bad})

	goodHits := 0
	const draws = 4000
	for range draws {
		if pop.Select(rng).Equal(good) {
			goodHits++
		}
	}

	// P(good) = 1 / (1 + 4/(2+2*sqrt2)), about 0.547.
	if goodHits < draws*50/100 || goodHits > draws*60/100 {
		t.Fatalf("expected about 55%% good picks, got %d of %d", goodHits, draws)
	}
}

func TestEvolveSingleMemberIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	tour := mustTour(t, randomPoints(rng, 6), Planar).Shuffle(rng)
	pop := NewPopulation([]Tour{tour})

	for _, params := range []Params{
		{PopSize: 1, Elitism: 1, MutationRate: 0.5},
		{PopSize: 1, Elitism: 0, MutationRate: 0},
	} {
		next, err := pop.Evolve(rng, params)
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", params, err)
		}
		if next.Len() != 1 || !next.At(0).Equal(tour) {
			t.Fatalf("%+v: expected the input tour, got %v", params, next.At(0).IDs())
		}
	}
}

func TestEvolveKeepsBestWithElitism(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	base := mustTour(t, randomPoints(rng, 12), Planar)
	params := Params{PopSize: 30, MutationRate: 0.05, Elitism: 1}

	pop := Randomized(rng, base, params.PopSize)
	for gen := range 200 {
		prev := pop.MaxFitness()
		next, err := pop.Evolve(rng, params)
		if err != nil {
			t.Fatalf("generation %d: unexpected error: %v", gen, err)
		}
		if next.Len() != params.PopSize {
			t.Fatalf("generation %d: expected %d tours, got %d", gen, params.PopSize, next.Len())
		}
		if next.MaxFitness() < prev {
			t.Fatalf("generation %d: max fitness dropped from %v to %v", gen, prev, next.MaxFitness())
		}
		pop = next
	}
}

func TestEvolveFindsUnitSquarePerimeter(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	base := mustTour(t, squarePoints(), Planar)
	params := Params{PopSize: 40, MutationRate: 0.025, Elitism: 4}

	pop := Randomized(rng, base, params.PopSize)
	for range 100 {
		next, err := pop.Evolve(rng, params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pop = next
	}

	best, ok := pop.FindBest()
	if !ok {
		t.Fatal("expected a best tour")
	}
	if best.Distance() > 4.05 {
		t.Fatalf("expected distance <= 4.05, got %v", best.Distance())
	}
}

func TestGenNewPopWithoutMutationOnlyRecombines(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 13))
	base := mustTour(t, randomPoints(rng, 7), Planar)
	pop := Randomized(rng, base, 10)

	// Same seed: one child must match select, select, crossover exactly.
	a := rand.New(rand.NewPCG(100, 200))
	b := rand.New(rand.NewPCG(100, 200))

	children, err := pop.GenNewPop(a, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := pop.Select(b)
	second := pop.Select(b)
	want, err := first.Crossover(b, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !children.At(0).Equal(want) {
		t.Fatalf("expected %v, got %v", want.IDs(), children.At(0).IDs())
	}

	// A population of clones stays a population of clones.
	clones := NewPopulation([]Tour{base, base, base, base})
	for range 20 {
		next, err := clones.GenNewPop(rng, 4, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range next.Len() {
			if !next.At(i).Equal(base) {
				t.Fatalf("child %d changed without mutation: %v", i, next.At(i).IDs())
			}
		}
		clones = next
	}
}

func TestGenNewPopEmptyPopulation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	if _, err := NewPopulation(nil).GenNewPop(rng, 3, 0.1); !errors.Is(err, ErrEmptyPopulation) {
		t.Fatalf("expected ErrEmptyPopulation, got %v", err)
	}
	if p, err := NewPopulation(nil).GenNewPop(rng, 0, 0.1); err != nil || p.Len() != 0 {
		t.Fatalf("expected empty population, got %d tours, err=%v", p.Len(), err)
	}
}

func TestEvolveRejectsInvalidParams(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	pop := Randomized(rng, mustTour(t, squarePoints(), Planar), 4)

	for _, params := range []Params{
		{PopSize: 0},
		{PopSize: 4, Elitism: 5},
		{PopSize: 4, MutationRate: 1.5},
		{PopSize: 4, MutationRate: -0.1},
		{PopSize: 4, Elitism: -1},
	} {
		if _, err := pop.Evolve(rng, params); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%+v: expected ErrInvalidParams, got %v", params, err)
		}
	}
}

func TestPopulationIsImmutable(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 7))
	base := mustTour(t, randomPoints(rng, 6), Planar)
	pop := Randomized(rng, base, 8)

	before := make([][]int, pop.Len())
	for i := range before {
		before[i] = pop.At(i).IDs()
	}

	if _, err := pop.Evolve(rng, Params{PopSize: 8, MutationRate: 1, Elitism: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range before {
		got := pop.At(i).IDs()
		for k := range got {
			if got[k] != before[i][k] {
				t.Fatalf("member %d changed after Evolve", i)
			}
		}
	}
}

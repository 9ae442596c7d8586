package domain

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// Upper bound on rejection-sampling draws per member in Select. Acceptance
// probability is at least minFitness/maxFitness, so the bound is never reached
// for a population with finite, positive fitness values.
const selectAttemptsPerMember = 1000

// An unordered, immutable collection of tours evolved together.
type Population struct {
	tours []Tour
}

func NewPopulation(tours []Tour) Population {
	return Population{tours: append([]Tour(nil), tours...)}
}

// Return n independent shuffles of base.
func Randomized(rng *rand.Rand, base Tour, n int) Population {
	tours := make([]Tour, 0, n)
	for range n {
		tours = append(tours, base.Shuffle(rng))
	}
	return Population{tours: tours}
}

func (p Population) Len() int { return len(p.tours) }
func (p Population) At(i int) Tour { return p.tours[i] }
func (p Population) Tours() []Tour { return append([]Tour(nil), p.tours...) }

// Return the highest fitness of any member, or 0 for an empty population.
func (p Population) MaxFitness() float64 {
	best := 0.0
	for _, t := range p.tours {
		if f := t.Fitness(); f > best {
			best = f
		}
	}
	return best
}

// Return the first member whose fitness equals MaxFitness.
func (p Population) FindBest() (Tour, bool) {
	i := bestIndex(p.tours, nil)
	if i < 0 {
		return Tour{}, false
	}
	return p.tours[i], true
}

// bestIndex returns the position of the first fittest tour among tours
// restricted to idx (all tours when idx is nil), or -1 if there are none.
func bestIndex(tours []Tour, idx []int) int {
	best := -1
	bestFit := math.Inf(-1)

	consider := func(i int) {
		if f := tours[i].Fitness(); best < 0 || f > bestFit {
			best = i
			bestFit = f
		}
	}

	if idx == nil {
		for i := range tours {
			consider(i)
		}
		return best
	}
	for _, i := range idx {
		consider(i)
	}
	return best
}

// Pick a member with probability proportional to its fitness (roulette wheel
// by rejection sampling). An empty population yields the zero Tour.
func (p Population) Select(rng *rand.Rand) Tour {
	n := len(p.tours)
	if n == 0 {
		return Tour{}
	}

	maxFit := p.MaxFitness()
	for range selectAttemptsPerMember * n {
		candidate := p.tours[rng.IntN(n)]
		if rng.Float64() < acceptance(candidate.Fitness(), maxFit) {
			return candidate
		}
	}

	best, _ := p.FindBest()
	return best
}

func acceptance(fitness, maxFit float64) float64 {
	if math.IsInf(maxFit, 1) {
		if math.IsInf(fitness, 1) {
			return 1
		}
		return 0
	}
	if maxFit <= 0 {
		return 1
	}
	return fitness / maxFit
}

// Return the n fittest members in non-increasing fitness order. Each member is
// taken at most once and value-equal tours are skipped while enough distinct
// ones remain. Ties keep population order.
func (p Population) Elite(n int) (Population, error) {
	if n < 0 || n > len(p.tours) {
		return Population{}, fmt.Errorf("elite: n=%d size=%d: %w", n, len(p.tours), ErrEliteOutOfRange)
	}

	distinct := make([]int, 0, len(p.tours))
	clones := make([]int, 0, len(p.tours))
	for i, t := range p.tours {
		dup := false
		for _, j := range distinct {
			if p.tours[j].Equal(t) {
				dup = true
				break
			}
		}
		if dup {
			clones = append(clones, i)
		} else {
			distinct = append(distinct, i)
		}
	}

	chosen := make([]int, 0, n)
	for range n {
		pool := distinct
		if len(pool) == 0 {
			pool = clones
		}
		i := bestIndex(p.tours, pool)
		chosen = append(chosen, i)
		if len(distinct) > 0 {
			distinct = removeIndex(distinct, i)
		} else {
			clones = removeIndex(clones, i)
		}
	}

	// Clones picked last may outrank the weakest distinct pick.
	slices.SortFunc(chosen, func(a, b int) int {
		if c := cmp.Compare(p.tours[b].Fitness(), p.tours[a].Fitness()); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	best := make([]Tour, len(chosen))
	for k, i := range chosen {
		best[k] = p.tours[i]
	}
	return Population{tours: best}, nil
}

func removeIndex(idx []int, i int) []int {
	for k, v := range idx {
		if v == i {
			return append(idx[:k], idx[k+1:]...)
		}
	}
	return idx
}

// Breed n children. Each child is the crossover of two fitness-selected
// parents followed by one mutation trial per city.
func (p Population) GenNewPop(rng *rand.Rand, n int, mutationRate float64) (Population, error) {
	if n > 0 && len(p.tours) == 0 {
		return Population{}, fmt.Errorf("gen new pop: %w", ErrEmptyPopulation)
	}

	children := make([]Tour, 0, n)
	for range n {
		first := p.Select(rng)
		second := p.Select(rng)

		points, err := first.crossover(rng, second)
		if err != nil {
			return Population{}, fmt.Errorf("gen new pop: child %d: %w", len(children), err)
		}

		// The child slice is freshly allocated, so trials can swap in place.
		for range points {
			mutateOnce(rng, points, mutationRate)
		}

		children = append(children, freeze(points, second.metric))
	}

	return Population{tours: children}, nil
}

// Produce the next generation: the Elitism best members survive unchanged and
// the rest of the PopSize slots are bred from fitness-selected parents.
func (p Population) Evolve(rng *rand.Rand, params Params) (Population, error) {
	if err := params.Validate(); err != nil {
		return Population{}, fmt.Errorf("evolve: %w", err)
	}

	elite, err := p.Elite(params.Elitism)
	if err != nil {
		return Population{}, fmt.Errorf("evolve: %w", err)
	}

	bred, err := p.GenNewPop(rng, params.PopSize-params.Elitism, params.MutationRate)
	if err != nil {
		return Population{}, fmt.Errorf("evolve: %w", err)
	}

	next := make([]Tour, 0, params.PopSize)
	next = append(next, elite.tours...)
	next = append(next, bred.tours...)
	return Population{tours: next}, nil
}

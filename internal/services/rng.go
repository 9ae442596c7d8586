package services

import (
	"math/rand/v2"
	"time"
)

// Second PCG word mixed into every seed (SplitMix64 increment).
const seedStream uint64 = 0x9e3779b97f4a7c15

// NewRand returns the single random source of one run together with the seed
// it was built from. A zero seed is replaced by a time-based one; any other seed
// reproduces the run draw for draw.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^seedStream)), seed
}

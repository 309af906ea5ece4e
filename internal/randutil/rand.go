// Package randutil derives reproducible random sources for games and simulations.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Both PCG
// state words are derived from the one seed so call sites only carry an int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Seed returns the seed to use: the given one if set, otherwise one taken from the clock.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

// Derive returns the seed for the n-th independent game of a run seeded with base.
func Derive(base int64, n int) int64 {
	return int64(splitmix(uint64(base) + uint64(n)*goldenRatio64))
}

// Chance runs a single trial that succeeds with probability p.
// p <= 0 never succeeds and p >= 1 always does, without consuming randomness.
func Chance(rng *rand.Rand, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return rng.Float64() < p
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

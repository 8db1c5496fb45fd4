package dice

import (
	"math/rand/v2"
)

// seededSource implements Source using a PCG generator.
//
// Invariant: two sources built from the same seed produce identical sequences.
type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a reproducible Source for seed.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewSeededSource(seed int64) Source {
	s := uint64(seed)
	return &seededSource{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Intn returns a random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.IntN(n)
}

// Float64 returns a random float in [0, 1).
func (s *seededSource) Float64() float64 {
	return s.rng.Float64()
}

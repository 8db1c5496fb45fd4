// Package dice provides the seeded randomness abstraction used for every random
// choice in a session: element assignment, monster placement, weighted
// selection and critical hit rolls.
package dice

// Source is the randomness provider.
//
// Implementations are not required to be safe for concurrent use; a session
// owns exactly one Source and drives it from a single goroutine.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// Chance reports whether an event with probability p happens.
//
// Postcondition: Returns false without consuming randomness when p <= 0,
// and true without consuming randomness when p >= 1.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of choices.
//
// Precondition: len(choices) > 0.
func Pick[T any](src Source, choices []T) T {
	if len(choices) == 0 {
		panic("dice: Pick called with no choices")
	}
	return choices[src.Intn(len(choices))]
}

// PickWeighted returns an element of choices chosen with probability
// proportional to weight. Elements with a non-positive weight are never chosen.
//
// Postcondition: Returns (zero, false) iff no element has a positive weight.
func PickWeighted[T any](src Source, choices []T, weight func(T) float64) (T, bool) {
	var total float64
	for _, c := range choices {
		if w := weight(c); w > 0 {
			total += w
		}
	}
	var zero T
	if total <= 0 {
		return zero, false
	}

	roll := src.Float64() * total
	var last T
	for _, c := range choices {
		w := weight(c)
		if w <= 0 {
			continue
		}
		last = c
		if roll < w {
			return c, true
		}
		roll -= w
	}
	// float rounding can leave roll marginally above the final bucket
	return last, true
}

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

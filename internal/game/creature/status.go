package creature

import (
	"math"
	"sort"
)

// StatusEffect identifies a timed condition on a creature.
type StatusEffect int

const (
	// Slow halves the creature's speed.
	Slow StatusEffect = iota
)

// String returns the participle used in narration, e.g. "slowed".
func (fx StatusEffect) String() string {
	switch fx {
	case Slow:
		return "slowed"
	default:
		return "afflicted"
	}
}

// ActiveEffect is one status effect and its remaining duration.
type ActiveEffect struct {
	Effect    StatusEffect
	Remaining float64
}

// Combine returns the duration that results from applying d on top of
// existing: existing + (sqrt(existing² + d²) - existing), with the added part
// negated when d is negative.
func Combine(existing, d float64) float64 {
	return existing + added(existing, d)
}

func added(existing, d float64) float64 {
	a := math.Hypot(existing, d) - existing
	if d < 0 {
		a = -a
	}
	return a
}

// ActiveSet tracks all status effects currently applied to one creature.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	effects map[StatusEffect]*ActiveEffect
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{effects: make(map[StatusEffect]*ActiveEffect)}
}

// Apply combines duration with any existing duration of fx and returns the
// change in remaining duration. A negative duration shortens the effect.
//
// Postcondition: Has(fx) is true iff the resulting duration is > 0.
func (s *ActiveSet) Apply(fx StatusEffect, duration float64) float64 {
	var existing float64
	ae, ok := s.effects[fx]
	if ok {
		existing = ae.Remaining
	}
	a := added(existing, duration)
	total := existing + a
	switch {
	case total <= 0:
		delete(s.effects, fx)
	case ok:
		ae.Remaining = total
	default:
		s.effects[fx] = &ActiveEffect{Effect: fx, Remaining: total}
	}
	return a
}

// Remove deletes fx from the set. If fx is not active, Remove is a no-op.
//
// Postcondition: Has(fx) is false.
func (s *ActiveSet) Remove(fx StatusEffect) {
	delete(s.effects, fx)
}

// Tick reduces every duration by elapsed. Effects that reach 0 are removed
// and returned in ascending order.
//
// Postcondition: For every effect in the returned slice, Has is false.
func (s *ActiveSet) Tick(elapsed float64) []StatusEffect {
	var expired []StatusEffect
	for fx, ae := range s.effects {
		ae.Remaining -= elapsed
		if ae.Remaining <= 0 {
			expired = append(expired, fx)
			delete(s.effects, fx)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Has reports whether fx is currently active.
func (s *ActiveSet) Has(fx StatusEffect) bool {
	_, ok := s.effects[fx]
	return ok
}

// Remaining returns the remaining duration of fx, or 0 if not present.
func (s *ActiveSet) Remaining(fx StatusEffect) float64 {
	if ae, ok := s.effects[fx]; ok {
		return ae.Remaining
	}
	return 0
}

// All returns copies of the active effects in ascending effect order.
func (s *ActiveSet) All() []ActiveEffect {
	out := make([]ActiveEffect, 0, len(s.effects))
	for _, ae := range s.effects {
		out = append(out, *ae)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Effect < out[j].Effect })
	return out
}

package magic

import (
	"math"

	"github.com/cory-johannsen/foundmagic/internal/game/dice"
)

// Tuning holds the attunement curve constants.
type Tuning struct {
	// MinEssencesToCast is the essence count below which attunement is zero.
	MinEssencesToCast int
	// StandardEssences is the essence count at which attunement is exactly 1.
	StandardEssences int
}

// DefaultTuning returns the reference curve: 10 to cast, 40 for attunement 1.
func DefaultTuning() Tuning {
	return Tuning{MinEssencesToCast: 10, StandardEssences: 40}
}

// Attunement maps an essence count onto the logarithmic attunement curve.
//
// Postcondition: Returns 0 when essences < t.MinEssencesToCast, and exactly 1
// when essences == t.StandardEssences.
func (t Tuning) Attunement(essences int) float64 {
	if essences < t.MinEssencesToCast || essences <= 0 {
		return 0
	}
	return math.Log2(float64(essences)/float64(t.StandardEssences)) + 1
}

// Grimoire holds the per-session magic word for every element and creates
// Elements bound to its tuning.
type Grimoire struct {
	tuning Tuning
	words  [kindCount]string
}

// NewGrimoire draws one word per element from its pool.
//
// Precondition: src must be non-nil.
// Postcondition: Word(k) is a member of k.WordPool() for every kind.
func NewGrimoire(src dice.Source, t Tuning) *Grimoire {
	if src == nil {
		panic("magic.NewGrimoire: src must not be nil")
	}
	g := &Grimoire{tuning: t}
	for _, k := range Kinds {
		g.words[k] = dice.Pick(src, kinds[k].words)
	}
	return g
}

// Tuning returns the attunement curve of the grimoire.
func (g *Grimoire) Tuning() Tuning { return g.tuning }

// Word returns the session word for k.
func (g *Grimoire) Word(k Kind) string { return g.words[k] }

// Element creates a new element instance of kind k holding essences.
func (g *Grimoire) Element(k Kind, essences int) *Element {
	k.info()
	return &Element{kind: k, Essences: essences, grimoire: g}
}

// Standard creates an element of kind k at the standard essence count.
func (g *Grimoire) Standard(k Kind) *Element {
	return g.Element(k, g.tuning.StandardEssences)
}

// Element is one creature's affinity to an element kind.
type Element struct {
	kind Kind
	// Essences is the accumulated essence count; never negative.
	Essences int
	grimoire *Grimoire
}

// Kind returns the element kind.
func (e *Element) Kind() Kind { return e.kind }

// String returns the element name.
func (e *Element) String() string { return e.kind.String() }

// Word returns the magic word that casts this element in the current session.
func (e *Element) Word() string { return e.grimoire.Word(e.kind) }

// Attunement returns the element's current attunement.
func (e *Element) Attunement() float64 { return e.grimoire.tuning.Attunement(e.Essences) }

// CanCast reports whether the element is attuned enough to cast.
func (e *Element) CanCast() bool { return e.Attunement() > 0 }

// ManaCost returns round(baseManaCost / efficiency).
//
// Postcondition: Returns a negative value when efficiency is degenerate (not
// positive, NaN or so small the cost overflows); callers treat it as a fizzle.
func (e *Element) ManaCost(efficiency float64) int {
	cost := math.Round(e.kind.BaseManaCost() / efficiency)
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 || cost > math.MaxInt32 {
		return -1
	}
	return int(cost)
}

// Magnitude returns the rounded effect size for one target:
// base × attunement × (1 + powerBoost) × power.
func (e *Element) Magnitude(power, powerBoost float64) int {
	return int(math.Round(e.kind.BaseEffect() * e.Attunement() * (1 + powerBoost) * power))
}

// Descriptor qualifies a cast by its power and efficiency: "powerful" or
// "weak" at the 2/3 and 1/3 power thresholds, followed by "keen" or "blunt" at
// the same efficiency thresholds, or "standard" when neither applies.
func Descriptor(power, efficiency float64) string {
	const low, high = 1.0 / 3.0, 2.0 / 3.0
	var p, e string
	switch {
	case power >= high:
		p = "powerful"
	case power <= low:
		p = "weak"
	}
	switch {
	case efficiency >= high:
		e = "keen"
	case efficiency <= low:
		e = "blunt"
	}
	switch {
	case p != "" && e != "":
		return p + " " + e
	case p != "":
		return p
	case e != "":
		return e
	default:
		return "standard"
	}
}

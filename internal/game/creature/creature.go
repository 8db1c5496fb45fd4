// Package creature defines the hero and monsters: their shared stats, status
// effects, elemental affinities, resource primitives and spells.
package creature

import (
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// Creature is the capability set shared by the hero and monsters. The set of
// implementations is closed: *Hero and *Monster.
type Creature interface {
	ID() uuid.UUID
	Name() string
	Glyph() rune
	// Color is the average color of the creature's elements.
	Color() colorful.Color
	Vision() int
	// Speed is actions per time unit; halved while Slow is active.
	Speed() float64
	Strength() int
	Hitpoints() int
	MaxHitpoints() int
	Mana() int
	MaxMana() int
	// Timer is the time debt until the next action; <= 0 means ready.
	Timer() float64
	Elements() []*magic.Element
	Effects() *ActiveSet
	IsDead() bool

	base() *core
}

type core struct {
	id           uuid.UUID
	name         string
	glyph        rune
	vision       int
	speed        float64
	strength     int
	hitpoints    int
	maxHitpoints int
	mana         int
	maxMana      int
	timer        float64
	elements     []*magic.Element
	effects      *ActiveSet
}

func newCore(name string, glyph rune, vision int, speed float64, strength, maxHP, maxMana int, elements []*magic.Element) core {
	return core{
		id:           uuid.New(),
		name:         name,
		glyph:        glyph,
		vision:       vision,
		speed:        speed,
		strength:     strength,
		hitpoints:    maxHP,
		maxHitpoints: maxHP,
		mana:         maxMana,
		maxMana:      maxMana,
		elements:     elements,
		effects:      NewActiveSet(),
	}
}

func (c *core) base() *core { return c }

func (c *core) ID() uuid.UUID     { return c.id }
func (c *core) Name() string      { return c.name }
func (c *core) Glyph() rune       { return c.glyph }
func (c *core) Vision() int       { return c.vision }
func (c *core) Strength() int     { return c.strength }
func (c *core) Hitpoints() int    { return c.hitpoints }
func (c *core) MaxHitpoints() int { return c.maxHitpoints }
func (c *core) Mana() int         { return c.mana }
func (c *core) MaxMana() int      { return c.maxMana }
func (c *core) Timer() float64    { return c.timer }
func (c *core) IsDead() bool      { return c.hitpoints <= 0 }
func (c *core) Effects() *ActiveSet { return c.effects }

func (c *core) Speed() float64 {
	if c.effects.Has(Slow) {
		return c.speed / 2
	}
	return c.speed
}

func (c *core) Elements() []*magic.Element {
	out := make([]*magic.Element, len(c.elements))
	copy(out, c.elements)
	return out
}

func (c *core) Color() colorful.Color {
	colors := make([]colorful.Color, 0, len(c.elements))
	for _, e := range c.elements {
		colors = append(colors, e.Kind().Color())
	}
	return magic.BlendColors(colors...)
}

// String returns the creature name so creatures format naturally.
func (c *core) String() string { return c.name }

// ActionTime is the time a standard action takes: 1 / speed.
func ActionTime(c Creature) float64 {
	return 1 / c.Speed()
}

// ElementOf returns the first element of kind k the creature holds.
//
// Postcondition: Returns (nil, false) when the creature lacks k.
func ElementOf(c Creature, k magic.Kind) (*magic.Element, bool) {
	for _, e := range c.base().elements {
		if e.Kind() == k {
			return e, true
		}
	}
	return nil, false
}

// Attunement sums the creature's attunement to k across its elements of that
// kind, ignoring negative contributions.
func Attunement(c Creature, k magic.Kind) float64 {
	var total float64
	for _, e := range c.base().elements {
		if e.Kind() == k {
			if a := e.Attunement(); a > 0 {
				total += a
			}
		}
	}
	return total
}

// StrongestElements returns the elements that hold the most essences.
func StrongestElements(c Creature) []*magic.Element {
	var best []*magic.Element
	most := -1
	for _, e := range c.base().elements {
		switch {
		case e.Essences > most:
			most = e.Essences
			best = []*magic.Element{e}
		case e.Essences == most:
			best = append(best, e)
		}
	}
	return best
}

// IsOpposed reports whether a and b belong to opposing factions (hero versus
// monster).
func IsOpposed(a, b Creature) bool {
	_, aHero := a.(*Hero)
	_, bHero := b.(*Hero)
	return aHero != bHero
}

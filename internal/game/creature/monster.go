package creature

import (
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// Monster is an AI-controlled creature instantiated from a MonsterType.
type Monster struct {
	core
	Type *MonsterType
}

// NewMonster creates a monster of type t at full HP and mana, with its own
// standard-essence element for every element the type lists.
//
// Precondition: t and g must be non-nil.
// Postcondition: t.NumberSpawned() is incremented.
func NewMonster(t *MonsterType, g *magic.Grimoire) *Monster {
	if t == nil || g == nil {
		panic("creature.NewMonster: type and grimoire must not be nil")
	}
	elements := make([]*magic.Element, 0, len(t.Elements))
	for _, k := range t.Elements {
		elements = append(elements, g.Standard(k))
	}
	name := "the " + t.Name
	if t.HasFlag(Unique) {
		name = t.Name
	}
	t.numberSpawned++
	return &Monster{
		core: newCore(name, []rune(t.Glyph)[0], t.Vision, t.Speed, t.Strength, t.MaxHitpoints, t.MaxMana, elements),
		Type: t,
	}
}

// Difficulty returns the type's difficulty rating.
func (m *Monster) Difficulty() int { return m.Type.Difficulty }

// HasFlag reports whether the monster's type carries f.
func (m *Monster) HasFlag(f Flag) bool { return m.Type.HasFlag(f) }

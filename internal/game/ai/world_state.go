// Package ai decides what a monster does on its turn. The engine builds a
// WorldState snapshot for the acting monster and executes the PlannedAction
// the Planner returns.
package ai

import (
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// WorldState is the snapshot a monster plans from.
type WorldState struct {
	Hitpoints    int
	MaxHitpoints int
	Mana         int
	MaxMana      int

	// Castable lists the elements the monster can afford and is attuned to,
	// in the monster's element order.
	Castable []*magic.Element

	// HeroVisible is true when the hero's cell is in the monster's field of view.
	HeroVisible bool
	// HeroAligned is true when the hero shares a row or column with the
	// monster and is not on the monster's cell. HeroDirection is only
	// meaningful when HeroAligned is set.
	HeroAligned   bool
	HeroDirection grid.Direction
}

// BuildWorldState snapshots m for planning.
//
// Precondition: m must be non-nil.
// Postcondition: ws.Castable holds only elements with CanCast and a base mana
// cost no greater than m's current mana.
func BuildWorldState(m creature.Creature, pos, heroPos grid.Point, heroVisible bool) *WorldState {
	ws := &WorldState{
		Hitpoints:    m.Hitpoints(),
		MaxHitpoints: m.MaxHitpoints(),
		Mana:         m.Mana(),
		MaxMana:      m.MaxMana(),
		HeroVisible:  heroVisible,
	}
	for _, e := range m.Elements() {
		if e.Kind().BaseManaCost() <= float64(m.Mana()) && e.CanCast() {
			ws.Castable = append(ws.Castable, e)
		}
	}
	if dir, ok := grid.Orthogonal(pos, heroPos); ok && !dir.IsStationary() {
		ws.HeroAligned = true
		ws.HeroDirection = dir
	}
	return ws
}

// castableWhere returns the castable elements satisfying keep.
func (ws *WorldState) castableWhere(keep func(magic.Kind) bool) []*magic.Element {
	var out []*magic.Element
	for _, e := range ws.Castable {
		if keep(e.Kind()) {
			out = append(out, e)
		}
	}
	return out
}

// Attack returns the castable Fire and Darkness elements.
func (ws *WorldState) Attack() []*magic.Element {
	return ws.castableWhere(magic.Kind.IsAttack)
}

// Utility returns the castable Earth and Air elements.
func (ws *WorldState) Utility() []*magic.Element {
	return ws.castableWhere(magic.Kind.IsUtility)
}

// Healing returns the castable Light elements.
func (ws *WorldState) Healing() []*magic.Element {
	return ws.castableWhere(func(k magic.Kind) bool { return k == magic.Light })
}

// ManaRestoring returns the castable Water elements.
func (ws *WorldState) ManaRestoring() []*magic.Element {
	return ws.castableWhere(func(k magic.Kind) bool { return k == magic.Water })
}

// LowMana reports whether mana is at or below a third of max.
func (ws *WorldState) LowMana() bool {
	return ws.Mana*3 <= ws.MaxMana
}

// LowHitpoints reports whether HP is at or below a third of max.
func (ws *WorldState) LowHitpoints() bool {
	return ws.Hitpoints*3 <= ws.MaxHitpoints
}

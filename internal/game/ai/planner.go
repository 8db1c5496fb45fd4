package ai

import (
	"fmt"

	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// Action names what a monster does with its turn.
type Action int

const (
	// Pass spends the turn doing nothing.
	Pass Action = iota
	// Cast casts Element in Direction.
	Cast
	// Pursue steps one cell along the shortest path to the hero, attacking
	// if the hero is on that cell.
	Pursue
)

func (a Action) String() string {
	switch a {
	case Pass:
		return "pass"
	case Cast:
		return "cast"
	case Pursue:
		return "pursue"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// PlannedAction is the one action a monster takes this turn.
type PlannedAction struct {
	Action Action
	// Element and Direction are set for Cast only.
	Element   *magic.Element
	Direction grid.Direction
}

// Planner chooses monster actions. Ties among equally suitable spells are
// broken with the planner's random source.
//
// Invariant: src must not be nil.
type Planner struct {
	src dice.Source
}

// NewPlanner constructs a Planner.
//
// Precondition: src must not be nil.
func NewPlanner(src dice.Source) *Planner {
	if src == nil {
		panic("ai.NewPlanner: src must not be nil")
	}
	return &Planner{src: src}
}

// Plan picks the monster's action, in priority order:
//
//  1. hero out of sight: pass;
//  2. hero aligned: cast an attack spell, else a utility spell, unless mana is
//     low and Water is castable, in which case cast Water; all toward the hero;
//  3. HP low and Light castable: cast Light on itself;
//  4. otherwise pursue the hero.
//
// Precondition: state must not be nil.
func (p *Planner) Plan(state *WorldState) PlannedAction {
	if !state.HeroVisible {
		return PlannedAction{Action: Pass}
	}

	if state.HeroAligned {
		var spell *magic.Element
		if attack := state.Attack(); len(attack) > 0 {
			spell = dice.Pick(p.src, attack)
		} else if utility := state.Utility(); len(utility) > 0 {
			spell = dice.Pick(p.src, utility)
		}
		if water := state.ManaRestoring(); state.LowMana() && len(water) > 0 {
			spell = dice.Pick(p.src, water)
		}
		if spell != nil {
			return PlannedAction{Action: Cast, Element: spell, Direction: state.HeroDirection}
		}
	}

	if heal := state.Healing(); state.LowHitpoints() && len(heal) > 0 {
		return PlannedAction{Action: Cast, Element: dice.Pick(p.src, heal), Direction: grid.Stationary}
	}

	return PlannedAction{Action: Pursue}
}

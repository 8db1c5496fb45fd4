package creature

import (
	"time"

	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// HeroStats holds the hero's starting statistics.
type HeroStats struct {
	Vision       int
	Strength     int
	MaxHitpoints int
	MaxMana      int
}

// DefaultHeroStats returns vision 3, strength 1, 10 HP and 10 MP.
func DefaultHeroStats() HeroStats {
	return HeroStats{Vision: 3, Strength: 1, MaxHitpoints: 10, MaxMana: 10}
}

// Input is the hero's next queued action.
type Input struct {
	// Direction is the queued move, attack or cast direction; nil when none.
	Direction *grid.Direction
	// Climb requests climbing the stairs underfoot.
	Climb bool
	// Spell is the queued cast; nil when none.
	Spell *Spell
}

// Hero is the player-controlled creature.
type Hero struct {
	core

	input Input

	// IsClimbing is set while the hero is leaving a floor so the scheduler
	// stops acting on the abandoned floor.
	IsClimbing bool
	// DeathTimestamp is set when the hero dies.
	DeathTimestamp time.Time
}

var (
	attackKinds  = []magic.Kind{magic.Fire, magic.Darkness}
	utilityKinds = []magic.Kind{magic.Air, magic.Earth, magic.Water, magic.Light}
)

// NewHero creates the hero with one attack element (Fire or Darkness) and one
// utility element (Air, Earth, Water or Light), each at standard essences.
//
// Precondition: g and src must be non-nil.
func NewHero(stats HeroStats, g *magic.Grimoire, src dice.Source) *Hero {
	if g == nil || src == nil {
		panic("creature.NewHero: grimoire and source must not be nil")
	}
	elements := []*magic.Element{
		g.Standard(dice.Pick(src, attackKinds)),
		g.Standard(dice.Pick(src, utilityKinds)),
	}
	return NewHeroWithElements(stats, elements...)
}

// NewHeroWithElements creates the hero holding exactly the given elements.
func NewHeroWithElements(stats HeroStats, elements ...*magic.Element) *Hero {
	return &Hero{core: newCore("you", '@', stats.Vision, 1, stats.Strength, stats.MaxHitpoints, stats.MaxMana, elements)}
}

// CritChance is the chance a melee attack or spell is critical:
// 0.05 per point of Darkness attunement.
func (h *Hero) CritChance() float64 {
	return 0.05 * Attunement(h, magic.Darkness)
}

// SpellPowerBoost is the fractional spell effect bonus: 0.1 per point of Fire
// attunement.
func (h *Hero) SpellPowerBoost() float64 {
	return 0.1 * Attunement(h, magic.Fire)
}

// RegenerationBoost is the fraction of max HP and MP restored on arriving at a
// floor by stairs: 0.1 per point of Light attunement.
func (h *Hero) RegenerationBoost() float64 {
	return 0.1 * Attunement(h, magic.Light)
}

// QueueMove queues a move or attack in dir, replacing any queued direction.
func (h *Hero) QueueMove(dir grid.Direction) {
	h.input.Direction = &dir
	h.input.Climb = false
}

// QueueClimb queues an attempt to climb the stairs underfoot.
func (h *Hero) QueueClimb() {
	dir := grid.Stationary
	h.input.Direction = &dir
	h.input.Climb = true
}

// QueueSpell queues s to be cast on the hero's next action.
func (h *Hero) QueueSpell(s *Spell) {
	h.input.Spell = s
}

// QueueSpellWord resolves a typed magic word into a spell and queues it. The
// typing duration is end minus start.
//
// Postcondition: Returns ErrNoElements without queueing when the hero has no elements.
func (h *Hero) QueueSpellWord(word string, dir grid.Direction, start, end time.Time) error {
	s, err := SpellFromWord(h, word, dir, end.Sub(start))
	if err != nil {
		return err
	}
	h.QueueSpell(s)
	return nil
}

// HasInput reports whether an action is queued.
func (h *Hero) HasInput() bool {
	return h.input.Direction != nil || h.input.Spell != nil
}

// TakeInput returns and clears the queued action.
func (h *Hero) TakeInput() Input {
	in := h.input
	h.input = Input{}
	return in
}

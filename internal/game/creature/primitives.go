package creature

import (
	"math"

	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// TakeDamage subtracts amount from c's hitpoints and returns the HP actually
// lost.
//
// Postcondition: 0 <= Hitpoints(); the return value never exceeds the
// hitpoints c had before the call.
func TakeDamage(c Creature, amount int) int {
	b := c.base()
	if amount <= 0 {
		return 0
	}
	lost := min(amount, b.hitpoints)
	b.hitpoints -= lost
	return lost
}

// Slay drops c's hitpoints to zero.
func Slay(c Creature) {
	c.base().hitpoints = 0
}

// Heal restores up to amount HP and returns the HP restored.
func Heal(c Creature, amount int) int {
	b := c.base()
	actual := max(0, min(amount, b.maxHitpoints-b.hitpoints))
	b.hitpoints += actual
	return actual
}

// RestoreMana restores up to amount MP and returns the MP restored.
func RestoreMana(c Creature, amount int) int {
	b := c.base()
	actual := max(0, min(amount, b.maxMana-b.mana))
	b.mana += actual
	return actual
}

// SpendMana deducts cost from c's mana.
//
// Postcondition: Returns false and leaves mana unchanged when cost is negative
// or exceeds the current mana.
func SpendMana(c Creature, cost int) bool {
	b := c.base()
	if cost < 0 || cost > b.mana {
		return false
	}
	b.mana -= cost
	return true
}

// DrainMana moves up to amount MP from target to caster and returns the MP
// taken from target. Mana beyond the caster's maximum is lost.
func DrainMana(caster, target Creature, amount int) int {
	t := target.base()
	drain := max(0, min(amount, t.mana))
	t.mana -= drain
	c := caster.base()
	c.mana = min(c.mana+drain, c.maxMana)
	return drain
}

// DrainHP moves up to amount HP from target to caster and returns the HP taken
// from target. HP beyond the caster's maximum is lost. A target left at zero
// HP is dead; killing it is the caller's responsibility.
func DrainHP(caster, target Creature, amount int) int {
	t := target.base()
	drain := max(0, min(amount, t.hitpoints))
	t.hitpoints -= drain
	c := caster.base()
	c.hitpoints = min(c.hitpoints+drain, c.maxHitpoints)
	return drain
}

// Stun pushes c's next action back by sqrt(timer² + amount²) - timer and
// returns that delay.
func Stun(c Creature, amount float64) float64 {
	b := c.base()
	delay := math.Hypot(b.timer, amount) - b.timer
	b.timer += delay
	return delay
}

// ApplyStatusEffect combines duration into c's effect fx and returns the
// change in remaining duration. See Combine.
func ApplyStatusEffect(c Creature, fx StatusEffect, duration float64) float64 {
	return c.Effects().Apply(fx, duration)
}

// AddTime adds an action's cost to c's timer.
func AddTime(c Creature, cost float64) {
	c.base().timer += cost
}

// ProcessTime advances c by elapsed: the timer and every status effect
// duration drop by elapsed, and expired effects are removed and returned.
func ProcessTime(c Creature, elapsed float64) []StatusEffect {
	b := c.base()
	b.timer -= elapsed
	return b.effects.Tick(elapsed)
}

// EssenceTransfer records essences moved between two elements of one kind.
type EssenceTransfer struct {
	Kind   magic.Kind
	Amount int
}

// EssenceDrainLimit returns how many essences per element a killer takes from
// victim: everything from the hero, the difficulty from a monster, tripled
// for uniques.
func EssenceDrainLimit(victim Creature) int {
	switch v := victim.(type) {
	case *Hero:
		return math.MaxInt
	case *Monster:
		limit := v.Difficulty()
		if v.HasFlag(Unique) {
			limit *= 3
		}
		return limit
	default:
		return 0
	}
}

// DrainEssencesFrom moves up to limit essences from each of target's elements
// into the caster's first element of the same kind. Elements the caster lacks
// are skipped.
//
// Postcondition: No target element loses more essences than it held, and the
// sum of the returned amounts equals the essences removed from target.
func DrainEssencesFrom(caster, target Creature, limit int) []EssenceTransfer {
	var transfers []EssenceTransfer
	if limit <= 0 {
		return transfers
	}
	for _, from := range target.base().elements {
		to, ok := ElementOf(caster, from.Kind())
		if !ok || to == from {
			continue
		}
		n := min(limit, from.Essences)
		if n <= 0 {
			continue
		}
		from.Essences -= n
		to.Essences += n
		transfers = append(transfers, EssenceTransfer{Kind: from.Kind(), Amount: n})
	}
	return transfers
}

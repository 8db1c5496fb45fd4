package engine

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// effect applies an element's effect of the given magnitude from caster to
// target. dir is the direction the spell travelled.
type effect func(s *Session, caster, target creature.Creature, e *magic.Element, dir grid.Direction, magnitude int)

// effects is the element dispatch table.
var effects = map[magic.Kind]effect{
	magic.Fire:     burn,
	magic.Water:    drainMana,
	magic.Air:      knockback,
	magic.Earth:    slow,
	magic.Light:    heal,
	magic.Darkness: drainLife,
}

func burn(s *Session, caster, target creature.Creature, e *magic.Element, _ grid.Direction, magnitude int) {
	s.inflict(caster, target, magnitude, func(actual int) {
		s.log.Burn(target, e, actual)
	})
}

func drainMana(s *Session, caster, target creature.Creature, e *magic.Element, _ grid.Direction, magnitude int) {
	n := creature.DrainMana(caster, target, magnitude)
	s.log.ManaDrain(caster, target, e, n)
}

func knockback(s *Session, _, target creature.Creature, e *magic.Element, dir grid.Direction, magnitude int) {
	n := s.Move(target, dir, false, magnitude)
	s.log.Knockback(target, e, dir, n)
}

func slow(s *Session, _, target creature.Creature, e *magic.Element, _ grid.Direction, magnitude int) {
	creature.ApplyStatusEffect(target, creature.Slow, float64(magnitude))
	s.log.StatusEffect(target, e, creature.Slow, target.Effects().Remaining(creature.Slow))
}

func heal(s *Session, caster, target creature.Creature, e *magic.Element, _ grid.Direction, magnitude int) {
	n := creature.Heal(target, magnitude)
	s.log.Healing(target, e, n)
	if creature.IsOpposed(caster, target) {
		d := creature.Stun(target, float64(magnitude))
		s.log.Stun(target, e, d)
	}
}

func drainLife(s *Session, caster, target creature.Creature, e *magic.Element, _ grid.Direction, magnitude int) {
	n := creature.DrainHP(caster, target, magnitude)
	s.log.HPDrain(caster, target, e, n)
	if target.Hitpoints() <= 0 {
		s.Kill(caster, target)
	}
}

// Cast casts element e from caster in dir. The spell travels up to the
// caster's vision, stopping at the first creature or opaque cell; a
// stationary cast targets the caster. Casting fizzles (narrated, no mana
// spent) when the caster is not attuned to e or cannot pay the mana cost,
// including degenerate costs from extreme efficiencies.
//
// The returned path holds every cell the spell affected, empty or not, in
// travel order. It includes the cell the spell stopped on and never leaves
// the floor. The path is also recorded in SpellPaths.
//
// Postcondition: ok is true iff mana was spent and the spell resolved; a
// fizzle returns a nil path.
func (s *Session) Cast(caster creature.Creature, e *magic.Element, dir grid.Direction, power, efficiency float64) (path []grid.Point, ok bool) {
	f := s.Floor()
	if f == nil || caster.IsDead() || !f.Contains(caster) {
		return nil, false
	}
	if !e.CanCast() {
		s.log.Fizzle(caster)
		return nil, false
	}

	if s.rollCrit(caster) {
		power *= s.opts.CritMultiplier
		s.log.Critical(caster)
	}

	cost := e.ManaCost(efficiency)
	if cost < 0 || !creature.SpendMana(caster, cost) {
		s.log.Fizzle(caster)
		return nil, false
	}

	path, target := s.spellTarget(f, caster, dir)
	s.spellPaths = append(s.spellPaths, path)
	s.log.Cast(caster, e, power, efficiency, cost)
	s.logger.Debug("spell cast",
		zap.String("caster", caster.Name()),
		zap.Stringer("element", e),
		zap.Float64("power", power),
		zap.Float64("efficiency", efficiency),
		zap.Int("cost", cost),
		zap.Bool("hit", target != nil),
		zap.Int("cells", len(path)),
	)
	if target == nil {
		return path, true
	}

	var boost float64
	if h, ok := caster.(*creature.Hero); ok {
		boost = h.SpellPowerBoost()
	}
	effects[e.Kind()](s, caster, target, e, dir, e.Magnitude(power, boost))
	return path, true
}

// spellTarget walks from the caster in dir and returns the cells it crossed
// with the first creature hit. The creature is nil when the spell reaches its
// range, the floor edge or an opaque cell first.
func (s *Session) spellTarget(f *Floor, caster creature.Creature, dir grid.Direction) ([]grid.Point, creature.Creature) {
	p := f.MustFind(caster)
	if dir.IsStationary() {
		return []grid.Point{p}, caster
	}
	path := make([]grid.Point, 0, caster.Vision())
	for i := 0; i < caster.Vision(); i++ {
		p = p.Add(dir)
		if !f.InBounds(p) {
			return path, nil
		}
		path = append(path, p)
		if c := f.CreatureAt(p); c != nil {
			return path, c
		}
		if !f.IsTransparent(p) {
			return path, nil
		}
	}
	return path, nil
}

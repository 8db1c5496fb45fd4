package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
)

// rollCrit rolls attacker's critical hit chance: Darkness-based for the hero,
// the endgame monster chance for monsters while the dungeon collapses.
func (s *Session) rollCrit(attacker creature.Creature) bool {
	switch a := attacker.(type) {
	case *creature.Hero:
		return s.roller.Check("hero crit", a.CritChance())
	case *creature.Monster:
		if s.endgame {
			return s.roller.Check("monster crit", s.opts.MonsterCritChance)
		}
	}
	return false
}

// Attack resolves a melee hit: damage equals the attacker's strength (times the
// crit multiplier on a critical), and the attacker regains 1 mana attributed
// to one of its strongest elements.
//
// Postcondition: No effect when either creature is dead.
func (s *Session) Attack(attacker, target creature.Creature) {
	if attacker.IsDead() || target.IsDead() {
		return
	}
	crit := s.rollCrit(attacker)
	dmg := attacker.Strength()
	if crit {
		dmg = int(math.Round(float64(dmg) * s.opts.CritMultiplier))
	}

	s.inflict(attacker, target, dmg, func(actual int) {
		s.log.Attack(attacker, target, actual, crit)
	})

	if attacker.IsDead() {
		return
	}
	if strongest := creature.StrongestElements(attacker); len(strongest) > 0 {
		e := dice.Pick(s.roller, strongest)
		if n := creature.RestoreMana(attacker, 1); n > 0 {
			s.log.ManaRestored(attacker, e, n)
		}
	}
}

// InflictDamage deals amount damage to target through the standard pipeline
// and returns the HP actually lost. A target brought to 0 HP is killed with
// attacker credited.
//
// Postcondition: target HP never drops below 0; the return value never
// exceeds target's HP before the call; returns 0 if target was already dead.
func (s *Session) InflictDamage(attacker, target creature.Creature, amount int) int {
	return s.inflict(attacker, target, amount, nil)
}

// inflict is InflictDamage with a narration hook that runs after the damage
// lands and before any resulting death is narrated.
func (s *Session) inflict(attacker, target creature.Creature, amount int, narrate func(actual int)) int {
	if target.IsDead() {
		return 0
	}
	actual := creature.TakeDamage(target, amount)
	if narrate != nil {
		narrate(actual)
	}
	if target.Hitpoints() <= 0 {
		s.Kill(attacker, target)
	}
	return actual
}

// Kill slays victim: its essences drain into killer, it leaves the floor, and
// the death is narrated. The hero's death ends the game; the final boss's
// death starts the endgame and collapses the floor's stairs down.
func (s *Session) Kill(killer, victim creature.Creature) {
	creature.Slay(victim)

	if killer != nil && killer != victim {
		for _, tr := range creature.DrainEssencesFrom(killer, victim, creature.EssenceDrainLimit(victim)) {
			s.log.EssenceDrain(killer, victim, tr)
		}
	}

	f := s.Floor()
	if f != nil && f.Contains(victim) {
		if err := f.Remove(victim); err != nil {
			s.logger.Error("removing dead creature", zap.Error(err))
		}
	}
	s.log.Death(victim)
	s.logger.Debug("creature killed",
		zap.String("victim", victim.Name()),
		zap.Stringer("victim_id", victim.ID()),
	)

	switch v := victim.(type) {
	case *creature.Hero:
		now := s.clock()
		v.DeathTimestamp = now
		s.lossTime = now
		s.logger.Info("hero died", zap.Int("depth", s.depth))
	case *creature.Monster:
		if v.HasFlag(creature.FinalBoss) {
			s.startEndgame(v)
		}
	}
}

func (s *Session) startEndgame(boss *creature.Monster) {
	s.endgame = true
	s.endgameTimer = s.opts.EndgameTimer
	if f := s.Floor(); f != nil {
		f.collapseStairsDown()
	}
	s.log.EndgameStarted(boss, s.endgameTimer)
	s.logger.Info("endgame started", zap.String("boss", boss.Name()), zap.Float64("timer", s.endgameTimer))
}

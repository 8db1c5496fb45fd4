package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
)

// ProcessTime advances the current floor by up to allotted time units and
// returns the time actually spent.
//
// Time jumps straight to the next moment some creature is ready; every
// creature's timer and status effects advance together. All creatures ready
// at that moment act in a seeded random order, each paying its action cost
// onto its own timer. The loop stops early when the hero has acted and no
// monster is ready, when waitForHero is set and the hero is ready (so input
// can be collected), when the hero dies, or when the hero leaves the floor.
// Creatures killed earlier in the same moment do not act.
//
// While the endgame runs, the time spent counts down the endgame timer; time
// past zero accrues collapse damage on the hero at the configured rate.
//
// Postcondition: allotted <= 0 is a no-op returning 0.
func (s *Session) ProcessTime(allotted float64, waitForHero bool) float64 {
	f := s.Floor()
	if allotted <= 0 || f == nil || s.hero.IsDead() {
		return 0
	}
	s.hero.IsClimbing = false
	s.spellPaths = nil

	var spent float64
	heroActed := false
	for spent < allotted {
		creatures := f.Creatures()
		if len(creatures) == 0 {
			break
		}

		minTimer := math.Inf(1)
		for _, c := range creatures {
			minTimer = math.Min(minTimer, c.Timer())
		}
		step := math.Max(0, math.Min(minTimer, allotted-spent))
		for _, c := range creatures {
			creature.ProcessTime(c, step)
		}
		spent += step

		var ready []creature.Creature
		heroReady, monsterReady := false, false
		for _, c := range creatures {
			if c.Timer() > 0 {
				continue
			}
			ready = append(ready, c)
			if _, isHero := c.(*creature.Hero); isHero {
				heroReady = true
			} else {
				monsterReady = true
			}
		}

		if heroActed && !monsterReady {
			break
		}
		if spent >= allotted {
			break
		}
		if waitForHero && heroReady {
			break
		}

		dice.Shuffle(s.roller, ready)
		for _, c := range ready {
			if c.IsDead() || !f.Contains(c) {
				continue
			}
			cost := s.act(c)
			creature.AddTime(c, cost)
			// a zero-cost hero turn means no input is queued; it still
			// counts so the loop hands control back once monsters are done
			if _, isHero := c.(*creature.Hero); isHero {
				heroActed = true
			}
			if s.hero.IsClimbing || s.hero.IsDead() {
				break
			}
		}
		if s.hero.IsClimbing || s.hero.IsDead() {
			break
		}
	}

	s.tickEndgame(spent)
	s.logger.Debug("time processed",
		zap.Float64("allotted", allotted),
		zap.Float64("spent", spent),
		zap.Int("depth", s.depth),
	)
	return spent
}

// Turn runs the simulation until the hero has taken its queued action and
// every monster that became ready before the hero's next turn has acted.
func (s *Session) Turn() float64 {
	return s.ProcessTime(math.MaxFloat64, false)
}

// tickEndgame counts the endgame timer down by spent and converts overdue
// time into collapse damage on the hero.
func (s *Session) tickEndgame(spent float64) {
	if !s.endgame {
		return
	}
	s.endgameTimer -= spent
	if s.endgameTimer < 0 {
		s.endgameRemainder += -s.endgameTimer * s.opts.EndgameDamageRate
		s.endgameTimer = 0
	}
	if s.endgameRemainder >= 1 && !s.hero.IsDead() {
		dmg := int(s.endgameRemainder)
		s.endgameRemainder -= float64(dmg)
		s.inflict(s.hero, s.hero, dmg, func(actual int) {
			s.log.Collapse(s.hero, actual)
		})
	}
}

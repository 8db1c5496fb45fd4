package engine

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/ai"
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/path"
)

// act runs c's turn and returns the time it cost.
func (s *Session) act(c creature.Creature) float64 {
	switch v := c.(type) {
	case *creature.Hero:
		return s.actHero(v)
	case *creature.Monster:
		return s.actMonster(v)
	default:
		panic("engine: unknown creature variant")
	}
}

// actMonster plans and executes one monster turn. Every outcome, including a
// blocked step or a pass, costs one action time.
func (s *Session) actMonster(m *creature.Monster) float64 {
	cost := creature.ActionTime(m)
	f := s.Floor()
	pos, err := f.Find(m)
	if err != nil {
		return cost
	}
	heroPos, err := f.Find(s.hero)
	if err != nil {
		return cost
	}

	visible := f.Visible(pos, m.Vision())
	plan := s.planner.Plan(ai.BuildWorldState(m, pos, heroPos, visible(heroPos)))
	s.logger.Debug("monster plan",
		zap.String("monster", m.Name()),
		zap.Stringer("action", plan.Action),
	)

	switch plan.Action {
	case ai.Cast:
		s.Cast(m, plan.Element, plan.Direction, 1, 1)
	case ai.Pursue:
		s.pursue(m, pos, heroPos)
	}
	return cost
}

// pursue steps m one cell along the shortest path to the hero, attacking the
// hero when the path's first cell is the hero's. Other monsters block.
func (s *Session) pursue(m *creature.Monster, pos, heroPos grid.Point) {
	f := s.Floor()
	p, ok := path.Shortest(f, pos, heroPos)
	if !ok {
		return
	}
	next, ok := p.StepForward()
	if !ok {
		return
	}
	if _, blocked := f.CreatureAt(next).(*creature.Monster); blocked {
		return
	}
	dir, ok := grid.Orthogonal(pos, next)
	if !ok {
		return
	}
	s.Move(m, dir, true, 1)
}

// actHero consumes the hero's queued input. A successful action costs one
// action time and refreshes the hero's view; anything else costs nothing so
// the scheduler can keep waiting for input.
func (s *Session) actHero(h *creature.Hero) float64 {
	if !h.HasInput() {
		return 0
	}
	in := h.TakeInput()

	var ok bool
	switch {
	case in.Spell != nil:
		if !in.Spell.Element.CanCast() {
			s.log.Fizzle(h)
			return 0
		}
		s.Cast(h, in.Spell.Element, in.Spell.Direction, in.Spell.Power, in.Spell.Efficiency)
		ok = true
	case in.Climb:
		ok = s.climbStairs(h)
	case in.Direction != nil:
		ok = s.Move(h, *in.Direction, true, 1) > 0
	}
	if !ok {
		return 0
	}
	s.updateHeroView()
	return creature.ActionTime(h)
}

// climbStairs takes whichever staircase the hero stands on.
func (s *Session) climbStairs(h *creature.Hero) bool {
	f := s.Floor()
	pos, err := f.Find(h)
	if err != nil {
		return false
	}
	if down, ok := f.StairsDown(); ok && down == pos {
		h.IsClimbing = true
		if err := s.ClimbDown(); err != nil {
			s.logger.Error("climbing down", zap.Error(err))
			return false
		}
		return true
	}
	if pos == f.StairsUp() {
		h.IsClimbing = true
		if err := s.ClimbUp(); err != nil {
			s.logger.Error("climbing up", zap.Error(err))
			return false
		}
		return true
	}
	return false
}

// updateHeroView recomputes the hero's field of view on the current floor.
func (s *Session) updateHeroView() {
	f := s.Floor()
	if f == nil {
		return
	}
	if pos, err := f.Find(s.hero); err == nil {
		f.updateVisibility(pos, s.hero.Vision())
	}
}

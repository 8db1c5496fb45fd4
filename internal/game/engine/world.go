package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

// ClimbDown takes the hero one floor deeper, generating and populating the
// floor on first arrival, and places the hero on its up staircase.
func (s *Session) ClimbDown() error {
	old := s.Floor()
	if old != nil {
		if err := old.Remove(s.hero); err != nil {
			return fmt.Errorf("leaving floor %d: %w", old.Depth, err)
		}
	}

	s.depth++
	first := s.depth >= len(s.floors)
	if first {
		f, err := s.generateFloor(s.depth)
		if err != nil {
			s.depth--
			if old != nil {
				// put the hero back where it stood
				if perr := s.arrive(old, stairsDownOf(old)); perr != nil {
					s.logger.Error("restoring hero", zap.Error(perr))
				}
			}
			return err
		}
		s.floors = append(s.floors, f)
	}

	f := s.floors[s.depth]
	if err := s.arrive(f, f.StairsUp()); err != nil {
		return err
	}
	if old != nil {
		s.regenerate()
	}
	s.log.Welcome(s.depth, first)
	s.logger.Info("descended", zap.Int("depth", s.depth), zap.Bool("first_arrival", first))
	return nil
}

// ClimbUp takes the hero one floor up, placing it on the down staircase of
// the floor above. Climbing up from depth 0 escapes the dungeon.
func (s *Session) ClimbUp() error {
	old := s.Floor()
	if old == nil {
		return nil
	}
	if err := old.Remove(s.hero); err != nil {
		return fmt.Errorf("leaving floor %d: %w", old.Depth, err)
	}

	s.depth--
	if s.depth < 0 {
		s.win()
		return nil
	}

	f := s.floors[s.depth]
	if err := s.arrive(f, stairsDownOf(f)); err != nil {
		return err
	}
	s.regenerate()
	s.log.Welcome(s.depth, false)
	s.logger.Info("ascended", zap.Int("depth", s.depth))
	return nil
}

// stairsDownOf returns f's down staircase, or where it stood if it collapsed.
func stairsDownOf(f *Floor) grid.Point {
	p, _ := f.StairsDown()
	return p
}

// arrive places the hero on f at p, or the nearest free cell when p is
// taken, and refreshes its view.
func (s *Session) arrive(f *Floor, p grid.Point) error {
	spot, err := f.NearestFree(p)
	if err != nil {
		return fmt.Errorf("arriving on floor %d: %w", f.Depth, err)
	}
	if err := f.Place(s.hero, spot); err != nil {
		return fmt.Errorf("arriving on floor %d: %w", f.Depth, err)
	}
	f.updateVisibility(spot, s.hero.Vision())
	return nil
}

// regenerate restores the Light-boosted fraction of the hero's max HP and MP.
func (s *Session) regenerate() {
	boost := s.hero.RegenerationBoost()
	if boost <= 0 {
		return
	}
	hp := creature.Heal(s.hero, int(math.Round(boost*float64(s.hero.MaxHitpoints()))))
	mp := creature.RestoreMana(s.hero, int(math.Round(boost*float64(s.hero.MaxMana()))))
	s.log.Regeneration(hp, mp)
}

func (s *Session) win() {
	s.victoryTime = s.clock()
	s.endgame = false
	s.log.Victory()
	s.logger.Info("hero escaped")
}

// generateFloor builds and populates the floor at depth.
func (s *Session) generateFloor(depth int) (*Floor, error) {
	layout, err := s.generator.Generate(s.roller)
	if err != nil {
		return nil, fmt.Errorf("generating floor %d: %w", depth, err)
	}
	f, err := NewFloor(layout, depth, s.roller)
	if err != nil {
		return nil, err
	}
	s.populate(f, depth >= s.opts.FinalDepth)
	return f, nil
}

// populate spawns one monster per MonsterDensity free cells, weighted toward
// the floor's difficulty. From the final depth on, a final boss that has not
// spawned yet spawns first.
func (s *Session) populate(f *Floor, final bool) {
	free := f.freeCells()
	count := len(free) / s.opts.MonsterDensity

	spawn := func(t *creature.MonsterType) {
		p := takeRandom(s.roller, &free)
		m := creature.NewMonster(t, s.grimoire)
		if err := f.Place(m, p); err != nil {
			// p came from the free list
			panic(err)
		}
	}

	if final {
		if boss, ok := s.catalog.PendingBoss(); ok && len(free) > 0 {
			spawn(boss)
			count--
		}
	}
	for ; count > 0 && len(free) > 0; count-- {
		t, ok := s.catalog.Pick(s.roller, f.Difficulty(), final)
		if !ok {
			break
		}
		spawn(t)
	}
	s.logger.Debug("floor populated",
		zap.Int("depth", f.Depth),
		zap.Int("monsters", len(f.Monsters())),
	)
}

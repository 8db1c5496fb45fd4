package engine

import (
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

// Move walks c up to distance cells in dir on the current floor and returns
// the number of cells moved. With allowAttack, bumping into another creature
// attacks it and counts as one move; standing still counts as one move (a
// wait). Without allowAttack, an occupied cell stops the walk.
//
// Postcondition: Returns 0 and changes nothing when c is not on the floor.
func (s *Session) Move(c creature.Creature, dir grid.Direction, allowAttack bool, distance int) int {
	f := s.Floor()
	if f == nil || !f.Contains(c) {
		return 0
	}
	if dir.IsStationary() {
		if allowAttack {
			return 1
		}
		return 0
	}

	moved := 0
	for moved < distance {
		from := f.MustFind(c)
		to := from.Add(dir)
		if !f.IsWalkable(to) {
			break
		}
		if other := f.CreatureAt(to); other != nil {
			if allowAttack {
				s.Attack(c, other)
				moved++
			}
			break
		}
		f.relocate(c, to)
		moved++
	}
	return moved
}

package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/fov"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

var (
	// ErrCreatureNotFound is returned when a creature is not on the floor.
	ErrCreatureNotFound = errors.New("creature not found on floor")
	// ErrOutOfBounds is returned for positions outside the floor.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrOccupied is returned when placing a creature on an occupied tile.
	ErrOccupied = errors.New("tile is occupied")
	// ErrNoFreeTile is returned when no free walkable tile can be found.
	ErrNoFreeTile = errors.New("no free walkable tile")
)

// Tile is one cell of a floor as the presentation layer sees it.
type Tile struct {
	Terrain *grid.Terrain
	// Creature is the occupant, or nil.
	Creature creature.Creature
	// InFov is true while the hero can see the tile.
	InFov bool
	// Explored is true once the hero has seen the tile.
	Explored bool
}

// Floor is one dungeon level: a tile grid plus an index of where every
// creature stands.
//
// Invariant: for every creature c on the floor, tiles[positions[c.ID()]].Creature == c,
// and every occupied tile's creature is in positions. creatures holds the same
// set in spawn order.
type Floor struct {
	Width, Height int
	// Depth is zero-based.
	Depth int

	tiles     []Tile
	positions map[uuid.UUID]grid.Point
	creatures []creature.Creature

	stairsUp      grid.Point
	stairsDown    grid.Point
	hasStairsDown bool
}

// NewFloor wraps a generated layout: each cell gets the terrain matching its
// flags, then stairs up and stairs down are placed on distinct plain floor
// cells chosen with src.
//
// Precondition: layout and src must be non-nil.
// Postcondition: Returns ErrNoFreeTile when the layout lacks room for the stairs.
func NewFloor(layout *grid.Layout, depth int, src dice.Source) (*Floor, error) {
	if layout == nil || src == nil {
		panic("engine.NewFloor: layout and src must not be nil")
	}
	f := &Floor{
		Width:     layout.Width,
		Height:    layout.Height,
		Depth:     depth,
		tiles:     make([]Tile, layout.Width*layout.Height),
		positions: make(map[uuid.UUID]grid.Point),
	}

	var plain []grid.Point
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := grid.Point{X: x, Y: y}
			t := grid.Matching(layout.IsTransparent(p), layout.IsWalkable(p))[0]
			f.tiles[f.index(p)].Terrain = t
			if t == grid.Floor {
				plain = append(plain, p)
			}
		}
	}
	if len(plain) < 2 {
		return nil, fmt.Errorf("placing stairs on floor %d: %w", depth, ErrNoFreeTile)
	}

	f.stairsUp = takeRandom(src, &plain)
	f.tile(f.stairsUp).Terrain = grid.StairsUp
	f.stairsDown = takeRandom(src, &plain)
	f.tile(f.stairsDown).Terrain = grid.StairsDown
	f.hasStairsDown = true
	return f, nil
}

// takeRandom removes and returns a random element of *ps.
func takeRandom(src dice.Source, ps *[]grid.Point) grid.Point {
	i := src.Intn(len(*ps))
	p := (*ps)[i]
	*ps = slices.Delete(*ps, i, i+1)
	return p
}

// Difficulty is the floor's depth-derived difficulty rating, starting at 1.
func (f *Floor) Difficulty() int { return f.Depth + 1 }

func (f *Floor) index(p grid.Point) int { return p.Y*f.Width + p.X }

// tile returns the tile at p; p must be in bounds.
func (f *Floor) tile(p grid.Point) *Tile {
	if !f.InBounds(p) {
		panic(fmt.Sprintf("engine: %v: %v", p, ErrOutOfBounds))
	}
	return &f.tiles[f.index(p)]
}

// InBounds reports whether p lies on the floor.
func (f *Floor) InBounds(p grid.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.Width && p.Y < f.Height
}

// Tile returns a copy of the tile at p.
func (f *Floor) Tile(p grid.Point) (Tile, error) {
	if !f.InBounds(p) {
		return Tile{}, fmt.Errorf("tile %v: %w", p, ErrOutOfBounds)
	}
	return f.tiles[f.index(p)], nil
}

// Neighbor returns the tile one step from p in dir and where it is. ok is
// false when that step leaves the floor.
func (f *Floor) Neighbor(p grid.Point, dir grid.Direction) (Tile, grid.Point, bool) {
	n := p.Add(dir)
	if !f.InBounds(n) {
		return Tile{}, n, false
	}
	return f.tiles[f.index(n)], n, true
}

// IsWalkable reports whether p's terrain can be stood on, ignoring occupants.
func (f *Floor) IsWalkable(p grid.Point) bool {
	return f.InBounds(p) && f.tiles[f.index(p)].Terrain.IsWalkable
}

// IsTransparent reports whether p's terrain lets light through.
func (f *Floor) IsTransparent(p grid.Point) bool {
	return f.InBounds(p) && f.tiles[f.index(p)].Terrain.IsTransparent
}

// IsOccupied reports whether a creature stands on p.
func (f *Floor) IsOccupied(p grid.Point) bool {
	return f.InBounds(p) && f.tiles[f.index(p)].Creature != nil
}

// CreatureAt returns the creature on p, or nil.
func (f *Floor) CreatureAt(p grid.Point) creature.Creature {
	if !f.InBounds(p) {
		return nil
	}
	return f.tiles[f.index(p)].Creature
}

// Find returns where c stands.
//
// Postcondition: Returns ErrCreatureNotFound when c is not on the floor.
func (f *Floor) Find(c creature.Creature) (grid.Point, error) {
	p, ok := f.positions[c.ID()]
	if !ok {
		return grid.Point{}, fmt.Errorf("finding %s on floor %d: %w", c.Name(), f.Depth, ErrCreatureNotFound)
	}
	return p, nil
}

// MustFind is Find for callers that hold c on the floor by construction.
func (f *Floor) MustFind(c creature.Creature) grid.Point {
	p, err := f.Find(c)
	if err != nil {
		panic(err)
	}
	return p
}

// Contains reports whether c is on the floor.
func (f *Floor) Contains(c creature.Creature) bool {
	_, ok := f.positions[c.ID()]
	return ok
}

// Creatures returns the creatures on the floor in spawn order.
func (f *Floor) Creatures() []creature.Creature {
	return slices.Clone(f.creatures)
}

// Monsters returns the monsters on the floor in spawn order.
func (f *Floor) Monsters() []*creature.Monster {
	var out []*creature.Monster
	for _, c := range f.creatures {
		if m, ok := c.(*creature.Monster); ok {
			out = append(out, m)
		}
	}
	return out
}

// Place puts c on p.
//
// Postcondition: Returns ErrOutOfBounds, ErrOccupied, or an error when c is
// already on the floor; the floor is unchanged on error.
func (f *Floor) Place(c creature.Creature, p grid.Point) error {
	if !f.InBounds(p) {
		return fmt.Errorf("placing %s at %v: %w", c.Name(), p, ErrOutOfBounds)
	}
	if f.Contains(c) {
		return fmt.Errorf("placing %s: already on floor %d", c.Name(), f.Depth)
	}
	t := f.tile(p)
	if t.Creature != nil {
		return fmt.Errorf("placing %s at %v: %w", c.Name(), p, ErrOccupied)
	}
	t.Creature = c
	f.positions[c.ID()] = p
	f.creatures = append(f.creatures, c)
	return nil
}

// Remove takes c off the floor.
//
// Postcondition: Returns ErrCreatureNotFound when c is not on the floor.
func (f *Floor) Remove(c creature.Creature) error {
	p, err := f.Find(c)
	if err != nil {
		return err
	}
	f.tile(p).Creature = nil
	delete(f.positions, c.ID())
	f.creatures = slices.DeleteFunc(f.creatures, func(o creature.Creature) bool { return o == c })
	return nil
}

// relocate moves c from where it stands to the free cell to.
func (f *Floor) relocate(c creature.Creature, to grid.Point) {
	from := f.MustFind(c)
	f.tile(from).Creature = nil
	f.tile(to).Creature = c
	f.positions[c.ID()] = to
}

// SetTerrain replaces the terrain at p.
func (f *Floor) SetTerrain(p grid.Point, t *grid.Terrain) error {
	if !f.InBounds(p) {
		return fmt.Errorf("setting terrain at %v: %w", p, ErrOutOfBounds)
	}
	f.tile(p).Terrain = t
	return nil
}

// StairsUp returns the up staircase.
func (f *Floor) StairsUp() grid.Point { return f.stairsUp }

// StairsDown returns the down staircase, if the floor still has one.
func (f *Floor) StairsDown() (grid.Point, bool) { return f.stairsDown, f.hasStairsDown }

// collapseStairsDown turns the down staircase into plain floor.
func (f *Floor) collapseStairsDown() {
	if !f.hasStairsDown {
		return
	}
	f.tile(f.stairsDown).Terrain = grid.Floor
	f.hasStairsDown = false
}

// NearestFree returns the free walkable cell closest to p by walking
// distance, p included.
//
// Postcondition: Returns ErrNoFreeTile when no free walkable cell is reachable.
func (f *Floor) NearestFree(p grid.Point) (grid.Point, error) {
	if !f.InBounds(p) {
		return grid.Point{}, fmt.Errorf("searching from %v: %w", p, ErrOutOfBounds)
	}
	seen := map[grid.Point]bool{p: true}
	queue := []grid.Point{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if f.IsWalkable(cur) && !f.IsOccupied(cur) {
			return cur, nil
		}
		for _, d := range grid.Moves {
			next := cur.Add(d)
			if seen[next] || !f.IsWalkable(next) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return grid.Point{}, fmt.Errorf("searching from %v: %w", p, ErrNoFreeTile)
}

// freeCells returns every walkable, unoccupied, non-stairs cell in scan order.
func (f *Floor) freeCells() []grid.Point {
	var out []grid.Point
	for i, t := range f.tiles {
		if t.Terrain.IsWalkable && !t.Terrain.IsStairs() && t.Creature == nil {
			out = append(out, grid.Point{X: i % f.Width, Y: i / f.Width})
		}
	}
	return out
}

// Visible returns the cells visible from center within radius.
func (f *Floor) Visible(center grid.Point, radius int) func(grid.Point) bool {
	set := fov.Compute(f, center.X, center.Y, radius, true)
	return set.Has
}

// updateVisibility recomputes the hero's view: tiles in view are marked InFov
// and Explored, all others lose InFov.
func (f *Floor) updateVisibility(center grid.Point, radius int) {
	set := fov.Compute(f, center.X, center.Y, radius, true)
	for i := range f.tiles {
		f.tiles[i].InFov = false
	}
	set.Each(func(p grid.Point) {
		t := f.tile(p)
		t.InFov = true
		t.Explored = true
	})
}

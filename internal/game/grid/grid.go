// Package grid provides the geometry shared by every floor: points, the five
// orthogonal directions, terrain kinds and the raw layout produced by a
// dungeon generator.
package grid

import "fmt"

// Point is a tile coordinate. X grows east, Y grows south.
type Point struct {
	X, Y int
}

// Add returns p offset by d.
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.DX, Y: p.Y + d.DY}
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a unit offset. The set is closed: see All.
type Direction struct {
	Name   string
	DX, DY int
}

// The five directions a creature can act in.
var (
	Stationary = Direction{Name: "stationary"}
	North      = Direction{Name: "north", DY: -1}
	South      = Direction{Name: "south", DY: 1}
	West       = Direction{Name: "west", DX: -1}
	East       = Direction{Name: "east", DX: 1}
)

// All lists every direction, Stationary first.
var All = []Direction{Stationary, North, South, West, East}

// Moves lists the four directions that change position.
var Moves = []Direction{North, South, West, East}

// String returns the direction name.
func (d Direction) String() string { return d.Name }

// IsStationary reports whether d has no offset.
func (d Direction) IsStationary() bool { return d.DX == 0 && d.DY == 0 }

// Orthogonal returns the direction from one point to another when they share a
// row or column. Identical points yield Stationary.
//
// Postcondition: Returns (d, true) iff from and to are orthogonally aligned.
func Orthogonal(from, to Point) (Direction, bool) {
	switch {
	case from == to:
		return Stationary, true
	case from.X == to.X && to.Y < from.Y:
		return North, true
	case from.X == to.X:
		return South, true
	case from.Y == to.Y && to.X < from.X:
		return West, true
	case from.Y == to.Y:
		return East, true
	default:
		return Direction{}, false
	}
}

// Layout is the raw output of a dungeon generator: dimensions plus per-cell
// transparency and walkability flags, stored row-major.
type Layout struct {
	Width, Height int
	transparent   []bool
	walkable      []bool
}

// NewLayout returns a layout of solid, opaque cells.
//
// Precondition: width > 0 and height > 0.
func NewLayout(width, height int) *Layout {
	if width <= 0 || height <= 0 {
		panic("grid.NewLayout: dimensions must be positive")
	}
	return &Layout{
		Width:       width,
		Height:      height,
		transparent: make([]bool, width*height),
		walkable:    make([]bool, width*height),
	}
}

// InBounds reports whether p lies inside the layout.
func (l *Layout) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < l.Width && p.Y < l.Height
}

// SetCell sets the flags of the cell at p.
//
// Precondition: l.InBounds(p).
func (l *Layout) SetCell(p Point, transparent, walkable bool) {
	i := l.index(p)
	l.transparent[i] = transparent
	l.walkable[i] = walkable
}

// IsTransparent reports whether light passes through p. Out-of-bounds cells are opaque.
func (l *Layout) IsTransparent(p Point) bool {
	return l.InBounds(p) && l.transparent[l.index(p)]
}

// IsWalkable reports whether p can be stood on. Out-of-bounds cells are not walkable.
func (l *Layout) IsWalkable(p Point) bool {
	return l.InBounds(p) && l.walkable[l.index(p)]
}

func (l *Layout) index(p Point) int {
	if !l.InBounds(p) {
		panic(fmt.Sprintf("grid: point %v out of bounds %dx%d", p, l.Width, l.Height))
	}
	return p.Y*l.Width + p.X
}

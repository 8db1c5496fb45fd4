// Package mapgen generates random rooms-and-corridors floor layouts.
package mapgen

import (
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

// Rect is a room footprint including its surrounding wall.
type Rect struct {
	X, Y, W, H int
}

// Center returns the center cell of the room.
func (r Rect) Center() grid.Point {
	return grid.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether two rooms overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains reports whether p lies in the carved interior of the room.
func (r Rect) Contains(p grid.Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Builder provides a fluent API for generating a floor layout.
type Builder struct {
	src     dice.Source
	width   int
	height  int
	minSize int
	maxSize int
	rooms   []Rect
	layout  *grid.Layout
}

// NewBuilder creates a builder with the default 80x45 dimensions and room
// sizes between 4 and 12.
//
// Precondition: src must be non-nil.
func NewBuilder(src dice.Source) *Builder {
	if src == nil {
		panic("mapgen.NewBuilder: src must not be nil")
	}
	return &Builder{src: src, width: 80, height: 45, minSize: 4, maxSize: 12}
}

// WithSize sets the floor dimensions.
func (b *Builder) WithSize(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

// WithRoomSizes bounds room edge lengths.
func (b *Builder) WithRoomSizes(minSize, maxSize int) *Builder {
	b.minSize = minSize
	b.maxSize = maxSize
	return b
}

// WithRooms carves up to maxRooms non-overlapping rooms, each joined to the
// previously placed room by an L-shaped corridor.
//
// Precondition: maxSize+2 must not exceed either floor dimension.
// Postcondition: At least one room is carved when maxRooms >= 1.
func (b *Builder) WithRooms(maxRooms int) *Builder {
	b.layout = grid.NewLayout(b.width, b.height)
	b.rooms = make([]Rect, 0, maxRooms)

	for i := 0; i < maxRooms; i++ {
		w := b.randRange(b.minSize, b.maxSize)
		h := b.randRange(b.minSize, b.maxSize)
		x := b.randRange(0, b.width-w-1)
		y := b.randRange(0, b.height-h-1)
		room := Rect{X: x, Y: y, W: w, H: h}

		failed := false
		for _, other := range b.rooms {
			if room.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		b.carveRoom(room)
		if len(b.rooms) > 0 {
			prev := b.rooms[len(b.rooms)-1].Center()
			cur := room.Center()
			if b.src.Intn(2) == 0 {
				b.carveHCorridor(prev.X, cur.X, prev.Y)
				b.carveVCorridor(prev.Y, cur.Y, cur.X)
			} else {
				b.carveVCorridor(prev.Y, cur.Y, prev.X)
				b.carveHCorridor(prev.X, cur.X, cur.Y)
			}
		}
		b.rooms = append(b.rooms, room)
	}
	return b
}

// WithFlavor scatters trees (opaque but walkable) over room floors and turns
// walls that border a walkable cell into water (transparent but not
// walkable). Walkability, and so connectivity, is unchanged.
//
// Precondition: WithRooms must have been called.
func (b *Builder) WithFlavor(treeChance, waterChance float64) *Builder {
	if b.layout == nil {
		panic("mapgen.Builder.WithFlavor: WithRooms was not called")
	}
	for y := 1; y < b.height-1; y++ {
		for x := 1; x < b.width-1; x++ {
			p := grid.Point{X: x, Y: y}
			if b.layout.IsWalkable(p) {
				if b.inRoom(p) && dice.Chance(b.src, treeChance) {
					b.layout.SetCell(p, false, true)
				}
				continue
			}
			if b.bordersWalkable(p) && dice.Chance(b.src, waterChance) {
				b.layout.SetCell(p, true, false)
			}
		}
	}
	return b
}

func (b *Builder) inRoom(p grid.Point) bool {
	for _, r := range b.rooms {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

func (b *Builder) bordersWalkable(p grid.Point) bool {
	for _, d := range grid.Moves {
		if b.layout.IsWalkable(p.Add(d)) {
			return true
		}
	}
	return false
}

// Build returns the generated layout and the rooms carved into it.
//
// Precondition: WithRooms must have been called.
func (b *Builder) Build() (*grid.Layout, []Rect) {
	if b.layout == nil {
		panic("mapgen.Builder.Build: WithRooms was not called")
	}
	rooms := make([]Rect, len(b.rooms))
	copy(rooms, b.rooms)
	return b.layout, rooms
}

func (b *Builder) randRange(lo, hi int) int {
	return b.src.Intn(hi-lo+1) + lo
}

func (b *Builder) carveRoom(room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			b.layout.SetCell(grid.Point{X: x, Y: y}, true, true)
		}
	}
}

func (b *Builder) carveHCorridor(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		b.layout.SetCell(grid.Point{X: x, Y: y}, true, true)
	}
}

func (b *Builder) carveVCorridor(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		b.layout.SetCell(grid.Point{X: x, Y: y}, true, true)
	}
}

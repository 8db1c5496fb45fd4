// Package path finds shortest orthogonal walking paths between two cells.
package path

import (
	"github.com/zyedidia/generic/heap"

	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

// Graph is the terrain and occupancy a path is searched over.
type Graph interface {
	InBounds(p grid.Point) bool
	IsWalkable(p grid.Point) bool
	// IsOccupied reports whether a creature stands on p.
	IsOccupied(p grid.Point) bool
}

// Path is a sequence of steps from an origin (excluded) to a destination
// (included).
type Path struct {
	steps []grid.Point
}

// Len returns the number of steps in the path.
func (p Path) Len() int { return len(p.steps) }

// Steps returns a copy of the steps in walking order.
func (p Path) Steps() []grid.Point {
	out := make([]grid.Point, len(p.steps))
	copy(out, p.steps)
	return out
}

// StepForward returns the first step of the path.
//
// Postcondition: Returns (step, true) iff the path has at least one step.
func (p Path) StepForward() (grid.Point, bool) {
	if len(p.steps) == 0 {
		return grid.Point{}, false
	}
	return p.steps[0], true
}

type node struct {
	p    grid.Point
	g, f int
	seq  int
}

// Shortest computes a shortest walkable path from one cell to another with A*.
// Occupied cells are impassable except the destination itself.
//
// Precondition: g must be non-nil.
// Postcondition: Returns (path, true) when to is reachable; a path from a cell
// to itself has no steps.
func Shortest(g Graph, from, to grid.Point) (Path, bool) {
	if !g.InBounds(from) || !g.InBounds(to) {
		return Path{}, false
	}
	if from == to {
		return Path{}, true
	}
	if !g.IsWalkable(to) {
		return Path{}, false
	}

	passable := func(p grid.Point) bool {
		if !g.InBounds(p) || !g.IsWalkable(p) {
			return false
		}
		return p == to || !g.IsOccupied(p)
	}

	open := heap.New[node](func(a, b node) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})
	cost := map[grid.Point]int{from: 0}
	came := map[grid.Point]grid.Point{}
	seq := 0
	open.Push(node{p: from, f: manhattan(from, to)})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if cur.p == to {
			return Path{steps: unwind(came, from, to)}, true
		}
		if cur.g > cost[cur.p] {
			continue // stale entry
		}
		for _, d := range grid.Moves {
			next := cur.p.Add(d)
			if !passable(next) {
				continue
			}
			ng := cur.g + 1
			if old, seen := cost[next]; seen && old <= ng {
				continue
			}
			cost[next] = ng
			came[next] = cur.p
			seq++
			open.Push(node{p: next, g: ng, f: ng + manhattan(next, to), seq: seq})
		}
	}
	return Path{}, false
}

func unwind(came map[grid.Point]grid.Point, from, to grid.Point) []grid.Point {
	var rev []grid.Point
	for p := to; p != from; p = came[p] {
		rev = append(rev, p)
	}
	steps := make([]grid.Point, len(rev))
	for i, p := range rev {
		steps[len(rev)-1-i] = p
	}
	return steps
}

func manhattan(a, b grid.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Package fov computes radius-limited fields of view with recursive
// shadowcasting over eight octants.
package fov

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

// View is the read-only terrain a field of view is cast over.
type View interface {
	InBounds(p grid.Point) bool
	IsTransparent(p grid.Point) bool
}

// octant transforms, columns are xx, xy, yx, yy per octant
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// Compute returns every cell visible from (x, y) within radius.
//
// Precondition: view must be non-nil.
// Postcondition: The origin is visible whenever it is in bounds and radius >= 0.
// Opaque cells are included only when lightWalls is true.
func Compute(view View, x, y, radius int, lightWalls bool) mapset.Set[grid.Point] {
	visible := mapset.New[grid.Point]()
	origin := grid.Point{X: x, Y: y}
	if radius < 0 || !view.InBounds(origin) {
		return visible
	}
	visible.Put(origin)
	c := caster{view: view, origin: origin, radius: radius, lightWalls: lightWalls, visible: visible}
	for i := 0; i < 8; i++ {
		c.castLight(1, 1.0, 0.0, multipliers[0][i], multipliers[1][i], multipliers[2][i], multipliers[3][i])
	}
	return visible
}

type caster struct {
	view       View
	origin     grid.Point
	radius     int
	lightWalls bool
	visible    mapset.Set[grid.Point]
}

func (c *caster) blocking(p grid.Point) bool {
	return !c.view.InBounds(p) || !c.view.IsTransparent(p)
}

func (c *caster) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := (c.radius + 1) * (c.radius + 1)

	for j := row; j <= c.radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			p := grid.Point{X: c.origin.X + dx*xx + dy*xy, Y: c.origin.Y + dx*yx + dy*yy}
			if c.view.InBounds(p) && dx*dx+dy*dy < radiusSq {
				if c.lightWalls || c.view.IsTransparent(p) {
					c.visible.Put(p)
				}
			}

			if blocked {
				if c.blocking(p) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if c.blocking(p) && j < c.radius {
				blocked = true
				c.castLight(j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

package grid

import colorful "github.com/lucasb-eyer/go-colorful"

// Terrain is an immutable description of what a tile is made of. Terrains are
// shared by pointer across every tile of the same kind.
type Terrain struct {
	Name          string
	Glyph         rune
	Color         colorful.Color
	IsTransparent bool
	IsWalkable    bool
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Terrain catalog.
var (
	Floor      = &Terrain{Name: "floor", Glyph: '.', Color: rgb(165, 42, 42), IsTransparent: true, IsWalkable: true}
	Water      = &Terrain{Name: "water", Glyph: '~', Color: rgb(0, 0, 255), IsTransparent: true, IsWalkable: false}
	Tree       = &Terrain{Name: "tree", Glyph: '+', Color: rgb(0, 128, 0), IsTransparent: false, IsWalkable: true}
	Wall       = &Terrain{Name: "wall", Glyph: '#', Color: rgb(255, 255, 255), IsTransparent: false, IsWalkable: false}
	StairsDown = &Terrain{Name: "stairs down", Glyph: '>', Color: rgb(255, 255, 255), IsTransparent: true, IsWalkable: true}
	StairsUp   = &Terrain{Name: "stairs up", Glyph: '<', Color: rgb(255, 255, 255), IsTransparent: true, IsWalkable: true}
)

// Basic lists the terrains used to flavor generated cells.
var Basic = []*Terrain{Floor, Water, Tree, Wall}

// Matching returns the basic terrains whose flags agree with a generated cell.
// Generated cells that match nothing fall back to Floor or Wall.
//
// Postcondition: Returns a non-empty slice.
func Matching(transparent, walkable bool) []*Terrain {
	var out []*Terrain
	for _, t := range Basic {
		if t.IsTransparent == transparent && t.IsWalkable == walkable {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		if walkable {
			return []*Terrain{Floor}
		}
		return []*Terrain{Wall}
	}
	return out
}

// IsStairs reports whether t is either staircase.
func (t *Terrain) IsStairs() bool {
	return t == StairsDown || t == StairsUp
}

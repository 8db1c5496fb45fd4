// Package magic models the six elements: their base effects, mana costs,
// colors, magic words and the essence-driven attunement curve.
package magic

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind identifies one of the six elements. The set is closed.
type Kind int

const (
	Fire Kind = iota
	Water
	Air
	Earth
	Light
	Darkness

	kindCount
)

// Kinds lists every element in declaration order.
var Kinds = []Kind{Fire, Water, Air, Earth, Light, Darkness}

type kindInfo struct {
	name         string
	baseEffect   float64
	baseManaCost float64
	color        colorful.Color
	words        []string
	description  string
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var kinds = [kindCount]kindInfo{
	Fire: {
		name: "Fire", baseEffect: 3, baseManaCost: 1, color: rgb(255, 165, 0),
		words:       []string{"fire", "frizz", "burn", "singe"},
		description: "Burns the target for 3 HP.",
	},
	Water: {
		name: "Water", baseEffect: 3, baseManaCost: 1, color: rgb(0, 0, 255),
		words:       []string{"water", "aqua", "hydro", "swim"},
		description: "Drains 3 MP from the target.",
	},
	Air: {
		name: "Air", baseEffect: 2, baseManaCost: 1, color: rgb(0, 255, 255),
		words:       []string{"aero", "wind", "breeze", "blow"},
		description: "Pushes the target back 2 spaces, unless there's something behind it.",
	},
	Earth: {
		name: "Earth", baseEffect: 8, baseManaCost: 1, color: rgb(165, 42, 42),
		words:       []string{"earth", "terra", "rock", "ground"},
		description: "Slows the target (to half speed) for 8 turns.",
	},
	Light: {
		name: "Light", baseEffect: 3, baseManaCost: 1, color: rgb(255, 192, 203),
		words:       []string{"light", "lumen", "flash", "holy"},
		description: "Heals the target 3 HP. If cast on an enemy, also stuns it for 3 turns.",
	},
	Darkness: {
		name: "Darkness", baseEffect: 2, baseManaCost: 2, color: rgb(128, 0, 128),
		words:       []string{"dark", "shade", "evil", "death"},
		description: "Drains 2 HP from the target.",
	},
}

func (k Kind) info() kindInfo {
	if k < 0 || k >= kindCount {
		panic(fmt.Sprintf("magic: unknown element kind %d", int(k)))
	}
	return kinds[k]
}

// String returns the element name, e.g. "Fire".
func (k Kind) String() string { return k.info().name }

// BaseEffect is the effect magnitude at attunement 1 and full power.
func (k Kind) BaseEffect() float64 { return k.info().baseEffect }

// BaseManaCost is the mana cost at full efficiency.
func (k Kind) BaseManaCost() float64 { return k.info().baseManaCost }

// Color is the color the element is drawn and narrated in.
func (k Kind) Color() colorful.Color { return k.info().color }

// Description is a one-line summary of the element's effect.
func (k Kind) Description() string { return k.info().description }

// WordPool returns the magic words the element's session word is drawn from.
func (k Kind) WordPool() []string {
	pool := k.info().words
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}

// IsAttack reports whether the element harms its target directly.
func (k Kind) IsAttack() bool { return k == Fire || k == Darkness }

// IsUtility reports whether the element hinders rather than harms.
func (k Kind) IsUtility() bool { return k == Earth || k == Air }

// ParseKind resolves an element name case-insensitively.
//
// Postcondition: Returns a valid Kind or a non-nil error.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(k.String(), strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", name)
}

// UnmarshalText lets element names appear directly in YAML documents.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText renders the element name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// BlendColors returns the component-wise mean of colors, or white when empty.
func BlendColors(colors ...colorful.Color) colorful.Color {
	if len(colors) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

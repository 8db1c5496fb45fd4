package creature

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// ErrNoElements is returned when a creature with no elements tries to cast.
var ErrNoElements = errors.New("creature has no elements")

// Spell is an in-flight cast request, consumed when it resolves.
type Spell struct {
	Caster    Creature
	Direction grid.Direction
	Element   *magic.Element
	// Power is the typing accuracy in [0, 1].
	Power float64
	// Efficiency is the typing speed factor in (0, 1].
	Efficiency float64
}

// Accuracy scores a typed word against a magic word: 1 - distance/len(word),
// clamped to [0, 1]. Comparison ignores case and surrounding space.
func Accuracy(typed, word string) float64 {
	typed = strings.ToLower(strings.TrimSpace(typed))
	word = strings.ToLower(word)
	n := len([]rune(word))
	if n == 0 {
		return 0
	}
	acc := 1 - float64(levenshtein.ComputeDistance(typed, word))/float64(n)
	return math.Max(0, math.Min(1, acc))
}

// Efficiency maps typing time onto the cast efficiency curve
// 1 / log2(seconds + 2): 1 when instant, 1/log2(3) after one second.
func Efficiency(typing time.Duration) float64 {
	seconds := math.Max(0, typing.Seconds())
	return 1 / math.Log2(seconds+2)
}

// SpellFromWord resolves a typed word into a spell of whichever of the
// caster's elements it matches best; ties go to the earlier element.
//
// Postcondition: Returns ErrNoElements when the caster has no elements.
func SpellFromWord(caster Creature, typed string, dir grid.Direction, typing time.Duration) (*Spell, error) {
	var best *magic.Element
	bestAcc := -1.0
	for _, e := range caster.base().elements {
		if acc := Accuracy(typed, e.Word()); acc > bestAcc {
			best, bestAcc = e, acc
		}
	}
	if best == nil {
		return nil, ErrNoElements
	}
	return &Spell{
		Caster:     caster,
		Direction:  dir,
		Element:    best,
		Power:      bestAcc,
		Efficiency: Efficiency(typing),
	}, nil
}

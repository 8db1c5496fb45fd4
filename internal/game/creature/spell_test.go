package creature_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

func TestSpellFromWord_PerfectInstantCast(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Fire), g.Standard(magic.Earth))

	s, err := creature.SpellFromWord(h, g.Word(magic.Earth), grid.East, 0)
	require.NoError(t, err)
	assert.Equal(t, magic.Earth, s.Element.Kind())
	assert.Equal(t, 1.0, s.Power)
	assert.Equal(t, 1.0, s.Efficiency)
	assert.Equal(t, grid.East, s.Direction)
	assert.Same(t, h, s.Caster)
}

func TestSpellFromWord_IgnoresCase(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Fire))
	s, err := creature.SpellFromWord(h, "  "+upper(g.Word(magic.Fire))+" ", grid.North, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Power)
}

func TestSpellFromWord_NoElements(t *testing.T) {
	h := creature.NewHeroWithElements(creature.DefaultHeroStats())
	_, err := creature.SpellFromWord(h, "fire", grid.North, 0)
	assert.ErrorIs(t, err, creature.ErrNoElements)
}

func TestHero_QueueSpellWord(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Fire))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.QueueSpellWord(g.Word(magic.Fire), grid.West, start, start.Add(time.Second)))
	in := h.TakeInput()
	require.NotNil(t, in.Spell)
	assert.InDelta(t, 1/math.Log2(3), in.Spell.Efficiency, 1e-12)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 1.0, creature.Accuracy("fire", "fire"))
	assert.Equal(t, 0.75, creature.Accuracy("fira", "fire"))
	assert.Equal(t, 0.0, creature.Accuracy("zzzzzzzzzz", "fire"))
	assert.Equal(t, 0.0, creature.Accuracy("fire", ""))
}

func TestEfficiency_Curve(t *testing.T) {
	assert.Equal(t, 1.0, creature.Efficiency(0))
	assert.Equal(t, 0.5, creature.Efficiency(2*time.Second))
	assert.Equal(t, 1.0, creature.Efficiency(-time.Second))
}

func TestPropertyEfficiency_MonotonicAndBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int64Range(0, int64(time.Hour)).Draw(rt, "a")
		b := rapid.Int64Range(a, int64(time.Hour)).Draw(rt, "b")
		ea := creature.Efficiency(time.Duration(a))
		eb := creature.Efficiency(time.Duration(b))
		require.LessOrEqual(rt, eb, ea)
		require.Greater(rt, eb, 0.0)
		require.LessOrEqual(rt, ea, 1.0)
	})
}

func TestPropertyAccuracy_InUnitInterval(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		typed := rapid.StringMatching(`[a-z]{0,12}`).Draw(rt, "typed")
		word := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "word")
		acc := creature.Accuracy(typed, word)
		require.GreaterOrEqual(rt, acc, 0.0)
		require.LessOrEqual(rt, acc, 1.0)
	})
}

func upper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out)
}

package creature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
)

func TestCombine_FromZeroIsDuration(t *testing.T) {
	assert.InDelta(t, 8.0, creature.Combine(0, 8), 1e-12)
	assert.InDelta(t, 5.0, creature.Combine(3, 4), 1e-12)
}

func TestEffects_ApplyStacksPythagorean(t *testing.T) {
	fx := creature.NewActiveSet()
	assert.InDelta(t, 3.0, fx.Apply(creature.Slow, 3), 1e-12)
	assert.InDelta(t, 2.0, fx.Apply(creature.Slow, 4), 1e-12)
	assert.InDelta(t, 5.0, fx.Remaining(creature.Slow), 1e-12)
	assert.True(t, fx.Has(creature.Slow))
}

func TestEffects_NegativeDurationRemoves(t *testing.T) {
	fx := creature.NewActiveSet()
	fx.Apply(creature.Slow, -2)
	assert.False(t, fx.Has(creature.Slow))
	assert.Empty(t, fx.All())
}

func TestEffects_NegativeDurationShortens(t *testing.T) {
	fx := creature.NewActiveSet()
	fx.Apply(creature.Slow, 5)
	added := fx.Apply(creature.Slow, -1)
	assert.Less(t, added, 0.0)
	assert.InDelta(t, 5-(math.Hypot(5, 1)-5), fx.Remaining(creature.Slow), 1e-12)
}

func TestEffects_Remove(t *testing.T) {
	fx := creature.NewActiveSet()
	fx.Remove(creature.Slow)
	fx.Apply(creature.Slow, 4)
	fx.Remove(creature.Slow)
	assert.False(t, fx.Has(creature.Slow))
	assert.Zero(t, fx.Remaining(creature.Slow))
}

func TestEffects_AllReturnsCopies(t *testing.T) {
	fx := creature.NewActiveSet()
	fx.Apply(creature.Slow, 4)
	all := fx.All()
	require.Len(t, all, 1)
	all[0].Remaining = 100
	assert.InDelta(t, 4.0, fx.Remaining(creature.Slow), 1e-12)
}

func TestEffects_TickExpires(t *testing.T) {
	fx := creature.NewActiveSet()
	fx.Apply(creature.Slow, 2)
	assert.Empty(t, fx.Tick(1.5))
	assert.True(t, fx.Has(creature.Slow))
	assert.Equal(t, []creature.StatusEffect{creature.Slow}, fx.Tick(0.5))
	assert.False(t, fx.Has(creature.Slow))
}

func TestStatusEffect_String(t *testing.T) {
	assert.Equal(t, "slowed", creature.Slow.String())
}

func TestPropertyCombine_Commutative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d1 := rapid.Float64Range(0, 1000).Draw(rt, "d1")
		d2 := rapid.Float64Range(0, 1000).Draw(rt, "d2")
		a := creature.Combine(creature.Combine(0, d1), d2)
		b := creature.Combine(creature.Combine(0, d2), d1)
		require.InDelta(rt, a, b, 1e-9)
	})
}

func TestPropertyEffects_ApplyOrderIndependent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d1 := rapid.Float64Range(0.01, 100).Draw(rt, "d1")
		d2 := rapid.Float64Range(0.01, 100).Draw(rt, "d2")
		a, b := creature.NewActiveSet(), creature.NewActiveSet()
		a.Apply(creature.Slow, d1)
		a.Apply(creature.Slow, d2)
		b.Apply(creature.Slow, d2)
		b.Apply(creature.Slow, d1)
		require.InDelta(rt, a.Remaining(creature.Slow), b.Remaining(creature.Slow), 1e-9)
	})
}

func TestPropertyEffects_StackingHasDiminishingReturns(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d1 := rapid.Float64Range(0.01, 100).Draw(rt, "d1")
		d2 := rapid.Float64Range(0.01, 100).Draw(rt, "d2")
		fx := creature.NewActiveSet()
		fx.Apply(creature.Slow, d1)
		fx.Apply(creature.Slow, d2)
		require.LessOrEqual(rt, fx.Remaining(creature.Slow), d1+d2+1e-9)
		require.GreaterOrEqual(rt, fx.Remaining(creature.Slow), math.Max(d1, d2)-1e-9)
	})
}

package creature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

func grimoire() *magic.Grimoire {
	return magic.NewGrimoire(dice.NewSeededSource(1), magic.DefaultTuning())
}

func goblinType(flags ...creature.Flag) *creature.MonsterType {
	return &creature.MonsterType{
		ID:           "goblin",
		Name:         "goblin",
		Glyph:        "g",
		Elements:     []magic.Kind{magic.Fire},
		Vision:       4,
		Speed:        1,
		Strength:     1,
		MaxHitpoints: 5,
		MaxMana:      3,
		Difficulty:   2,
		Flags:        flags,
	}
}

func TestNewHero_Defaults(t *testing.T) {
	h := creature.NewHero(creature.DefaultHeroStats(), grimoire(), dice.NewSeededSource(3))
	assert.Equal(t, "you", h.Name())
	assert.Equal(t, '@', h.Glyph())
	assert.Equal(t, 3, h.Vision())
	assert.Equal(t, 1, h.Strength())
	assert.Equal(t, 10, h.Hitpoints())
	assert.Equal(t, 10, h.MaxHitpoints())
	assert.Equal(t, 10, h.Mana())
	assert.Equal(t, 1.0, h.Speed())
	require.Len(t, h.Elements(), 2)
	assert.True(t, h.Elements()[0].Kind().IsAttack())
	assert.False(t, h.Elements()[1].Kind().IsAttack())
	for _, e := range h.Elements() {
		assert.Equal(t, 40, e.Essences)
	}
}

func TestHero_SlowHalvesSpeed(t *testing.T) {
	h := creature.NewHeroWithElements(creature.DefaultHeroStats())
	creature.ApplyStatusEffect(h, creature.Slow, 4)
	assert.Equal(t, 0.5, h.Speed())
	assert.Equal(t, 2.0, creature.ActionTime(h))
	creature.ProcessTime(h, 4)
	assert.Equal(t, 1.0, h.Speed())
}

func TestHero_Boosts(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(),
		g.Standard(magic.Darkness), g.Standard(magic.Fire), g.Element(magic.Light, 80))
	assert.InDelta(t, 0.05, h.CritChance(), 1e-12)
	assert.InDelta(t, 0.1, h.SpellPowerBoost(), 1e-12)
	assert.InDelta(t, 0.2, h.RegenerationBoost(), 1e-12)

	weak := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Element(magic.Darkness, 5))
	assert.Equal(t, 0.0, weak.CritChance())
}

func TestHero_InputQueue(t *testing.T) {
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), grimoire().Standard(magic.Fire))
	assert.False(t, h.HasInput())
	h.QueueClimb()
	require.True(t, h.HasInput())
	in := h.TakeInput()
	assert.True(t, in.Climb)
	require.NotNil(t, in.Direction)
	assert.True(t, in.Direction.IsStationary())
	assert.False(t, h.HasInput())
}

func TestNewMonster_NamingAndSpawnCount(t *testing.T) {
	g := grimoire()
	typ := goblinType()
	m := creature.NewMonster(typ, g)
	assert.Equal(t, "the goblin", m.Name())
	assert.Equal(t, 'g', m.Glyph())
	assert.Equal(t, 1, typ.NumberSpawned())
	assert.Equal(t, magic.Fire.Color(), m.Color())

	boss := goblinType(creature.Unique)
	boss.Name = "Grol"
	assert.Equal(t, "Grol", creature.NewMonster(boss, g).Name())
}

func TestNewMonster_ElementsNotShared(t *testing.T) {
	g := grimoire()
	typ := goblinType()
	a := creature.NewMonster(typ, g)
	b := creature.NewMonster(typ, g)
	a.Elements()[0].Essences = 0
	assert.Equal(t, 40, b.Elements()[0].Essences)
}

func TestTakeDamage_Clamps(t *testing.T) {
	m := creature.NewMonster(goblinType(), grimoire())
	assert.Equal(t, 2, creature.TakeDamage(m, 2))
	assert.Equal(t, 3, m.Hitpoints())
	assert.Equal(t, 3, creature.TakeDamage(m, 10))
	assert.Equal(t, 0, m.Hitpoints())
	assert.True(t, m.IsDead())
	assert.Equal(t, 0, creature.TakeDamage(m, -4))
}

func TestHealAndRestoreMana_Capped(t *testing.T) {
	m := creature.NewMonster(goblinType(), grimoire())
	creature.TakeDamage(m, 2)
	assert.Equal(t, 2, creature.Heal(m, 5))
	assert.Equal(t, 5, m.Hitpoints())
	assert.Equal(t, 0, creature.RestoreMana(m, 1))
	require.True(t, creature.SpendMana(m, 2))
	assert.Equal(t, 1, creature.RestoreMana(m, 1))
	assert.Equal(t, 2, m.Mana())
}

func TestSpendMana_RejectsNegativeAndExcess(t *testing.T) {
	m := creature.NewMonster(goblinType(), grimoire())
	assert.False(t, creature.SpendMana(m, 4))
	assert.False(t, creature.SpendMana(m, -1))
	assert.Equal(t, 3, m.Mana())
}

func TestDrainMana(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Water))
	m := creature.NewMonster(goblinType(), g)
	require.True(t, creature.SpendMana(h, 9))
	assert.Equal(t, 3, creature.DrainMana(h, m, 5))
	assert.Equal(t, 0, m.Mana())
	assert.Equal(t, 4, h.Mana())
}

func TestDrainHP_CapsAtCasterMax(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Darkness))
	m := creature.NewMonster(goblinType(), g)
	creature.TakeDamage(h, 1)
	assert.Equal(t, 2, creature.DrainHP(h, m, 2))
	assert.Equal(t, 10, h.Hitpoints())
	assert.Equal(t, 3, m.Hitpoints())
	assert.Equal(t, 3, creature.DrainHP(h, m, 9))
	assert.True(t, m.IsDead())
}

func TestStun_FromReady(t *testing.T) {
	m := creature.NewMonster(goblinType(), grimoire())
	assert.InDelta(t, 3.0, creature.Stun(m, 3), 1e-12)
	assert.InDelta(t, 3.0, m.Timer(), 1e-12)
	assert.InDelta(t, 5-3.0, creature.Stun(m, 4), 1e-12)
	assert.InDelta(t, 5.0, m.Timer(), 1e-12)
}

func TestProcessTime_AdvancesTimer(t *testing.T) {
	m := creature.NewMonster(goblinType(), grimoire())
	creature.AddTime(m, 1)
	creature.ApplyStatusEffect(m, creature.Slow, 0.5)
	expired := creature.ProcessTime(m, 0.75)
	assert.InDelta(t, 0.25, m.Timer(), 1e-12)
	assert.Equal(t, []creature.StatusEffect{creature.Slow}, expired)
}

func TestEssenceDrainLimit(t *testing.T) {
	g := grimoire()
	assert.Equal(t, math.MaxInt, creature.EssenceDrainLimit(creature.NewHeroWithElements(creature.DefaultHeroStats())))
	assert.Equal(t, 2, creature.EssenceDrainLimit(creature.NewMonster(goblinType(), g)))
	assert.Equal(t, 6, creature.EssenceDrainLimit(creature.NewMonster(goblinType(creature.Unique), g)))
}

func TestDrainEssencesFrom_SkipsMissingKinds(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Fire))
	typ := goblinType()
	typ.Elements = []magic.Kind{magic.Fire, magic.Water}
	m := creature.NewMonster(typ, g)

	transfers := creature.DrainEssencesFrom(h, m, 2)
	assert.Equal(t, []creature.EssenceTransfer{{Kind: magic.Fire, Amount: 2}}, transfers)
	assert.Equal(t, 42, h.Elements()[0].Essences)
	assert.Equal(t, 38, m.Elements()[0].Essences)
	assert.Equal(t, 40, m.Elements()[1].Essences)
}

func TestStrongestElements(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Element(magic.Fire, 12), g.Element(magic.Air, 30), g.Element(magic.Light, 30))
	best := creature.StrongestElements(h)
	require.Len(t, best, 2)
	assert.Equal(t, magic.Air, best[0].Kind())
	assert.Equal(t, magic.Light, best[1].Kind())
}

func TestIsOpposed(t *testing.T) {
	g := grimoire()
	h := creature.NewHeroWithElements(creature.DefaultHeroStats())
	a := creature.NewMonster(goblinType(), g)
	b := creature.NewMonster(goblinType(), g)
	assert.True(t, creature.IsOpposed(h, a))
	assert.True(t, creature.IsOpposed(a, h))
	assert.False(t, creature.IsOpposed(a, b))
}

func TestPropertyTakeDamage_NeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		typ := goblinType()
		typ.MaxHitpoints = rapid.IntRange(1, 100).Draw(rt, "maxHP")
		m := creature.NewMonster(typ, grimoire())
		before := m.Hitpoints()
		dmg := rapid.IntRange(-10, 500).Draw(rt, "dmg")
		got := creature.TakeDamage(m, dmg)
		require.GreaterOrEqual(rt, m.Hitpoints(), 0)
		require.LessOrEqual(rt, got, before)
		require.Equal(rt, before-got, m.Hitpoints())
	})
}

func TestPropertyDrainEssences_Conserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := grimoire()
		kinds := rapid.SliceOfNDistinct(rapid.SampledFrom(magic.Kinds), 1, 6, func(k magic.Kind) magic.Kind { return k }).Draw(rt, "kinds")
		var casterEls, targetEls []*magic.Element
		for _, k := range magic.Kinds {
			casterEls = append(casterEls, g.Element(k, rapid.IntRange(0, 200).Draw(rt, "caster")))
		}
		for _, k := range kinds {
			targetEls = append(targetEls, g.Element(k, rapid.IntRange(0, 200).Draw(rt, "target")))
		}
		caster := creature.NewHeroWithElements(creature.DefaultHeroStats(), casterEls...)
		target := creature.NewHeroWithElements(creature.DefaultHeroStats(), targetEls...)
		before := make([]int, len(targetEls))
		for i, e := range targetEls {
			before[i] = e.Essences
		}
		casterBefore := 0
		for _, e := range casterEls {
			casterBefore += e.Essences
		}

		limit := rapid.IntRange(0, 300).Draw(rt, "limit")
		transfers := creature.DrainEssencesFrom(caster, target, limit)

		moved := 0
		for _, tr := range transfers {
			moved += tr.Amount
		}
		removed := 0
		for i, e := range targetEls {
			require.GreaterOrEqual(rt, e.Essences, 0)
			require.LessOrEqual(rt, before[i]-e.Essences, limit)
			removed += before[i] - e.Essences
		}
		casterAfter := 0
		for _, e := range casterEls {
			casterAfter += e.Essences
		}
		require.Equal(rt, removed, moved)
		require.Equal(rt, moved, casterAfter-casterBefore)
	})
}

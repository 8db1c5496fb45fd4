package command_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/foundmagic/internal/game/command"
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

func newHero() (*creature.Hero, *magic.Grimoire) {
	g := magic.NewGrimoire(dice.NewSeededSource(3), magic.DefaultTuning())
	return creature.NewHeroWithElements(creature.DefaultHeroStats(), g.Standard(magic.Fire), g.Standard(magic.Water)), g
}

func dispatch(t *testing.T, h *creature.Hero, line string) command.Outcome {
	t.Helper()
	out, err := command.NewDispatcher(command.DefaultRegistry()).Dispatch(h, line, 0)
	require.NoError(t, err)
	return out
}

func TestDispatch_Move(t *testing.T) {
	h, _ := newHero()
	assert.Equal(t, command.Queued, dispatch(t, h, "E"))
	in := h.TakeInput()
	require.NotNil(t, in.Direction)
	assert.Equal(t, grid.East, *in.Direction)
	assert.False(t, in.Climb)
}

func TestDispatch_WaitAndClimb(t *testing.T) {
	h, _ := newHero()
	dispatch(t, h, ".")
	in := h.TakeInput()
	require.NotNil(t, in.Direction)
	assert.True(t, in.Direction.IsStationary())

	dispatch(t, h, ">")
	assert.True(t, h.TakeInput().Climb)
}

func TestDispatch_CastResolvesWord(t *testing.T) {
	h, g := newHero()
	word := g.Word(magic.Water)

	assert.Equal(t, command.Queued, dispatch(t, h, "cast "+word+" north"))
	in := h.TakeInput()
	require.NotNil(t, in.Spell)
	assert.Equal(t, magic.Water, in.Spell.Element.Kind())
	assert.Equal(t, grid.North, in.Spell.Direction)
	assert.InDelta(t, 1, in.Spell.Power, 1e-9)
	assert.InDelta(t, 1, in.Spell.Efficiency, 1e-9)
}

func TestDispatch_CastDefaultsToSelf(t *testing.T) {
	h, g := newHero()
	dispatch(t, h, "c "+g.Word(magic.Fire))
	in := h.TakeInput()
	require.NotNil(t, in.Spell)
	assert.True(t, in.Spell.Direction.IsStationary())
}

func TestDispatch_TypingTimeLowersEfficiency(t *testing.T) {
	h, g := newHero()
	d := command.NewDispatcher(command.DefaultRegistry())
	_, err := d.Dispatch(h, "cast "+g.Word(magic.Fire)+" e", 2*time.Second)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, h.TakeInput().Spell.Efficiency, 1e-9)
}

func TestDispatch_Errors(t *testing.T) {
	h, _ := newHero()
	d := command.NewDispatcher(command.DefaultRegistry())

	_, err := d.Dispatch(h, "dance", 0)
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
	_, err = d.Dispatch(h, "cast", 0)
	assert.ErrorIs(t, err, command.ErrMissingWord)
	_, err = d.Dispatch(h, "cast fire sideways", 0)
	assert.ErrorIs(t, err, command.ErrUnknownDirection)
	assert.False(t, h.HasInput())

	bare := creature.NewHeroWithElements(creature.DefaultHeroStats())
	_, err = d.Dispatch(bare, "cast fire", 0)
	assert.ErrorIs(t, err, creature.ErrNoElements)
}

func TestDispatch_SystemOutcomes(t *testing.T) {
	h, _ := newHero()
	assert.Equal(t, command.Help, dispatch(t, h, "?"))
	assert.Equal(t, command.Quit, dispatch(t, h, "quit"))
	assert.Equal(t, command.Ignored, dispatch(t, h, "   "))
	assert.False(t, h.HasInput())
}

func TestDirectionNamed(t *testing.T) {
	for name, want := range map[string]grid.Direction{
		"north": grid.North, "S": grid.South, "l": grid.East, "h": grid.West, "self": grid.Stationary,
	} {
		got, ok := command.DirectionNamed(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := command.DirectionNamed("climb")
	assert.False(t, ok)
}

func TestNewDispatcher_NilRegistryPanics(t *testing.T) {
	assert.Panics(t, func() { command.NewDispatcher(nil) })
}

package runner_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/foundmagic/internal/game/command"
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/engine"
	"github.com/cory-johannsen/foundmagic/internal/game/narration"
	"github.com/cory-johannsen/foundmagic/internal/runner"
)

// newSession starts an empty dungeon; the hero stands on the stairs up of the
// first floor, so "<" wins at once.
func newSession(t *testing.T) *engine.Session {
	t.Helper()
	cat, err := creature.NewCatalog()
	require.NoError(t, err)
	opts := engine.DefaultOptions()
	opts.Seed = 5
	gen := engine.RoomsGenerator{Width: 30, Height: 20, MaxRooms: 6, RoomMinSize: 4, RoomMaxSize: 7}
	s, err := engine.NewSession(opts, cat, gen, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func dispatcher() *command.Dispatcher {
	return command.NewDispatcher(command.DefaultRegistry())
}

func TestReplay_SkipsBadLinesAndQuits(t *testing.T) {
	s := newSession(t)
	r := runner.NewReplayer(s, dispatcher(), zaptest.NewLogger(t), 0)

	res, err := r.Run(context.Background(), []string{"?", "dance", "wait", "quit", "<"})
	require.NoError(t, err)
	assert.Equal(t, runner.Quit, res.Ending)
	assert.Equal(t, 1, res.Actions)
	assert.InDelta(t, 1, res.TimeSpent, 1e-9)
	assert.Equal(t, 0, s.Depth(), "lines after quit are not run")
}

func TestReplay_VictoryEndsTheScript(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer
	s.Log().Subscribe(runner.NarrationPrinter(&out, false))
	r := runner.NewReplayer(s, dispatcher(), zaptest.NewLogger(t), 0)

	res, err := r.Run(context.Background(), []string{"<", "e", "e"})
	require.NoError(t, err)
	assert.Equal(t, runner.Victory, res.Ending)
	assert.Equal(t, 1, res.Actions)
	assert.Equal(t, "You escape the dungeon! Victory is yours!\n", out.String())
}

func TestReplay_UnfinishedWhenScriptRunsOut(t *testing.T) {
	s := newSession(t)
	res, err := runner.NewReplayer(s, dispatcher(), zaptest.NewLogger(t), 0).
		Run(context.Background(), []string{"wait", "wait"})
	require.NoError(t, err)
	assert.Equal(t, runner.Unfinished, res.Ending)
	assert.Equal(t, 2, res.Actions)
	assert.Equal(t, 0, res.DeepestDepth)
}

func TestReplay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.NewReplayer(newSession(t), dispatcher(), zaptest.NewLogger(t), 0).
		Run(ctx, []string{"wait"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplay_IsDeterministic(t *testing.T) {
	script := command.ParseScript("wait; e; e; s; s; w; n; wait")
	a, b := newSession(t), newSession(t)
	resA, err := runner.NewReplayer(a, dispatcher(), zaptest.NewLogger(t), 0).Run(context.Background(), script)
	require.NoError(t, err)
	resB, err := runner.NewReplayer(b, dispatcher(), zaptest.NewLogger(t), 0).Run(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, resA, resB)
	assert.Equal(t, a.Floor().MustFind(a.Hero()), b.Floor().MustFind(b.Hero()))
	assert.Equal(t, a.Log().Messages(), b.Log().Messages())
}

func TestStatus(t *testing.T) {
	s := newSession(t)
	status := runner.Status(s)
	assert.True(t, strings.HasPrefix(status, "floor 1  HP 10/10  MP 10/10"), status)
	for _, e := range s.Hero().Elements() {
		assert.Contains(t, status, strings.ToLower(e.Kind().String())+" 40")
	}
}

func TestNarrationPrinter_Color(t *testing.T) {
	var out bytes.Buffer
	runner.NarrationPrinter(&out, true)(narration.Entry{Message: "hi", Color: narration.Red})
	assert.Equal(t, "\x1b[38;2;255;0;0mhi\x1b[0m\n", out.String())
}

func TestLoop_SubmittedClimbWins(t *testing.T) {
	s := newSession(t)
	loop := runner.NewLoop(s, dispatcher(), zaptest.NewLogger(t))
	turns := 0
	loop.OnTurn(func(*engine.Session) { turns++ })
	done := make(chan error, 1)
	go func() { done <- loop.Start() }()

	require.True(t, loop.Submit("<", 0))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not finish")
	}
	assert.Equal(t, runner.Victory, loop.Result().Ending)
	assert.Equal(t, 1, loop.Result().Actions)
	assert.Equal(t, 1, turns)
	assert.False(t, loop.Submit("wait", 0), "stopped loops refuse input")
}

func TestLoop_QuitAndStop(t *testing.T) {
	loop := runner.NewLoop(newSession(t), dispatcher(), zaptest.NewLogger(t))
	done := make(chan error, 1)
	go func() { done <- loop.Start() }()
	require.True(t, loop.Submit("q", 0))
	require.NoError(t, <-done)
	assert.Equal(t, runner.Quit, loop.Result().Ending)

	idle := runner.NewLoop(newSession(t), dispatcher(), zaptest.NewLogger(t))
	go func() { done <- idle.Start() }()
	idle.Stop()
	idle.Stop()
	require.NoError(t, <-done)
	assert.Equal(t, runner.Unfinished, idle.Result().Ending)
}

func TestLifecycle_ReaderDrivesLoop(t *testing.T) {
	logger := zaptest.NewLogger(t)
	loop := runner.NewLoop(newSession(t), dispatcher(), logger)
	var help string
	loop.OnHelp(func(text string) { help = text })
	reader := runner.NewLineReader(strings.NewReader("help\n<\n"), loop, time.Second)

	lc := runner.NewLifecycle(logger)
	lc.Add("loop", loop)
	lc.Add("input", reader)

	done := make(chan error, 1)
	go func() { done <- lc.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not finish")
	}
	assert.Contains(t, help, "climb")
}

package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/foundmagic/internal/game/engine"
	"github.com/cory-johannsen/foundmagic/internal/game/narration"
)

// Ending says how a run finished.
type Ending int

const (
	// Unfinished means the input ran out with the hero still in the dungeon.
	Unfinished Ending = iota
	// Victory means the hero escaped the dungeon.
	Victory
	// Defeat means the hero died.
	Defeat
	// Quit means the player gave up.
	Quit
)

func (e Ending) String() string {
	switch e {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Quit:
		return "quit"
	default:
		return "unfinished"
	}
}

// Result summarises a run.
type Result struct {
	Ending Ending
	// Actions counts the hero commands that advanced the world.
	Actions int
	// TimeSpent is the game time that passed.
	TimeSpent float64
	// DeepestDepth is the deepest zero-based depth the hero reached.
	DeepestDepth int
}

// endingOf reads the session's win/loss state.
func endingOf(s *engine.Session) Ending {
	switch {
	case !s.VictoryTime().IsZero():
		return Victory
	case !s.LossTime().IsZero():
		return Defeat
	default:
		return Unfinished
	}
}

// Status renders the hero's vital signs on one line.
func Status(s *engine.Session) string {
	h := s.Hero()
	var b strings.Builder
	fmt.Fprintf(&b, "floor %d  HP %d/%d  MP %d/%d", s.Depth()+1, h.Hitpoints(), h.MaxHitpoints(), h.Mana(), h.MaxMana())
	for _, e := range h.Elements() {
		fmt.Fprintf(&b, "  %s %d", strings.ToLower(e.Kind().String()), e.Essences)
	}
	if s.IsEndgame() {
		fmt.Fprintf(&b, "  collapse in %.0f", s.EndgameTimer())
	}
	return b.String()
}

// NarrationPrinter returns a narration subscriber that writes each entry to w
// in its color using 24-bit ANSI escapes, or plain when color is false.
func NarrationPrinter(w io.Writer, color bool) func(narration.Entry) {
	return func(e narration.Entry) {
		if !color {
			fmt.Fprintln(w, e.Message)
			return
		}
		r, g, b := e.Color.RGB255()
		fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm%s\x1b[0m\n", r, g, b, e.Message)
	}
}

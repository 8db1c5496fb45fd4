package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
)

var (
	// ErrUnknownCommand is returned for input that resolves to no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownDirection is returned for a direction argument that names none.
	ErrUnknownDirection = errors.New("unknown direction")
	// ErrMissingWord is returned for a cast without a magic word.
	ErrMissingWord = errors.New("cast needs a magic word")
)

// builtin resolves direction aliases; it is never mutated.
var builtin = DefaultRegistry()

// Outcome describes what a dispatched line did.
type Outcome int

const (
	// Queued means hero input was queued and the world should advance.
	Queued Outcome = iota
	// Help means the caller should show the help text.
	Help
	// Quit means the caller should end the session.
	Quit
	// Ignored means the line was blank.
	Ignored
)

// Dispatcher queues hero input for typed command lines.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over r.
//
// Precondition: r must be non-nil.
func NewDispatcher(r *Registry) *Dispatcher {
	if r == nil {
		panic("command.NewDispatcher: registry must not be nil")
	}
	return &Dispatcher{registry: r}
}

// Registry returns the dispatcher's command registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch resolves line and queues the matching input on h. typing is how
// long the hero took to type the line; it sets the efficiency of a cast.
//
// Postcondition: Returns an error and queues nothing when line does not parse.
func (d *Dispatcher) Dispatch(h *creature.Hero, line string, typing time.Duration) (Outcome, error) {
	p := Parse(line)
	if p.Command == "" {
		return Ignored, nil
	}
	cmd, ok := d.registry.Resolve(p.Command)
	if !ok {
		return Ignored, fmt.Errorf("%q: %w", p.Command, ErrUnknownCommand)
	}

	switch cmd.Handler {
	case HandlerMove:
		dir, _ := DirectionNamed(cmd.Name)
		h.QueueMove(dir)
	case HandlerWait:
		h.QueueMove(grid.Stationary)
	case HandlerClimb:
		h.QueueClimb()
	case HandlerCast:
		if len(p.Args) == 0 {
			return Ignored, ErrMissingWord
		}
		dir := grid.Stationary
		if len(p.Args) > 1 {
			var ok bool
			if dir, ok = DirectionNamed(p.Args[1]); !ok {
				return Ignored, fmt.Errorf("%q: %w", p.Args[1], ErrUnknownDirection)
			}
		}
		end := time.Now()
		if err := h.QueueSpellWord(p.Args[0], dir, end.Add(-typing), end); err != nil {
			return Ignored, fmt.Errorf("casting %q: %w", p.Args[0], err)
		}
	case HandlerHelp:
		return Help, nil
	case HandlerQuit:
		return Quit, nil
	}
	return Queued, nil
}

// DirectionNamed resolves a direction name or movement alias, such as
// "east", "e" or "self".
func DirectionNamed(name string) (grid.Direction, bool) {
	name = strings.ToLower(name)
	switch name {
	case "self", "here", "stationary", ".":
		return grid.Stationary, true
	}
	cmd, ok := builtin.Resolve(name)
	if !ok || cmd.Handler != HandlerMove {
		return grid.Direction{}, false
	}
	for _, dir := range grid.Moves {
		if dir.Name == cmd.Name {
			return dir, true
		}
	}
	return grid.Direction{}, false
}

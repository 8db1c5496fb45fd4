// Package command turns typed hero commands into queued hero input.
package command

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryMagic    = "magic"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to the hero input they queue.
const (
	HandlerMove  = "move"
	HandlerWait  = "wait"
	HandlerClimb = "climb"
	HandlerCast  = "cast"
	HandlerHelp  = "help"
	HandlerQuit  = "quit"
)

// Command defines a hero command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text.
	Help string
	// Category groups the command.
	Category string
	// Handler names the input the command queues.
	Handler string
}

// BuiltinCommands returns every hero command.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "north", Aliases: []string{"n", "k"}, Help: "Move or attack north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s", "j"}, Help: "Move or attack south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e", "l"}, Help: "Move or attack east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w", "h"}, Help: "Move or attack west", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "wait", Aliases: []string{".", "z"}, Help: "Stand still for one action", Category: CategoryMovement, Handler: HandlerWait},
		{Name: "climb", Aliases: []string{"<", ">"}, Help: "Climb the stairs underfoot", Category: CategoryMovement, Handler: HandlerClimb},

		{Name: "cast", Aliases: []string{"c"}, Help: "Speak a magic word (cast <word> [direction])", Category: CategoryMagic, Handler: HandlerCast},

		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Leave the dungeon for good", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west":
		return true
	default:
		return false
	}
}

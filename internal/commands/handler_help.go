package commands

import "github.com/aivta/go-adventure/internal/game"

const helpText = `Available commands:
- go [direction] / [direction] - Move in a direction (north, south, east, west)
- look / examine [object] - Look around or examine something
- take [item] - Pick up an item
- drop [item] - Drop an item
- use [item] - Use an item
- inventory / i - Show your inventory
- help / ? - Show this help message

Common directions: north (n), south (s), east (e), west (w)`

// handleHelp returns the static command reference.
func (i *Interpreter) handleHelp(_ *game.Session, _ string) (string, bool) {
	return helpText, true
}

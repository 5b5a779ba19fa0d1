package commands

import (
	"fmt"

	"github.com/aivta/go-adventure/internal/game"
)

// handleMove relocates the player through an exit of the current room. A
// direction with no exit leaves the player in place; the attempt still
// counts as a move at the dispatch layer.
func (i *Interpreter) handleMove(sess *game.Session, direction string) (string, bool) {
	room := i.catalog.Room(sess.Player.Room)
	if room == nil {
		return "You are in an invalid location.", false
	}

	dest, ok := room.Exits[direction]
	if !ok {
		return fmt.Sprintf("You can't go %s from here.", direction), false
	}

	sess.Player.Room = dest
	sess.Player.Score += i.scoring.Explore
	sess.Visited[dest] = true

	return fmt.Sprintf("You go %s.\n\n%s", direction, i.lookAround(sess)), true
}

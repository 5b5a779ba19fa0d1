package commands

import (
	"fmt"

	"github.com/aivta/go-adventure/internal/game"
)

// handleDrop moves an item from the inventory back into the current room.
// Points earned picking it up are not revoked.
func (i *Interpreter) handleDrop(sess *game.Session, itemName string) (string, bool) {
	if itemName == "" {
		return "Drop what?", false
	}

	if !sess.DropItem(itemName) {
		return fmt.Sprintf("You don't have a %s.", itemName), false
	}

	sess.AddRoomItem(sess.Player.Room, itemName)

	return fmt.Sprintf("You drop the %s.", itemName), true
}

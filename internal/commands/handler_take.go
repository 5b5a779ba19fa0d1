package commands

import (
	"fmt"

	"github.com/aivta/go-adventure/internal/game"
)

// handleTake moves a portable item from the current room into the
// inventory and awards the pickup bonus.
func (i *Interpreter) handleTake(sess *game.Session, itemName string) (string, bool) {
	if itemName == "" {
		return "Take what?", false
	}

	present := false
	for _, item := range sess.RoomItems(sess.Player.Room) {
		if item == itemName {
			present = true
			break
		}
	}
	if !present {
		return fmt.Sprintf("You don't see a %s here.", itemName), false
	}

	if item := i.catalog.Item(itemName); item != nil && !item.Portable {
		return fmt.Sprintf("You can't take the %s.", itemName), false
	}

	sess.RemoveRoomItem(sess.Player.Room, itemName)
	sess.Player.Inventory = append(sess.Player.Inventory, itemName)
	sess.Player.Score += i.scoring.Pickup

	return fmt.Sprintf("You take the %s.", itemName), true
}

package commands

import (
	"strings"

	"github.com/aivta/go-adventure/internal/game"
)

// handleInventory lists the held items in pickup order.
func (i *Interpreter) handleInventory(sess *game.Session, _ string) (string, bool) {
	if len(sess.Player.Inventory) == 0 {
		return "You are carrying nothing.", true
	}
	return "You are carrying: " + strings.Join(sess.Player.Inventory, ", "), true
}

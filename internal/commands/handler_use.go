package commands

import (
	"fmt"

	"github.com/aivta/go-adventure/internal/game"
)

// handleUse triggers a held item's fixed use effect.
func (i *Interpreter) handleUse(sess *game.Session, itemName string) (string, bool) {
	if itemName == "" {
		return "Use what?", false
	}

	if !sess.Holding(itemName) {
		return fmt.Sprintf("You don't have a %s.", itemName), false
	}

	if item := i.catalog.Item(itemName); item != nil {
		return item.UseMessage, true
	}

	return fmt.Sprintf("You can't use the %s.", itemName), false
}

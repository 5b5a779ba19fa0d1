package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aivta/go-adventure/internal/game"
)

// handleLook narrates the current room, or examines a named target found in
// the room or the inventory.
func (i *Interpreter) handleLook(sess *game.Session, target string) (string, bool) {
	if target == "" {
		return i.lookAround(sess), true
	}
	return i.examine(sess, target), true
}

func (i *Interpreter) lookAround(sess *game.Session) string {
	room := i.catalog.Room(sess.Player.Room)
	if room == nil {
		return "You are in an invalid location."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s", room.Name, room.Description)

	if items := sess.RoomItems(sess.Player.Room); len(items) > 0 {
		fmt.Fprintf(&b, "\n\nYou can see: %s", strings.Join(items, ", "))
	}

	if len(room.Exits) > 0 {
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		fmt.Fprintf(&b, "\n\nExits: %s", strings.Join(dirs, ", "))
	}

	return b.String()
}

func (i *Interpreter) examine(sess *game.Session, target string) string {
	inRoom := false
	for _, item := range sess.RoomItems(sess.Player.Room) {
		if item == target {
			inRoom = true
			break
		}
	}

	if inRoom || sess.Holding(target) {
		if item := i.catalog.Item(target); item != nil {
			return item.Description
		}
		return fmt.Sprintf("You see nothing special about the %s.", target)
	}

	return fmt.Sprintf("You don't see a %s here.", target)
}

package world

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
)

// Catalog is the static definition of a game world: the room graph, the
// items, the room the player starts in, and the room that ends the game.
// Construction validates every cross-reference, so a Catalog that exists is
// internally consistent. It is read-only after construction and safe for
// unsynchronized concurrent reads.
type Catalog struct {
	rooms map[string]*Room
	items map[string]*Item
	start string
	win   string
}

// NewCatalog builds a catalog from room and item definitions. It fails fast
// when any exit names an undefined room, any room lists an undefined item,
// or the start/win rooms don't exist. Errors here are configuration errors:
// fatal at startup, never recoverable at runtime.
func NewCatalog(rooms map[string]*Room, items map[string]*Item, start, win string) (*Catalog, error) {
	el := errors.NewErrorList()

	if len(rooms) == 0 {
		el.Add(fmt.Errorf("at least one room is required"))
	}

	for id, room := range rooms {
		if room == nil {
			el.Add(fmt.Errorf("room %q: definition is nil", id))
			continue
		}
		if err := room.Validate(); err != nil {
			el.Add(fmt.Errorf("room %q: %w", id, err))
		}
		for dir, dest := range room.Exits {
			if _, ok := rooms[dest]; !ok {
				el.Add(fmt.Errorf("room %q: exit %s references undefined room %q", id, dir, dest))
			}
		}
		for _, item := range room.Items {
			if _, ok := items[item]; !ok {
				el.Add(fmt.Errorf("room %q: lists undefined item %q", id, item))
			}
		}
	}

	for id, item := range items {
		if item == nil {
			el.Add(fmt.Errorf("item %q: definition is nil", id))
			continue
		}
		if err := item.Validate(); err != nil {
			el.Add(fmt.Errorf("item %q: %w", id, err))
		}
	}

	if _, ok := rooms[start]; !ok {
		el.Add(fmt.Errorf("start room %q is not defined", start))
	}
	if _, ok := rooms[win]; !ok {
		el.Add(fmt.Errorf("win room %q is not defined", win))
	}

	if err := el.Err(); err != nil {
		return nil, err
	}

	return &Catalog{
		rooms: rooms,
		items: items,
		start: start,
		win:   win,
	}, nil
}

// Room returns the room definition for id, or nil if it doesn't exist.
func (c *Catalog) Room(id string) *Room {
	return c.rooms[id]
}

// Item returns the item definition for id, or nil if it doesn't exist.
func (c *Catalog) Item(id string) *Item {
	return c.items[id]
}

// StartRoomID returns the id of the room new players begin in.
func (c *Catalog) StartRoomID() string {
	return c.start
}

// WinRoomID returns the id of the room that completes the adventure.
func (c *Catalog) WinRoomID() string {
	return c.win
}

// RoomCount returns the number of rooms in the catalog.
func (c *Catalog) RoomCount() int {
	return len(c.rooms)
}

// ItemCount returns the number of items in the catalog.
func (c *Catalog) ItemCount() int {
	return len(c.items)
}

// RoomIDs returns all room ids in sorted order.
func (c *Catalog) RoomIDs() []string {
	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlaceItems returns a deep copy of the initial room item placement. Each
// session owns one of these copies so that picking up an item in one
// session never disturbs another.
func (c *Catalog) PlaceItems() map[string][]string {
	placement := make(map[string][]string, len(c.rooms))
	for id, room := range c.rooms {
		items := make([]string, len(room.Items))
		copy(items, room.Items)
		placement[id] = items
	}
	return placement
}

package world

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func testRooms() map[string]*Room {
	return map[string]*Room{
		"meadow": {
			Name:        "Meadow",
			Description: "An open meadow.",
			Exits:       map[string]string{"north": "hut"},
			Items:       []string{"rock"},
		},
		"hut": {
			Name:        "Hut",
			Description: "A small hut.",
			Exits:       map[string]string{"south": "meadow"},
		},
	}
}

func testItems() map[string]*Item {
	return map[string]*Item{
		"rock": {Name: "rock", Description: "A grey rock.", Portable: true},
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog(testRooms(), testItems(), "meadow", "hut")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "start room", c.StartRoomID(), "meadow")
	testutil.AssertEqual(t, "win room", c.WinRoomID(), "hut")
	testutil.AssertEqual(t, "room count", c.RoomCount(), 2)
	testutil.AssertEqual(t, "item count", c.ItemCount(), 1)

	if c.Room("meadow") == nil {
		t.Error("expected meadow room to exist")
	}
	if c.Room("nowhere") != nil {
		t.Error("expected nil for unknown room")
	}
	if c.Item("rock") == nil {
		t.Error("expected rock item to exist")
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := map[string]struct {
		mutate func(map[string]*Room, map[string]*Item) (start, win string)
		expErr string
	}{
		"exit references undefined room": {
			mutate: func(rooms map[string]*Room, _ map[string]*Item) (string, string) {
				rooms["meadow"].Exits["west"] = "swamp"
				return "meadow", "hut"
			},
			expErr: "undefined room",
		},
		"room lists undefined item": {
			mutate: func(rooms map[string]*Room, _ map[string]*Item) (string, string) {
				rooms["hut"].Items = []string{"sword"}
				return "meadow", "hut"
			},
			expErr: "undefined item",
		},
		"undefined start room": {
			mutate: func(map[string]*Room, map[string]*Item) (string, string) {
				return "swamp", "hut"
			},
			expErr: "start room",
		},
		"undefined win room": {
			mutate: func(map[string]*Room, map[string]*Item) (string, string) {
				return "meadow", "swamp"
			},
			expErr: "win room",
		},
		"room missing description": {
			mutate: func(rooms map[string]*Room, _ map[string]*Item) (string, string) {
				rooms["hut"].Description = ""
				return "meadow", "hut"
			},
			expErr: "description is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rooms := testRooms()
			items := testItems()
			start, win := tt.mutate(rooms, items)

			_, err := NewCatalog(rooms, items, start, win)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.expErr)
			}
			if !strings.Contains(err.Error(), tt.expErr) {
				t.Errorf("expected error containing %q, got %q", tt.expErr, err.Error())
			}
		})
	}
}

func TestCatalog_PlaceItems(t *testing.T) {
	c, err := NewCatalog(testRooms(), testItems(), "meadow", "hut")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := c.PlaceItems()
	b := c.PlaceItems()

	testutil.AssertEqual(t, "meadow items", len(a["meadow"]), 1)

	// Mutating one placement must not leak into another or the catalog.
	a["meadow"] = a["meadow"][:0]
	testutil.AssertEqual(t, "independent copy", len(b["meadow"]), 1)
	testutil.AssertEqual(t, "catalog untouched", len(c.Room("meadow").Items), 1)
}

func TestForest(t *testing.T) {
	c := Forest()

	testutil.AssertEqual(t, "start room", c.StartRoomID(), "start")
	testutil.AssertEqual(t, "win room", c.WinRoomID(), "forest_exit")
	testutil.AssertEqual(t, "room count", c.RoomCount(), 6)
	testutil.AssertEqual(t, "item count", c.ItemCount(), 5)

	start := c.Room("start")
	testutil.AssertEqual(t, "start north exit", start.Exits["north"], "cave_entrance")
	testutil.AssertEqual(t, "stick placement", start.Items[0], "stick")

	if c.Item("treasure_chest").Portable {
		t.Error("treasure chest should not be portable")
	}
}

package world

// Forest returns the builtin adventure: a six-room forest with a cave to
// explore and an exit to find. It is used when no world asset directories
// are configured.
func Forest() *Catalog {
	rooms := map[string]*Room{
		"start": {
			Name:        "Forest Clearing",
			Description: "You are in a small clearing in a dark forest. Tall trees surround you on all sides. There is a path leading north to what appears to be a cave entrance.",
			Exits:       map[string]string{"north": "cave_entrance", "east": "forest_path"},
			Items:       []string{"stick"},
		},
		"cave_entrance": {
			Name:        "Cave Entrance",
			Description: "You stand before a dark cave entrance. The opening is large enough to walk through, but you can't see what lies beyond. A cold breeze flows from within.",
			Exits:       map[string]string{"south": "start", "north": "cave_interior"},
			Items:       []string{"torch"},
		},
		"cave_interior": {
			Name:        "Cave Interior",
			Description: "Inside the cave, your torch illuminates rough stone walls. You can hear the sound of dripping water echoing from deeper within. There's a passage leading further north.",
			Exits:       map[string]string{"south": "cave_entrance", "north": "treasure_room"},
		},
		"treasure_room": {
			Name:        "Treasure Room",
			Description: "You've discovered a small chamber filled with ancient treasures! Gold coins glitter in the torchlight, and there's an ornate chest in the center of the room.",
			Exits:       map[string]string{"south": "cave_interior"},
			Items:       []string{"gold_coins", "treasure_chest"},
		},
		"forest_path": {
			Name:        "Forest Path",
			Description: "A winding path through the forest. The trees are less dense here, and you can see sunlight filtering through the canopy above.",
			Exits:       map[string]string{"west": "start", "east": "forest_exit"},
			Items:       []string{"berries"},
		},
		"forest_exit": {
			Name:        "Forest Exit",
			Description: "You've reached the edge of the forest. Beyond lies a vast open plain stretching to the horizon. You've successfully navigated the forest!",
			Exits:       map[string]string{"west": "forest_path"},
		},
	}

	items := map[string]*Item{
		"stick": {
			Name:        "stick",
			Description: "A sturdy wooden stick. It might be useful as a tool or weapon.",
			Portable:    true,
			UseMessage:  "You wave the stick around. It's quite sturdy!",
		},
		"torch": {
			Name:        "torch",
			Description: "A burning torch that provides light in dark places.",
			Portable:    true,
			UseMessage:  "The torch burns brightly, illuminating your surroundings.",
		},
		"gold_coins": {
			Name:        "gold coins",
			Description: "A handful of ancient gold coins. They're quite valuable!",
			Portable:    true,
			UseMessage:  "The gold coins jingle pleasantly in your hands.",
		},
		"treasure_chest": {
			Name:        "treasure chest",
			Description: "An ornate wooden chest bound with iron. It's locked, but perhaps you could open it...",
			Portable:    false,
			UseMessage:  "The chest is locked tight. You need a key to open it.",
		},
		"berries": {
			Name:        "berries",
			Description: "Sweet forest berries. They look safe to eat.",
			Portable:    true,
			UseMessage:  "You eat the berries. They're delicious and restore your energy!",
		},
	}

	// The builtin content is fixed, so construction cannot fail.
	c, err := NewCatalog(rooms, items, "start", "forest_exit")
	if err != nil {
		panic(err)
	}
	return c
}

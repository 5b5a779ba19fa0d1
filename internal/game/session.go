package game

import "time"

// Status is the lifecycle state of a session. Transitions only ever leave
// StatusActive; a completed or won session never becomes active again.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusWon       Status = "won"
)

// Terminal reports whether the status ends the session.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusWon
}

// Player is the mutable player state within one session.
type Player struct {
	Room      string   `json:"current_room"`
	Inventory []string `json:"inventory"`
	Score     int      `json:"score"`
	Moves     int      `json:"moves"`
}

// PathStep records one executed command: what was tried, what the game said,
// and where the player ended up. Steps are plain scalar/slice fields so they
// serialize the same everywhere.
type PathStep struct {
	Command   string `json:"command"`
	Narration string `json:"narration"`
	Location  string `json:"location"`
	Success   bool   `json:"success"`
	Score     int    `json:"score"`
	Moves     int    `json:"moves"`
}

// Session is one independent playthrough. It owns a private copy of the
// world's item placement (Rooms) and visited flags, so concurrent sessions
// never see each other's changes.
type Session struct {
	ID          string              `json:"session_id"`
	GameType    string              `json:"game_type"`
	Status      Status              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	LastCommand string              `json:"last_command,omitempty"`
	Player      Player              `json:"player"`
	Rooms       map[string][]string `json:"rooms"`
	Visited     map[string]bool     `json:"visited"`
	Path        []PathStep          `json:"path"`
}

// Clone returns a deep copy of the session. The store hands these out so
// callers can't mutate live state outside the per-session lock.
func (s *Session) Clone() *Session {
	c := *s

	c.Player.Inventory = make([]string, len(s.Player.Inventory))
	copy(c.Player.Inventory, s.Player.Inventory)

	c.Rooms = make(map[string][]string, len(s.Rooms))
	for id, items := range s.Rooms {
		cp := make([]string, len(items))
		copy(cp, items)
		c.Rooms[id] = cp
	}

	c.Visited = make(map[string]bool, len(s.Visited))
	for id, v := range s.Visited {
		c.Visited[id] = v
	}

	c.Path = make([]PathStep, len(s.Path))
	copy(c.Path, s.Path)

	return &c
}

// RoomItems returns the session-local item list for a room.
func (s *Session) RoomItems(roomID string) []string {
	return s.Rooms[roomID]
}

// RemoveRoomItem takes an item out of a room's session-local item list.
// It reports whether the item was present.
func (s *Session) RemoveRoomItem(roomID, item string) bool {
	items := s.Rooms[roomID]
	for i, id := range items {
		if id == item {
			s.Rooms[roomID] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// AddRoomItem places an item into a room's session-local item list.
func (s *Session) AddRoomItem(roomID, item string) {
	s.Rooms[roomID] = append(s.Rooms[roomID], item)
}

// Holding reports whether the player is carrying the item.
func (s *Session) Holding(item string) bool {
	for _, id := range s.Player.Inventory {
		if id == item {
			return true
		}
	}
	return false
}

// DropItem removes an item from the inventory, preserving the order of the
// remaining items. It reports whether the item was held.
func (s *Session) DropItem(item string) bool {
	for i, id := range s.Player.Inventory {
		if id == item {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Summary is the listing view of a session.
type Summary struct {
	ID        string    `json:"session_id"`
	GameType  string    `json:"game_type"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
	Moves     int       `json:"moves"`
}

// Summary returns the listing view of the session.
func (s *Session) Summary() Summary {
	return Summary{
		ID:        s.ID,
		GameType:  s.GameType,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		Score:     s.Player.Score,
		Moves:     s.Player.Moves,
	}
}

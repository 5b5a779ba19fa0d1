package game

import "github.com/aivta/go-adventure/internal/world"

// StateSnapshot is the flat view of a session an external caller (or the
// driving agent) consumes. Only scalar, slice, and boolean fields.
type StateSnapshot struct {
	SessionID   string   `json:"session_id"`
	Location    string   `json:"current_location"`
	Description string   `json:"description"`
	Inventory   []string `json:"inventory"`
	Score       int      `json:"score"`
	Moves       int      `json:"moves"`
	GameOver    bool     `json:"game_over"`
	Victory     bool     `json:"victory"`
}

// NewSnapshot builds the snapshot for a session against its world catalog.
func NewSnapshot(c *world.Catalog, s *Session) StateSnapshot {
	snap := StateSnapshot{
		SessionID: s.ID,
		Score:     s.Player.Score,
		Moves:     s.Player.Moves,
		GameOver:  s.Status == StatusCompleted,
		Victory:   s.Status == StatusWon,
	}

	snap.Inventory = make([]string, len(s.Player.Inventory))
	copy(snap.Inventory, s.Player.Inventory)

	if room := c.Room(s.Player.Room); room != nil {
		snap.Location = room.Name
		snap.Description = room.Description
	}

	return snap
}

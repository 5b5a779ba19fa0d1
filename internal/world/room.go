package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Room is a location in the game world. Exits map a direction word to the
// id of the destination room. Items is the initial item placement; sessions
// operate on their own copy of it, never on this slice.
type Room struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits,omitempty"`
	Items       []string          `json:"items,omitempty"`
}

// Validate satisfies storage.ValidatingSpec. Cross-references (exit
// destinations, item ids) are checked when the catalog is assembled.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if r.Description == "" {
		el.Add(fmt.Errorf("room description is required"))
	}

	for dir, dest := range r.Exits {
		if dir == "" {
			el.Add(fmt.Errorf("exit direction must not be empty"))
		}
		if dest == "" {
			el.Add(fmt.Errorf("exit %s: destination room id is required", dir))
		}
	}

	return el.Err()
}

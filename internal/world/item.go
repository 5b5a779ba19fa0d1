package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Item is a thing the player can interact with. Items are immutable after
// catalog construction and shared by reference across sessions.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Portable    bool   `json:"portable"`
	UseMessage  string `json:"use_message,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Description == "" {
		el.Add(fmt.Errorf("item description is required"))
	}

	return el.Err()
}

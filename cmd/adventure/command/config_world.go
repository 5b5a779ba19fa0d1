package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/aivta/go-adventure/internal/storage"
	"github.com/aivta/go-adventure/internal/world"
)

// WorldConfig selects either a builtin world or a pair of asset
// directories to load one from.
type WorldConfig struct {
	Builtin   string                    `json:"builtin,omitempty"`
	Rooms     AssetConfig[*world.Room]  `json:"rooms,omitempty"`
	Items     AssetConfig[*world.Item]  `json:"items,omitempty"`
	StartRoom string                    `json:"start_room,omitempty"`
	WinRoom   string                    `json:"win_room,omitempty"`
}

func (c *WorldConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Builtin != "" {
		if c.Builtin != "forest" {
			el.Add(fmt.Errorf("unknown builtin world: %s", c.Builtin))
		}
		return el.Err()
	}

	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	if c.StartRoom == "" {
		el.Add(fmt.Errorf("start_room is required for asset worlds"))
	}
	if c.WinRoom == "" {
		el.Add(fmt.Errorf("win_room is required for asset worlds"))
	}

	return el.Err()
}

func (c *WorldConfig) BuildCatalog() (*world.Catalog, error) {
	if c.Builtin != "" {
		return world.Forest(), nil
	}

	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	return world.NewCatalog(rooms.GetAll(), items.GetAll(), c.StartRoom, c.WinRoom)
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

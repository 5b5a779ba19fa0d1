package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/storage"
)

// SessionBackend is a persister that can also report play aggregates.
// Both disk backends satisfy it.
type SessionBackend interface {
	SaveSession(ctx context.Context, sess *game.Session) error
	LoadSessions(ctx context.Context) ([]*game.Session, error)
	DeleteSession(ctx context.Context, id string) error
	Stats(ctx context.Context) (storage.AgentStats, error)
}

type StorageConfig struct {
	Backend  string `json:"backend,omitempty"`
	Path     string `json:"path,omitempty"`
	SavesDir string `json:"saves_dir,omitempty"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case "", "sqlite", "bolt":
	default:
		el.Add(fmt.Errorf("unknown storage backend: %s", c.Backend))
	}

	if c.Backend != "" && c.Path == "" {
		el.Add(fmt.Errorf("path is required for backend %s", c.Backend))
	}

	return el.Err()
}

// BuildBackend opens the configured backend. An empty backend means
// sessions live only in memory; it returns nil.
func (c *StorageConfig) BuildBackend() (SessionBackend, error) {
	switch c.Backend {
	case "sqlite":
		return storage.OpenSqlite(c.Path)
	case "bolt":
		return storage.OpenBolt(c.Path)
	default:
		return nil, nil
	}
}

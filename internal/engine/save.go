package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/storage"
)

// saveFile is the on-disk snapshot format. There is no versioning or
// migration: a save only loads against the world it was written from.
type saveFile struct {
	Session   *game.Session `json:"session"`
	Timestamp time.Time     `json:"timestamp"`
}

// SaveGame writes a timestamped snapshot of the session to the saves
// directory and returns the file name.
func (e *Engine) SaveGame(ctx context.Context, id string) (string, error) {
	if e.savesDir == "" {
		return "", fmt.Errorf("saves directory is not configured")
	}

	sess, err := e.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(saveFile{
		Session:   sess,
		Timestamp: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding save for %s: %w", id, err)
	}

	if err := os.MkdirAll(e.savesDir, 0755); err != nil {
		return "", fmt.Errorf("creating saves directory: %w", err)
	}

	filename := fmt.Sprintf("save_%s_%s.json", id, time.Now().UTC().Format("20060102_150405"))
	if err := storage.AtomicWrite(filepath.Join(e.savesDir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("writing save for %s: %w", id, err)
	}

	return filename, nil
}

// LoadGame restores a session from a save file, replacing any live session
// with the same id. The id in the file wins; the id argument selects which
// session slot to restore into.
func (e *Engine) LoadGame(ctx context.Context, id, filename string) error {
	if e.savesDir == "" {
		return fmt.Errorf("saves directory is not configured")
	}

	// Save files live directly in the saves directory; reject any path
	// that tries to escape it.
	if filepath.Base(filename) != filename || strings.Contains(filename, "..") {
		return fmt.Errorf("invalid save file name %q", filename)
	}

	data, err := os.ReadFile(filepath.Join(e.savesDir, filename))
	if err != nil {
		return fmt.Errorf("reading save file %q: %w", filename, err)
	}

	var save saveFile
	if err := json.Unmarshal(data, &save); err != nil {
		return fmt.Errorf("decoding save file %q: %w", filename, err)
	}
	if save.Session == nil {
		return fmt.Errorf("save file %q has no session", filename)
	}

	save.Session.ID = id
	if err := e.store.Restore(ctx, save.Session); err != nil {
		return err
	}

	return nil
}

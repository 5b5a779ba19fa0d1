package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/aivta/go-adventure/internal/game"
)

func testSession(id string, status game.Status) *game.Session {
	return &game.Session{
		ID:        id,
		GameType:  "adventure",
		Status:    status,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Player: game.Player{
			Room:      "start",
			Inventory: []string{"stick"},
			Score:     15,
			Moves:     3,
		},
		Rooms:   map[string][]string{"start": {}},
		Visited: map[string]bool{"start": true},
		Path: []game.PathStep{
			{Command: "look", Narration: "Forest Clearing", Location: "Forest Clearing", Success: true, Moves: 1},
			{Command: "take stick", Narration: "You take the stick.", Location: "Forest Clearing", Success: true, Score: 10, Moves: 2},
			{Command: "go west", Narration: "You can't go west from here.", Location: "Forest Clearing", Moves: 3},
		},
	}
}

func openTestSqlite(t *testing.T) *SqliteStore {
	t.Helper()

	store, err := OpenSqlite(filepath.Join(t.TempDir(), "agent.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSqliteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestSqlite(t)

	sess := testSession("s-1", game.StatusActive)
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("saving: %v", err)
	}

	loaded, err := store.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	testutil.AssertEqual(t, "session count", len(loaded), 1)

	got := loaded[0]
	testutil.AssertEqual(t, "id", got.ID, "s-1")
	testutil.AssertEqual(t, "status", got.Status, game.StatusActive)
	testutil.AssertEqual(t, "score", got.Player.Score, 15)
	testutil.AssertEqual(t, "inventory", got.Player.Inventory[0], "stick")
	testutil.AssertEqual(t, "path length", len(got.Path), 3)
	testutil.AssertEqual(t, "path step", got.Path[1].Command, "take stick")
}

func TestSqliteStore_SaveIsIdempotentPerStep(t *testing.T) {
	ctx := context.Background()
	store := openTestSqlite(t)

	sess := testSession("s-1", game.StatusActive)
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("saving: %v", err)
	}
	// Saving again without new steps must not duplicate action rows.
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("saving again: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	testutil.AssertEqual(t, "total actions", stats.TotalActions, 3)
}

func TestSqliteStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := openTestSqlite(t)

	sess := testSession("s-1", game.StatusActive)
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("saving: %v", err)
	}
	if err := store.DeleteSession(ctx, "s-1"); err != nil {
		t.Fatalf("deleting: %v", err)
	}

	loaded, err := store.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	testutil.AssertEqual(t, "session count", len(loaded), 0)

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	testutil.AssertEqual(t, "actions removed", stats.TotalActions, 0)
}

func TestSqliteStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := openTestSqlite(t)

	for _, sess := range []*game.Session{
		testSession("s-1", game.StatusActive),
		testSession("s-2", game.StatusWon),
		testSession("s-3", game.StatusCompleted),
		testSession("s-4", game.StatusWon),
	} {
		if err := store.SaveSession(ctx, sess); err != nil {
			t.Fatalf("saving %s: %v", sess.ID, err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	testutil.AssertEqual(t, "total", stats.TotalSessions, 4)
	testutil.AssertEqual(t, "active", stats.ActiveSessions, 1)
	testutil.AssertEqual(t, "completed", stats.CompletedGames, 3)
	testutil.AssertEqual(t, "won", stats.WonGames, 2)
	testutil.AssertEqual(t, "success rate", stats.SuccessRate, 0.5)
	testutil.AssertEqual(t, "total actions", stats.TotalActions, 12)
	testutil.AssertEqual(t, "avg actions", stats.AverageActionsPerGame, 3.0)
}

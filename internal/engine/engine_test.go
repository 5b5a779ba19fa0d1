package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/aivta/go-adventure/internal/commands"
	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/session"
	"github.com/aivta/go-adventure/internal/storage"
	"github.com/aivta/go-adventure/internal/world"
)

// fakeRunner records launch and stop calls.
type fakeRunner struct {
	launched []string
	stopped  []string
}

func (r *fakeRunner) Launch(id string, maxActions int) error {
	r.launched = append(r.launched, id)
	return nil
}

func (r *fakeRunner) Stop(id string) {
	r.stopped = append(r.stopped, id)
}

type fakeStats struct {
	stats storage.AgentStats
}

func (s *fakeStats) Stats(context.Context) (storage.AgentStats, error) {
	return s.stats, nil
}

func newEngine(t *testing.T, opts ...Opt) *Engine {
	t.Helper()
	catalog := world.Forest()
	store := session.NewStore(catalog, nil)
	return New(catalog, store, commands.NewInterpreter(catalog, commands.DefaultScoring()), opts...)
}

func mustCreate(t *testing.T, eng *Engine) *game.Session {
	t.Helper()
	sess, err := eng.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return sess
}

func TestEngine_CreateSession(t *testing.T) {
	eng := newEngine(t)
	sess := mustCreate(t, eng)

	testutil.AssertEqual(t, "game type", sess.GameType, "adventure")
	testutil.AssertEqual(t, "status", sess.Status, game.StatusActive)

	snap, err := eng.GameState(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("fetching state: %v", err)
	}
	testutil.AssertEqual(t, "location", snap.Location, "Forest Clearing")
	testutil.AssertEqual(t, "score", snap.Score, 0)

	// A snapshot fetch must not disturb state.
	again, err := eng.GameState(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("fetching state: %v", err)
	}
	testutil.AssertEqual(t, "moves unchanged", again.Moves, snap.Moves)
}

func TestEngine_ExecuteCommandLogsPath(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	sess := mustCreate(t, eng)

	res, err := eng.ExecuteCommand(ctx, sess.ID, "  take stick  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "success", res.Success, true)
	testutil.AssertEqual(t, "narration", res.Narration, "You take the stick.")

	path, err := eng.PathHistory(ctx, sess.ID)
	if err != nil {
		t.Fatalf("fetching history: %v", err)
	}
	testutil.AssertEqual(t, "path length", len(path), 1)
	testutil.AssertEqual(t, "path command", path[0].Command, "take stick")
	testutil.AssertEqual(t, "path score", path[0].Score, 10)
	testutil.AssertEqual(t, "path moves", path[0].Moves, 1)
}

func TestEngine_EmptyCommandLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	sess := mustCreate(t, eng)

	res, err := eng.ExecuteCommand(ctx, sess.ID, "   ")
	if !errors.Is(err, commands.ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
	testutil.AssertEqual(t, "narration", res.Narration, "Please enter a command.")

	path, err := eng.PathHistory(ctx, sess.ID)
	if err != nil {
		t.Fatalf("fetching history: %v", err)
	}
	testutil.AssertEqual(t, "path length", len(path), 0)

	snap, err := eng.GameState(ctx, sess.ID)
	if err != nil {
		t.Fatalf("fetching state: %v", err)
	}
	testutil.AssertEqual(t, "moves", snap.Moves, 0)
}

func TestEngine_WinFlow(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	sess := mustCreate(t, eng)

	if _, err := eng.ExecuteCommand(ctx, sess.ID, "go east"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := eng.ExecuteCommand(ctx, sess.ID, "go east")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "victory", res.State.Victory, true)
	testutil.AssertEqual(t, "score", res.State.Score, 110)
	testutil.AssertEqual(t, "congratulations", strings.Contains(res.Narration, "Congratulations!"), true)

	_, err = eng.ExecuteCommand(ctx, sess.ID, "look")
	if !errors.Is(err, game.ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestEngine_ValidCommands(t *testing.T) {
	eng := newEngine(t)
	sess := mustCreate(t, eng)

	valid, err := eng.ValidCommands(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	has := func(cmd string) bool {
		for _, v := range valid {
			if v == cmd {
				return true
			}
		}
		return false
	}
	testutil.AssertEqual(t, "has look", has("look"), true)
	testutil.AssertEqual(t, "has go north", has("go north"), true)
	testutil.AssertEqual(t, "has take stick", has("take stick"), true)
}

func TestEngine_AutonomousPlayDelegation(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	runner := &fakeRunner{}
	eng.SetRunner(runner)
	sess := mustCreate(t, eng)

	if err := eng.StartAutonomousPlay(ctx, sess.ID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "launched", runner.launched[0], sess.ID)

	if err := eng.StartAutonomousPlay(ctx, "missing", 10); !errors.Is(err, game.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEngine_DeleteSessionStopsRunner(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	runner := &fakeRunner{}
	eng.SetRunner(runner)
	sess := mustCreate(t, eng)

	if err := eng.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "stopped", runner.stopped[0], sess.ID)

	if _, err := eng.GameState(ctx, sess.ID); !errors.Is(err, game.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEngine_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t, WithSavesDir(t.TempDir()))
	sess := mustCreate(t, eng)

	if _, err := eng.ExecuteCommand(ctx, sess.ID, "take stick"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.ExecuteCommand(ctx, sess.ID, "go north"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filename, err := eng.SaveGame(ctx, sess.ID)
	if err != nil {
		t.Fatalf("saving game: %v", err)
	}

	restored := mustCreate(t, eng)
	if err := eng.LoadGame(ctx, restored.ID, filename); err != nil {
		t.Fatalf("loading game: %v", err)
	}

	snap, err := eng.GameState(ctx, restored.ID)
	if err != nil {
		t.Fatalf("fetching state: %v", err)
	}
	testutil.AssertEqual(t, "location", snap.Location, "Cave Entrance")
	testutil.AssertEqual(t, "score", snap.Score, 15)
	testutil.AssertEqual(t, "moves", snap.Moves, 2)
	testutil.AssertEqual(t, "inventory", snap.Inventory[0], "stick")
}

func TestEngine_LoadGameRejectsBadFilenames(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t, WithSavesDir(t.TempDir()))
	sess := mustCreate(t, eng)

	for name, filename := range map[string]string{
		"traversal": "../escape.json",
		"absolute":  "/etc/passwd",
	} {
		t.Run(name, func(t *testing.T) {
			if err := eng.LoadGame(ctx, sess.ID, filename); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestEngine_GameInfo(t *testing.T) {
	eng := newEngine(t)
	mustCreate(t, eng)

	info := eng.GameInfo()
	testutil.AssertEqual(t, "name", info.Name, "Simple Adventure")
	testutil.AssertEqual(t, "version", info.Version, "1.0.0")
	testutil.AssertEqual(t, "rooms", info.TotalRooms, 6)
	testutil.AssertEqual(t, "items", info.TotalItems, 5)
	testutil.AssertEqual(t, "active", info.ActiveSessions, 1)
}

func TestEngine_Stats(t *testing.T) {
	eng := newEngine(t)
	if _, err := eng.Stats(context.Background()); err == nil {
		t.Fatal("expected an error without a stats source")
	}

	eng = newEngine(t, WithStats(&fakeStats{stats: storage.AgentStats{TotalSessions: 3, WonGames: 1}}))
	stats, err := eng.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "total", stats.TotalSessions, 3)
	testutil.AssertEqual(t, "won", stats.WonGames, 1)
}

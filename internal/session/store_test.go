package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/world"
)

// memPersister is an in-memory Persister that can be told to fail.
type memPersister struct {
	mu       sync.Mutex
	saved    map[string]*game.Session
	failSave bool
	saves    int
}

func newMemPersister() *memPersister {
	return &memPersister{saved: map[string]*game.Session{}}
}

func (p *memPersister) SaveSession(_ context.Context, s *game.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.failSave {
		return errors.New("disk full")
	}
	p.saved[s.ID] = s.Clone()
	return nil
}

func (p *memPersister) LoadSessions(context.Context) ([]*game.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*game.Session
	for _, s := range p.saved {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (p *memPersister) DeleteSession(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.saved, id)
	return nil
}

func TestStore_Create(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	store := NewStore(world.Forest(), p)

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "status", sess.Status, game.StatusActive)
	testutil.AssertEqual(t, "start room", sess.Player.Room, "start")
	testutil.AssertEqual(t, "score", sess.Player.Score, 0)
	testutil.AssertEqual(t, "moves", sess.Player.Moves, 0)
	testutil.AssertEqual(t, "start visited", sess.Visited["start"], true)
	testutil.AssertEqual(t, "start items", sess.Rooms["start"][0], "stick")
	testutil.AssertEqual(t, "persisted", len(p.saved), 1)

	if sess.ID == "" {
		t.Error("expected a session id")
	}
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewStore(world.Forest(), newMemPersister())

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "id", got.ID, sess.ID)

	// Mutating the returned copy must not touch the stored session.
	got.Player.Score = 999
	again, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "score unchanged", again.Player.Score, 0)

	_, err = store.Get(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	store := NewStore(world.Forest(), p)

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := store.Update(ctx, sess.ID, func(s *game.Session) error {
		s.Player.Moves++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "moves", updated.Player.Moves, 1)
	testutil.AssertEqual(t, "persisted moves", p.saved[sess.ID].Player.Moves, 1)
}

func TestStore_Update_FnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore(world.Forest(), newMemPersister())

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boom := errors.New("boom")
	_, err = store.Update(ctx, sess.ID, func(s *game.Session) error {
		s.Player.Moves = 42
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "mutation discarded", got.Player.Moves, 0)
}

func TestStore_Update_PersistFailureDegrades(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.failSave = true

	var failures int
	store := NewStore(world.Forest(), p, WithPersistFailureHook(func() { failures++ }))

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("create should succeed despite persistence failure: %v", err)
	}

	updated, err := store.Update(ctx, sess.ID, func(s *game.Session) error {
		s.Player.Moves++
		return nil
	})
	if err != nil {
		t.Fatalf("update should succeed despite persistence failure: %v", err)
	}

	// In-memory state stays authoritative.
	testutil.AssertEqual(t, "moves", updated.Player.Moves, 1)
	testutil.AssertEqual(t, "failure hook calls", failures, 2)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	store := NewStore(world.Forest(), p)

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = store.Delete(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "store empty", store.Len(), 0)
	testutil.AssertEqual(t, "persister empty", len(p.saved), 0)

	err = store.Delete(ctx, sess.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Hydrate(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()

	store := NewStore(world.Forest(), p)
	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second store over the same persister sees the session again.
	restored := NewStore(world.Forest(), p)
	if err := restored.Hydrate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := restored.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "game type", got.GameType, "adventure")
	testutil.AssertEqual(t, "room", got.Player.Room, "start")
}

func TestStore_ConcurrentUpdatesSameSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(world.Forest(), newMemPersister())

	sess, err := store.Create(ctx, "adventure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, sess.ID, func(s *game.Session) error {
				s.Player.Moves++
				return nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "no lost updates", got.Player.Moves, n)
}

func TestStore_ConcurrentDistinctSessions(t *testing.T) {
	ctx := context.Background()
	store := NewStore(world.Forest(), newMemPersister())

	const n = 10
	ids := make([]string, n)
	for i := range ids {
		sess, err := store.Create(ctx, fmt.Sprintf("game-%d", i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids[i] = sess.ID
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for _, id := range ids {
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := store.Update(ctx, id, func(s *game.Session) error {
					s.Player.Moves++
					return nil
				})
				if err != nil {
					t.Errorf("update %s: %v", id, err)
				}
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		got, err := store.Get(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "moves "+id, got.Player.Moves, 20)
	}

	testutil.AssertEqual(t, "session count", store.Len(), n)
	testutil.AssertEqual(t, "active count", store.ActiveCount(), n)
}

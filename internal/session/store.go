package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/world"
)

// ErrNotFound aliases game.ErrSessionNotFound for callers matching with
// errors.Is against this package.
var ErrNotFound = game.ErrSessionNotFound

// Persister is the durability collaborator. In-memory state is the source
// of truth while the process lives; the persister only needs to be
// eventually durable and to read its own writes.
type Persister interface {
	SaveSession(ctx context.Context, s *game.Session) error
	LoadSessions(ctx context.Context) ([]*game.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type entry struct {
	mu   sync.Mutex
	sess *game.Session
}

// Store is the in-memory table of live sessions. Mutations on one session
// id are serialized by that entry's lock; operations on distinct ids
// proceed concurrently. Every successful mutation is written through to the
// persister; a failed write is logged and counted but does not roll back
// the in-memory change.
type Store struct {
	catalog   *world.Catalog
	persister Persister

	mu       sync.RWMutex
	sessions map[string]*entry

	now           func() time.Time
	newID         func() string
	onPersistFail func()
}

// NewStore creates a session store backed by the given catalog and
// persister.
func NewStore(catalog *world.Catalog, persister Persister, opts ...StoreOpt) *Store {
	s := &Store{
		catalog:   catalog,
		persister: persister,
		sessions:  map[string]*entry{},
		now:       time.Now,
		newID:     uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Hydrate loads previously persisted sessions into memory. Call once at
// startup, before the store is shared.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	sessions, err := s.persister.LoadSessions(ctx)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range sessions {
		if s.catalog.Room(sess.Player.Room) == nil {
			slog.WarnContext(ctx, "skipping persisted session with unknown room",
				"session", sess.ID, "room", sess.Player.Room)
			continue
		}
		s.sessions[sess.ID] = &entry{sess: sess}
	}

	return nil
}

// Create allocates a new session with a fresh player at the catalog's start
// room and a private copy of the world's item placement.
func (s *Store) Create(ctx context.Context, gameType string) (*game.Session, error) {
	sess := &game.Session{
		ID:        s.newID(),
		GameType:  gameType,
		Status:    game.StatusActive,
		CreatedAt: s.now().UTC(),
		Player: game.Player{
			Room:      s.catalog.StartRoomID(),
			Inventory: []string{},
		},
		Rooms:   s.catalog.PlaceItems(),
		Visited: map[string]bool{s.catalog.StartRoomID(): true},
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{sess: sess}
	s.mu.Unlock()

	s.persist(ctx, sess)

	return sess.Clone(), nil
}

// Get returns a deep copy of the session, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*game.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Clone(), nil
}

// Update applies fn to the session under its lock and persists the result.
// fn sees the live session and may mutate it freely; if fn returns an error
// the mutation is discarded. The returned session is a post-mutation copy.
func (s *Store) Update(ctx context.Context, id string, fn func(*game.Session) error) (*game.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Work on a copy so a failed fn leaves the live session untouched.
	next := e.sess.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	e.sess = next

	s.persist(ctx, next)

	return next.Clone(), nil
}

// Restore installs a session loaded from a save file, replacing any live
// session with the same id, and persists it.
func (s *Store) Restore(ctx context.Context, sess *game.Session) error {
	if s.catalog.Room(sess.Player.Room) == nil {
		return fmt.Errorf("restoring session %s: unknown room %q", sess.ID, sess.Player.Room)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{sess: sess.Clone()}
	s.mu.Unlock()

	s.persist(ctx, sess)

	return nil
}

// Delete removes the session from memory and from the persister.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("deleting session %s: %w", id, ErrNotFound)
	}

	if s.persister != nil {
		if err := s.persister.DeleteSession(ctx, id); err != nil {
			s.degraded(ctx, id, err)
		}
	}

	return nil
}

// List returns summaries of all sessions, oldest first.
func (s *Store) List(ctx context.Context) []game.Summary {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	summaries := make([]game.Summary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		summaries = append(summaries, e.sess.Summary())
		e.mu.Unlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})

	return summaries
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ActiveCount returns the number of sessions still in play.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	n := 0
	for _, e := range entries {
		e.mu.Lock()
		if e.sess.Status == game.StatusActive {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

func (s *Store) entry(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// persist writes the session through to the durability collaborator. A
// failure degrades durability but never the operation: the in-memory state
// stays authoritative and the caller still sees success.
func (s *Store) persist(ctx context.Context, sess *game.Session) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveSession(ctx, sess); err != nil {
		s.degraded(ctx, sess.ID, err)
	}
}

func (s *Store) degraded(ctx context.Context, id string, err error) {
	slog.WarnContext(ctx, "session persistence degraded", "session", id, "error", err)
	if s.onPersistFail != nil {
		s.onPersistFail()
	}
}

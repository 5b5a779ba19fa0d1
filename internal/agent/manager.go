package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aivta/go-adventure/internal/game"
)

// ErrAlreadyRunning is returned when a session already has a live run.
var ErrAlreadyRunning = errors.New("session already has an autonomous run")

// Reaper is the slice of the engine used to clean up finished sessions.
type Reaper interface {
	ListSessions(ctx context.Context) []game.Summary
	DeleteSession(ctx context.Context, id string) error
}

// run tracks one in-flight autonomous play goroutine.
type run struct {
	cancel context.CancelFunc
	done   chan struct{}

	report *RunReport
	err    error
}

// Manager owns the lifecycle of autonomous runs: at most one per session,
// each on its own goroutine with its own cancel. It doubles as a worker
// (Start blocks and tears everything down on shutdown) and as a tickable
// manager for the driver, which reaps finished runs and stale sessions.
type Manager struct {
	orch   *Orchestrator
	reaper Reaper

	defaultMaxActions int
	retention         time.Duration
	onRunCount        func(n int)

	mu   sync.Mutex
	runs map[string]*run
}

// NewManager builds a run manager over the orchestrator. The reaper may be
// nil; session cleanup is then skipped.
func NewManager(orch *Orchestrator, opts ...ManagerOpt) *Manager {
	m := &Manager{
		orch:              orch,
		defaultMaxActions: 20,
		runs:              map[string]*run{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Launch starts an autonomous run for the session. It returns
// ErrAlreadyRunning if one is still live. maxActions <= 0 uses the
// configured default.
func (m *Manager) Launch(sessionID string, maxActions int) error {
	if maxActions <= 0 {
		maxActions = m.defaultMaxActions
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[sessionID]; ok {
		return fmt.Errorf("launching run for %s: %w", sessionID, ErrAlreadyRunning)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.runs[sessionID] = r
	m.countChanged()

	go func() {
		defer close(r.done)
		r.report, r.err = m.orch.Run(ctx, sessionID, maxActions)
		if r.err != nil {
			slog.Warn("autonomous run failed", "session", sessionID, "error", r.err)
		} else {
			slog.Info("autonomous run finished", "session", sessionID,
				"actions", r.report.Actions, "status", r.report.Status, "stopped", r.report.Stopped)
		}
	}()

	return nil
}

// Stop cancels the session's run, if any, and waits for it to unwind.
func (m *Manager) Stop(sessionID string) {
	m.mu.Lock()
	r, ok := m.runs[sessionID]
	if ok {
		delete(m.runs, sessionID)
		m.countChanged()
	}
	m.mu.Unlock()

	if ok {
		r.cancel()
		<-r.done
	}
}

// StopAll cancels every live run and waits for all of them.
func (m *Manager) StopAll() {
	m.mu.Lock()
	stopped := make([]*run, 0, len(m.runs))
	for id, r := range m.runs {
		delete(m.runs, id)
		stopped = append(stopped, r)
	}
	m.countChanged()
	m.mu.Unlock()

	for _, r := range stopped {
		r.cancel()
		<-r.done
	}
}

// Running reports whether the session has a live run.
func (m *Manager) Running(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.runs[sessionID]
	if !ok {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Tick reaps finished run handles and, when a reaper and retention are
// configured, deletes terminal sessions older than the retention window.
func (m *Manager) Tick(ctx context.Context) error {
	m.mu.Lock()
	for id, r := range m.runs {
		select {
		case <-r.done:
			delete(m.runs, id)
		default:
		}
	}
	m.countChanged()
	m.mu.Unlock()

	if m.reaper == nil || m.retention <= 0 {
		return nil
	}

	cutoff := time.Now().Add(-m.retention)
	for _, s := range m.reaper.ListSessions(ctx) {
		if !s.Status.Terminal() || !s.CreatedAt.Before(cutoff) {
			continue
		}
		if err := m.reaper.DeleteSession(ctx, s.ID); err != nil {
			slog.WarnContext(ctx, "reaping session", "session", s.ID, "error", err)
			continue
		}
		slog.InfoContext(ctx, "reaped finished session", "session", s.ID)
	}
	return nil
}

// Start blocks until ctx is done, then cancels every live run.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	m.StopAll()
	return nil
}

// countChanged must be called with mu held.
func (m *Manager) countChanged() {
	if m.onRunCount != nil {
		m.onRunCount(len(m.runs))
	}
}

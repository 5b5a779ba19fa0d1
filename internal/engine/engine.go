// Package engine is the inbound surface of the adventure service. Every
// transport (telnet, autonomous agent, future RPC) calls through it; it
// composes the session store, the command interpreter, event publishing,
// and metrics into one façade.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aivta/go-adventure/internal/commands"
	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/messaging"
	"github.com/aivta/go-adventure/internal/metrics"
	"github.com/aivta/go-adventure/internal/session"
	"github.com/aivta/go-adventure/internal/storage"
	"github.com/aivta/go-adventure/internal/world"
)

const (
	gameName    = "Simple Adventure"
	gameVersion = "1.0.0"
	gameDesc    = "A simple text-based adventure game"

	defaultGameType = "adventure"
)

// Runner starts and stops autonomous play loops. The agent manager
// implements it; the engine only needs these two calls.
type Runner interface {
	Launch(sessionID string, maxActions int) error
	Stop(sessionID string)
}

// StatsSource provides play aggregates from the persistence collaborator.
type StatsSource interface {
	Stats(ctx context.Context) (storage.AgentStats, error)
}

// Info describes the loaded game world.
type Info struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	Description    string `json:"description"`
	TotalRooms     int    `json:"total_rooms"`
	TotalItems     int    `json:"total_items"`
	ActiveSessions int    `json:"active_sessions"`
}

// Engine is the game service façade.
type Engine struct {
	catalog *world.Catalog
	store   *session.Store
	interp  *commands.Interpreter

	events   *messaging.EventPublisher
	metrics  *metrics.Metrics
	stats    StatsSource
	savesDir string
	runner   Runner
}

// New builds the engine over a catalog, session store, and interpreter.
func New(catalog *world.Catalog, store *session.Store, interp *commands.Interpreter, opts ...Opt) *Engine {
	e := &Engine{
		catalog: catalog,
		store:   store,
		interp:  interp,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SetRunner attaches the autonomous play runner. Called once during
// wiring; the runner needs the engine to execute commands, so it can't be
// a construction-time option.
func (e *Engine) SetRunner(r Runner) {
	e.runner = r
}

// CreateSession starts a new playthrough.
func (e *Engine) CreateSession(ctx context.Context, gameType string) (*game.Session, error) {
	if gameType == "" {
		gameType = defaultGameType
	}

	sess, err := e.store.Create(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	e.events.SessionCreated(sess.ID, sess.GameType)
	if e.metrics != nil {
		e.metrics.SessionsCreated.Inc()
		e.metrics.ActiveSessions.Set(float64(e.store.ActiveCount()))
	}

	return sess, nil
}

// GameState returns the current snapshot for a session. Calling it twice
// without an intervening command returns identical snapshots.
func (e *Engine) GameState(ctx context.Context, id string) (game.StateSnapshot, error) {
	sess, err := e.store.Get(ctx, id)
	if err != nil {
		return game.StateSnapshot{}, err
	}
	return game.NewSnapshot(e.catalog, sess), nil
}

// ExecuteCommand runs one command against a session. The interpreter call
// and the path-log append happen inside a single store mutation, so manual
// and autonomous play share one linearized history.
func (e *Engine) ExecuteCommand(ctx context.Context, id, raw string) (*commands.Result, error) {
	var result *commands.Result

	_, err := e.store.Update(ctx, id, func(sess *game.Session) error {
		res, execErr := e.interp.Execute(sess, raw)
		result = res
		if execErr != nil {
			return execErr
		}

		sess.Path = append(sess.Path, game.PathStep{
			Command:   strings.TrimSpace(raw),
			Narration: res.Narration,
			Location:  res.State.Location,
			Success:   res.Success,
			Score:     res.State.Score,
			Moves:     res.State.Moves,
		})
		return nil
	})
	if err != nil {
		// Empty input is a narration branch, not a failure: the caller
		// still gets the "Please enter a command." result, and nothing
		// was mutated or logged.
		if errors.Is(err, commands.ErrEmptyCommand) {
			return result, err
		}
		return nil, err
	}

	e.events.CommandExecuted(id, strings.TrimSpace(raw), result.Success, result.State.Score, result.State.Moves)
	if e.metrics != nil {
		outcome := "failed"
		if result.Success {
			outcome = "ok"
		}
		e.metrics.CommandsTotal.WithLabelValues(outcome).Inc()
	}

	if result.State.Victory {
		e.events.SessionWon(id, result.State.Score, result.State.Moves)
		if e.metrics != nil {
			e.metrics.GamesWon.Inc()
			e.metrics.ActiveSessions.Set(float64(e.store.ActiveCount()))
		}
	}

	return result, nil
}

// ValidCommands returns the currently sensible commands for a session.
func (e *Engine) ValidCommands(ctx context.Context, id string) ([]string, error) {
	sess, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.interp.ValidCommands(sess), nil
}

// PathHistory returns the ordered command log for a session.
func (e *Engine) PathHistory(ctx context.Context, id string) ([]game.PathStep, error) {
	sess, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Path, nil
}

// StartAutonomousPlay launches the autonomous play loop for a session.
func (e *Engine) StartAutonomousPlay(ctx context.Context, id string, maxActions int) error {
	if e.runner == nil {
		return fmt.Errorf("autonomous play is not configured")
	}

	// Verify the session exists before handing it to the runner.
	if _, err := e.store.Get(ctx, id); err != nil {
		return err
	}

	return e.runner.Launch(id, maxActions)
}

// DeleteSession stops any autonomous play for the session, then removes it.
func (e *Engine) DeleteSession(ctx context.Context, id string) error {
	if e.runner != nil {
		e.runner.Stop(id)
	}

	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	e.events.SessionDeleted(id)
	if e.metrics != nil {
		e.metrics.SessionsDeleted.Inc()
		e.metrics.ActiveSessions.Set(float64(e.store.ActiveCount()))
	}

	return nil
}

// ListSessions returns summaries of all live sessions.
func (e *Engine) ListSessions(ctx context.Context) []game.Summary {
	return e.store.List(ctx)
}

// GameInfo describes the loaded world.
func (e *Engine) GameInfo() Info {
	return Info{
		Name:           gameName,
		Version:        gameVersion,
		Description:    gameDesc,
		TotalRooms:     e.catalog.RoomCount(),
		TotalItems:     e.catalog.ItemCount(),
		ActiveSessions: e.store.ActiveCount(),
	}
}

// Stats returns play aggregates from the persistence collaborator.
func (e *Engine) Stats(ctx context.Context) (storage.AgentStats, error) {
	if e.stats == nil {
		return storage.AgentStats{}, fmt.Errorf("stats source is not configured")
	}
	return e.stats.Stats(ctx)
}

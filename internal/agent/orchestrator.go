// Package agent drives autonomous play: a loop that asks a reasoning
// provider for the next command, applies it through the engine, and stops
// on a terminal status, an exhausted action budget, or cancellation.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aivta/go-adventure/internal/commands"
	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/reasoning"
)

// historyWindow bounds how much of the path log is offered to the adviser.
const historyWindow = 10

// Game is the slice of the engine the play loop needs.
type Game interface {
	GameState(ctx context.Context, id string) (game.StateSnapshot, error)
	PathHistory(ctx context.Context, id string) ([]game.PathStep, error)
	ExecuteCommand(ctx context.Context, id, raw string) (*commands.Result, error)
}

// Adviser proposes the next command. It never fails; total provider
// failure yields a safe default.
type Adviser interface {
	Propose(ctx context.Context, state string, history []string) reasoning.Advice
}

// StopReason says why a run ended.
type StopReason string

const (
	StopCompleted StopReason = "completed"
	StopBudget    StopReason = "budget"
	StopCanceled  StopReason = "canceled"
	StopError     StopReason = "error"
)

// RunReport summarizes one autonomous run.
type RunReport struct {
	SessionID string      `json:"session_id"`
	Actions   int         `json:"actions"`
	Status    game.Status `json:"status"`
	Stopped   StopReason  `json:"stopped"`
}

// Orchestrator runs the autonomous play loop for one session at a time.
// It is stateless between runs; the Manager owns run lifecycle.
type Orchestrator struct {
	game    Game
	adviser Adviser

	pacing   time.Duration
	onAction func()
}

// NewOrchestrator builds a play loop over the game surface and an adviser.
func NewOrchestrator(g Game, adviser Adviser, opts ...OrchestratorOpt) *Orchestrator {
	o := &Orchestrator{
		game:    g,
		adviser: adviser,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run plays the session until it leaves active status, maxActions commands
// have been issued, or ctx is canceled. Provider failures never stop the
// loop; structural errors (missing session, inactive session) do, and are
// returned. Cancellation is honored between actions, never mid-mutation.
func (o *Orchestrator) Run(ctx context.Context, sessionID string, maxActions int) (*RunReport, error) {
	report := &RunReport{SessionID: sessionID}

	slog.InfoContext(ctx, "starting autonomous play", "session", sessionID, "max_actions", maxActions)

	for report.Actions < maxActions {
		if err := ctx.Err(); err != nil {
			report.Stopped = StopCanceled
			return report, nil
		}

		snap, err := o.game.GameState(ctx, sessionID)
		if err != nil {
			report.Stopped = StopError
			return report, fmt.Errorf("fetching session %s: %w", sessionID, err)
		}
		report.Status = statusOf(snap)
		if snap.GameOver || snap.Victory {
			report.Stopped = StopCompleted
			return report, nil
		}

		history, err := o.recentCommands(ctx, sessionID)
		if err != nil {
			report.Stopped = StopError
			return report, err
		}

		advice := o.adviser.Propose(ctx, stateText(snap), history)

		res, err := o.game.ExecuteCommand(ctx, sessionID, advice.Action)
		if err != nil && !errors.Is(err, commands.ErrEmptyCommand) {
			report.Stopped = StopError
			return report, fmt.Errorf("executing %q on session %s: %w", advice.Action, sessionID, err)
		}

		report.Actions++
		if o.onAction != nil {
			o.onAction()
		}

		if res != nil {
			slog.InfoContext(ctx, "autonomous action", "session", sessionID,
				"action", report.Actions, "command", advice.Action, "success", res.Success)
			report.Status = statusOf(res.State)
			if res.State.GameOver || res.State.Victory {
				report.Stopped = StopCompleted
				return report, nil
			}
		}

		// Pacing keeps one loop from starving others sharing the same
		// provider quota.
		if o.pacing > 0 {
			select {
			case <-ctx.Done():
				report.Stopped = StopCanceled
				return report, nil
			case <-time.After(o.pacing):
			}
		}
	}

	report.Stopped = StopBudget
	return report, nil
}

// recentCommands returns the last commands from the session's path log.
func (o *Orchestrator) recentCommands(ctx context.Context, sessionID string) ([]string, error) {
	path, err := o.game.PathHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetching history for %s: %w", sessionID, err)
	}

	if len(path) > historyWindow {
		path = path[len(path)-historyWindow:]
	}

	cmds := make([]string, 0, len(path))
	for _, step := range path {
		cmds = append(cmds, step.Command)
	}
	return cmds, nil
}

// stateText renders the snapshot the way the adviser prompt wants it.
func stateText(snap game.StateSnapshot) string {
	return fmt.Sprintf("%s\n%s\nInventory: %v\nScore: %d, Moves: %d",
		snap.Location, snap.Description, snap.Inventory, snap.Score, snap.Moves)
}

func statusOf(snap game.StateSnapshot) game.Status {
	switch {
	case snap.Victory:
		return game.StatusWon
	case snap.GameOver:
		return game.StatusCompleted
	default:
		return game.StatusActive
	}
}

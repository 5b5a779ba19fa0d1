package agent

import "time"

type OrchestratorOpt func(*Orchestrator)

// WithPacing inserts a delay between actions. Zero disables pacing.
func WithPacing(d time.Duration) OrchestratorOpt {
	return func(o *Orchestrator) {
		o.pacing = d
	}
}

// WithActionHook is called after every issued command, successful or not.
func WithActionHook(fn func()) OrchestratorOpt {
	return func(o *Orchestrator) {
		o.onAction = fn
	}
}

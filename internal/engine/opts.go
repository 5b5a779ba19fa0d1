package engine

import (
	"github.com/aivta/go-adventure/internal/messaging"
	"github.com/aivta/go-adventure/internal/metrics"
)

type Opt func(*Engine)

// WithEvents attaches the session event publisher.
func WithEvents(p *messaging.EventPublisher) Opt {
	return func(e *Engine) {
		e.events = p
	}
}

// WithMetrics attaches the Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Opt {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithStats attaches the play-aggregate source.
func WithStats(s StatsSource) Opt {
	return func(e *Engine) {
		e.stats = s
	}
}

// WithSavesDir enables save/load of game snapshot files in dir.
func WithSavesDir(dir string) Opt {
	return func(e *Engine) {
		e.savesDir = dir
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the adventure service.
type Metrics struct {
	registry *prometheus.Registry

	SessionsCreated    prometheus.Counter
	SessionsDeleted    prometheus.Counter
	CommandsTotal      *prometheus.CounterVec
	GamesWon           prometheus.Counter
	AutonomousActions  prometheus.Counter
	ProviderFailures   *prometheus.CounterVec
	PersistenceDegrade prometheus.Counter
	ActiveSessions     prometheus.Gauge
	AutonomousRuns     prometheus.Gauge
}

// New creates and registers the service metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_sessions_created_total",
			Help: "Game sessions created since start.",
		}),
		SessionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_sessions_deleted_total",
			Help: "Game sessions deleted since start.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adventure_commands_total",
			Help: "Commands executed, by outcome.",
		}, []string{"outcome"}),
		GamesWon: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_games_won_total",
			Help: "Sessions that reached the win room.",
		}),
		AutonomousActions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_autonomous_actions_total",
			Help: "Actions taken by autonomous play loops.",
		}),
		ProviderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adventure_provider_failures_total",
			Help: "Reasoning provider failures, by provider.",
		}, []string{"provider"}),
		PersistenceDegrade: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adventure_persistence_degraded_total",
			Help: "Durability writes that failed and were absorbed.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adventure_active_sessions",
			Help: "Sessions currently in active status.",
		}),
		AutonomousRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adventure_autonomous_runs",
			Help: "Autonomous play loops currently running.",
		}),
	}

	m.registry.MustRegister(
		m.SessionsCreated,
		m.SessionsDeleted,
		m.CommandsTotal,
		m.GamesWon,
		m.AutonomousActions,
		m.ProviderFailures,
		m.PersistenceDegrade,
		m.ActiveSessions,
		m.AutonomousRuns,
	)

	return m
}

// Registry exposes the private registry for the HTTP worker.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

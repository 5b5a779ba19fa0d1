package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/aivta/go-adventure/internal/agent"
	"github.com/aivta/go-adventure/internal/commands"
	"github.com/aivta/go-adventure/internal/driver"
	"github.com/aivta/go-adventure/internal/engine"
	"github.com/aivta/go-adventure/internal/listener"
	"github.com/aivta/go-adventure/internal/messaging"
	"github.com/aivta/go-adventure/internal/metrics"
	"github.com/aivta/go-adventure/internal/reasoning"
	"github.com/aivta/go-adventure/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load the world
	catalog, err := cfg.World.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building world catalog: %w", err)
	}

	m := metrics.New()

	// Open session persistence
	backend, err := cfg.Storage.BuildBackend()
	if err != nil {
		return nil, fmt.Errorf("opening session backend: %w", err)
	}

	var persister session.Persister
	if backend != nil {
		persister = backend
	}
	store := session.NewStore(catalog, persister,
		session.WithPersistFailureHook(func() { m.PersistenceDegrade.Inc() }))
	if err := store.Hydrate(context.Background()); err != nil {
		return nil, fmt.Errorf("hydrating sessions: %w", err)
	}

	// Setup the embedded event bus
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	events := messaging.NewEventPublisher(natsServer)

	// Assemble the game engine
	interp := commands.NewInterpreter(catalog, cfg.Scoring.Scoring())
	engOpts := []engine.Opt{
		engine.WithEvents(events),
		engine.WithMetrics(m),
		engine.WithSavesDir(cfg.Storage.SavesDir),
	}
	if backend != nil {
		engOpts = append(engOpts, engine.WithStats(backend))
	}
	eng := engine.New(catalog, store, interp, engOpts...)

	// Build the reasoning adviser and the autonomous play manager
	adviser, err := cfg.Reasoner.BuildAdviser(
		reasoning.WithFallbackHook(func(provider string) {
			m.ProviderFailures.WithLabelValues(provider).Inc()
		}))
	if err != nil {
		return nil, fmt.Errorf("building adviser: %w", err)
	}

	orch := agent.NewOrchestrator(eng, adviser,
		agent.WithPacing(cfg.Autoplay.pacing()),
		agent.WithActionHook(func() { m.AutonomousActions.Inc() }))

	managerOpts := []agent.ManagerOpt{
		agent.WithRunCountHook(func(n int) { m.AutonomousRuns.Set(float64(n)) }),
	}
	if cfg.Autoplay.DefaultMaxActions > 0 {
		managerOpts = append(managerOpts, agent.WithDefaultMaxActions(cfg.Autoplay.DefaultMaxActions))
	}
	if cfg.Autoplay.retention() > 0 {
		managerOpts = append(managerOpts, agent.WithReaper(eng, cfg.Autoplay.retention()))
	}
	manager := agent.NewManager(orch, managerOpts...)
	eng.SetRunner(manager)

	// Create Listeners
	cm := listener.NewConnectionManager(eng)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Setup the housekeeping driver
	var drvOpts []driver.DriverOpt
	if d := cfg.tickLength(); d > 0 {
		drvOpts = append(drvOpts, driver.WithTickLength(d))
	}
	drv := driver.NewDriver([]driver.Manager{
		manager,
	}, drvOpts...)

	// Create a worker list
	workers := service.WorkerList{
		"driver":    drv,
		"listeners": &listeners,
		"autoplay":  manager,
		"nats":      natsServer,
	}
	if cfg.Metrics.Port != 0 {
		workers["metrics"] = metrics.NewWorker(m, cfg.Metrics.Port)
	}

	return workers, nil
}

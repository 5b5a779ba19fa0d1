package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/aivta/go-adventure/internal/commands"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	World        WorldConfig      `json:"world"`
	Storage      StorageConfig    `json:"storage"`
	Scoring      *ScoringConfig   `json:"scoring,omitempty"`
	Reasoner     ReasonerConfig   `json:"reasoner"`
	Autoplay     AutoplayConfig   `json:"autoplay"`
	Nats         NatsConfig       `json:"nats"`
	Metrics      MetricsConfig    `json:"metrics"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	for i, l := range c.Listeners {
		err := l.Validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.World.Validate())
	el.Add(c.Storage.Validate())
	el.Add(c.Scoring.Validate())
	el.Add(c.Reasoner.Validate())
	el.Add(c.Autoplay.Validate())
	el.Add(c.Nats.Validate())

	return el.Err()
}

// tickLength falls back to the driver default when unset. Validate has
// already rejected unparseable values.
func (c *Config) tickLength() time.Duration {
	if c.TickInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}

type ScoringConfig struct {
	ExplorePoints int `json:"explore_points"`
	PickupPoints  int `json:"pickup_points"`
	WinPoints     int `json:"win_points"`
}

func (c *ScoringConfig) Validate() error {
	if c == nil {
		return nil
	}
	return c.Scoring().Validate()
}

func (c *ScoringConfig) Scoring() commands.Scoring {
	if c == nil {
		return commands.DefaultScoring()
	}
	return commands.Scoring{
		Explore: c.ExplorePoints,
		Pickup:  c.PickupPoints,
		Win:     c.WinPoints,
	}
}

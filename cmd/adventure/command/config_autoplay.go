package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const defaultPacing = time.Second

type AutoplayConfig struct {
	Pacing            string `json:"pacing,omitempty"`
	DefaultMaxActions int    `json:"default_max_actions,omitempty"`
	Retention         string `json:"retention,omitempty"`
}

func (c *AutoplayConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Pacing != "" {
		_, err := time.ParseDuration(c.Pacing)
		if err != nil {
			el.Add(fmt.Errorf("parsing pacing: %w", err))
		}
	}

	if c.DefaultMaxActions < 0 {
		el.Add(fmt.Errorf("default_max_actions must not be negative"))
	}

	if c.Retention != "" {
		_, err := time.ParseDuration(c.Retention)
		if err != nil {
			el.Add(fmt.Errorf("parsing retention: %w", err))
		}
	}

	return el.Err()
}

func (c *AutoplayConfig) pacing() time.Duration {
	if c.Pacing == "" {
		return defaultPacing
	}
	d, _ := time.ParseDuration(c.Pacing)
	return d
}

func (c *AutoplayConfig) retention() time.Duration {
	if c.Retention == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Retention)
	return d
}

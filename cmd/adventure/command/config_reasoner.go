package command

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"

	"github.com/aivta/go-adventure/internal/reasoning"
)

// reasonerSecrets come from the environment, never the config file.
type reasonerSecrets struct {
	OpenAIKey string `env:"OPENAI_API_KEY"`
}

type ProviderConfig struct {
	Type    string `json:"type"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url,omitempty"`
	Host    string `json:"host,omitempty"`
}

func (c *ProviderConfig) Validate() error {
	el := errors.NewErrorList()

	switch c.Type {
	case "openai":
		if c.BaseURL == "" {
			el.Add(fmt.Errorf("base_url is required for openai providers"))
		}
	case "ollama":
		if c.Host == "" {
			el.Add(fmt.Errorf("host is required for ollama providers"))
		}
	default:
		el.Add(fmt.Errorf("unknown provider type: %s", c.Type))
	}

	if c.Model == "" {
		el.Add(fmt.Errorf("model is required"))
	}

	return el.Err()
}

func (c *ProviderConfig) buildProvider(secrets reasonerSecrets) (reasoning.Provider, error) {
	switch c.Type {
	case "openai":
		if secrets.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY must be set for openai providers")
		}
		return reasoning.NewOpenAIProvider(reasoning.OpenAIConfig{
			BaseURL: c.BaseURL,
			APIKey:  secrets.OpenAIKey,
			Model:   c.Model,
		})
	case "ollama":
		return reasoning.NewOllamaProvider(reasoning.OllamaConfig{
			Host:  c.Host,
			Model: c.Model,
		})
	default:
		return nil, fmt.Errorf("unknown provider type: %s", c.Type)
	}
}

type ReasonerConfig struct {
	Primary   ProviderConfig  `json:"primary"`
	Fallback  *ProviderConfig `json:"fallback,omitempty"`
	Timeout   string          `json:"timeout,omitempty"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

func (c *ReasonerConfig) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Primary.Validate())
	if c.Fallback != nil {
		el.Add(c.Fallback.Validate())
	}

	if c.Timeout != "" {
		_, err := time.ParseDuration(c.Timeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing timeout: %w", err))
		}
	}

	if c.MaxTokens < 0 {
		el.Add(fmt.Errorf("max_tokens must not be negative"))
	}

	return el.Err()
}

func (c *ReasonerConfig) BuildAdviser(opts ...reasoning.AdviserOpt) (*reasoning.Adviser, error) {
	secrets := reasonerSecrets{}
	if err := env.Parse(&secrets); err != nil {
		return nil, fmt.Errorf("reading provider secrets: %w", err)
	}

	primary, err := c.Primary.buildProvider(secrets)
	if err != nil {
		return nil, fmt.Errorf("building primary provider: %w", err)
	}

	var fallback reasoning.Provider
	if c.Fallback != nil {
		fallback, err = c.Fallback.buildProvider(secrets)
		if err != nil {
			return nil, fmt.Errorf("building fallback provider: %w", err)
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parsing timeout: %w", err)
		}
		opts = append(opts, reasoning.WithTimeout(d))
	}
	if c.MaxTokens > 0 {
		opts = append(opts, reasoning.WithMaxTokens(c.MaxTokens))
	}

	return reasoning.NewAdviser(primary, fallback, opts...), nil
}

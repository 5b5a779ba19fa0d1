package reasoning

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds each provider call so a hung provider can
	// never stall the play loop.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxTokens is the response-size budget for proposals.
	DefaultMaxTokens = 300

	// defaultAction is what the adviser falls back to when every provider
	// fails. The play loop must always have something to try next.
	defaultAction = "look"
)

// Advice is a proposed next command with the provider's rationale.
type Advice struct {
	Analysis  string `json:"analysis"`
	Action    string `json:"suggested_action"`
	Reasoning string `json:"reasoning"`
}

// Adviser asks a primary provider, then a fallback, for the next command.
// It never returns an error: provider failure is absorbed here and the
// caller gets a safe default instead.
type Adviser struct {
	primary  Provider
	fallback Provider

	timeout    time.Duration
	maxTokens  int
	onFallback func(provider string)
}

// NewAdviser wraps a primary and an optional fallback provider.
func NewAdviser(primary, fallback Provider, opts ...AdviserOpt) *Adviser {
	a := &Adviser{
		primary:   primary,
		fallback:  fallback,
		timeout:   DefaultTimeout,
		maxTokens: DefaultMaxTokens,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Propose asks for the next command given the current state narration and
// recent command history. Provider errors, timeouts, and empty replies all
// fall through to the next provider; total failure yields the default
// action.
func (a *Adviser) Propose(ctx context.Context, state string, history []string) Advice {
	prompt, err := buildPrompt(state, history)
	if err != nil {
		slog.WarnContext(ctx, "building proposal prompt", "error", err)
		return Advice{
			Analysis:  "Unable to analyze game state",
			Action:    defaultAction,
			Reasoning: err.Error(),
		}
	}

	req := Request{
		Prompt:    prompt,
		System:    analysisContext,
		MaxTokens: a.maxTokens,
	}

	for _, p := range a.providers() {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		text, err := p.Generate(callCtx, req)
		cancel()

		if err != nil || strings.TrimSpace(text) == "" {
			slog.WarnContext(ctx, "reasoning provider failed", "provider", p.Name(), "error", err)
			if a.onFallback != nil {
				a.onFallback(p.Name())
			}
			continue
		}

		return parseAdvice(text)
	}

	return Advice{
		Analysis:  "Unable to analyze game state",
		Action:    defaultAction,
		Reasoning: "all reasoning providers failed",
	}
}

func (a *Adviser) providers() []Provider {
	ps := make([]Provider, 0, 2)
	if a.primary != nil {
		ps = append(ps, a.primary)
	}
	if a.fallback != nil {
		ps = append(ps, a.fallback)
	}
	return ps
}

// parseAdvice extracts structured advice from a provider reply. Replies
// are ideally the JSON object the system context asks for, possibly inside
// a markdown fence; anything else is treated as free text with the first
// line as the command.
func parseAdvice(text string) Advice {
	cleaned := stripFences(text)

	var advice Advice
	if err := json.Unmarshal([]byte(cleaned), &advice); err == nil {
		if advice.Action == "" {
			advice.Action = defaultAction
		}
		return advice
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	action := defaultAction
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			action = trimmed
			break
		}
	}

	return Advice{
		Analysis:  "Game state analyzed",
		Action:    action,
		Reasoning: text,
	}
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

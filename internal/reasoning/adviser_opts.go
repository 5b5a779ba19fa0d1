package reasoning

import "time"

type AdviserOpt func(*Adviser)

// WithTimeout sets the per-provider call timeout.
func WithTimeout(d time.Duration) AdviserOpt {
	return func(a *Adviser) {
		a.timeout = d
	}
}

// WithMaxTokens sets the response-size budget passed to providers.
func WithMaxTokens(n int) AdviserOpt {
	return func(a *Adviser) {
		a.maxTokens = n
	}
}

// WithFallbackHook registers a callback invoked when a provider fails and
// the adviser moves on. Used to feed the provider-failure metric.
func WithFallbackHook(fn func(provider string)) AdviserOpt {
	return func(a *Adviser) {
		a.onFallback = fn
	}
}

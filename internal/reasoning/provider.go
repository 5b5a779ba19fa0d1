package reasoning

import "context"

// Request is one generation call to a reasoning provider.
type Request struct {
	Prompt    string
	System    string
	MaxTokens int
}

// Provider generates free text from a prompt. Implementations wrap one
// concrete reasoning service; failure policy lives a layer up in the
// Adviser.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Package providers abstracts generative-text backends behind a uniform
// interface and implements the ordered fallback chain used by the
// analyze_with_ai tool.
package providers

import (
	"context"
	"errors"
)

// ErrNoProviders is returned by Chain.Complete when nothing is configured.
var ErrNoProviders = errors.New("no generative providers configured")

// Provider is one interchangeable generative-text backend. Implementations
// own their credentials and HTTP client and are immutable after
// construction.
type Provider interface {
	// Name is the human-readable label used in result texts, e.g.
	// "OpenAI gpt-4o-mini".
	Name() string
	// Complete sends the prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Close releases the provider's resources.
	Close() error
}

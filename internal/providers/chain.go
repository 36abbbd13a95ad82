package providers

import (
	"context"
	"fmt"
	"log/slog"
)

// Completion is a successful chain result, labeled with the provider that
// produced it and whether it came from a fallback attempt.
type Completion struct {
	Provider string
	Fallback bool
	Text     string
}

// Chain tries providers in configuration order: first success wins, a
// non-final provider's fault is swallowed into "try next". Precedence is
// fixed at construction and never changes. At most two attempts are ever
// made per call: the primary and one fallback.
type Chain struct {
	providers []Provider
	log       *slog.Logger
}

// NewChain builds a chain from the configured providers, skipping nils so
// callers can pass optional providers unconditionally.
func NewChain(log *slog.Logger, ps ...Provider) *Chain {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Chain{log: log}
	for _, p := range ps {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

// Empty reports whether no provider is configured.
func (c *Chain) Empty() bool { return len(c.providers) == 0 }

// Names returns the provider labels in precedence order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Complete runs the fallback state machine. With zero providers it returns
// ErrNoProviders without any network attempt. Otherwise the primary is
// tried once; on failure the single fallback (if any) is tried once. The
// final error is the primary's alone when no fallback exists, or a combined
// report citing both.
func (c *Chain) Complete(ctx context.Context, prompt string) (Completion, error) {
	if c.Empty() {
		return Completion{}, ErrNoProviders
	}

	primary := c.providers[0]
	text, err := primary.Complete(ctx, prompt)
	if err == nil {
		c.log.Info("analysis completed", "provider", primary.Name())
		return Completion{Provider: primary.Name(), Text: text}, nil
	}
	c.log.Warn("primary provider failed", "provider", primary.Name(), "err", err)

	if len(c.providers) < 2 {
		return Completion{}, fmt.Errorf("%s: %w", primary.Name(), err)
	}

	fallback := c.providers[1]
	text, ferr := fallback.Complete(ctx, prompt)
	if ferr == nil {
		c.log.Info("analysis completed via fallback", "provider", fallback.Name())
		return Completion{Provider: fallback.Name(), Fallback: true, Text: text}, nil
	}
	c.log.Error("fallback provider failed", "provider", fallback.Name(), "err", ferr)

	return Completion{}, fmt.Errorf("both providers failed:\n%s: %v\n%s: %v",
		primary.Name(), err, fallback.Name(), ferr)
}

// Close closes every provider in the chain.
func (c *Chain) Close() error {
	var firstErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

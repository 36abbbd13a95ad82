package analyze_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vporto/almanac/internal/providers"
	"github.com/vporto/almanac/internal/tools/analyze"
	"github.com/vporto/almanac/pkg/domain"
)

type stubProvider struct {
	name       string
	text       string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.text, s.err
}

func (s *stubProvider) Close() error { return nil }

func TestAnalyze_NoProviderConfigured(t *testing.T) {
	h := analyze.NewHandler(providers.NewChain(nil))

	res, err := h(context.Background(), map[string]any{"prompt": "why is the sky blue", "context": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotConfigured, res.Outcome)
	assert.Contains(t, res.Text, "no AI provider configured")
}

func TestAnalyze_MissingPrompt(t *testing.T) {
	p := &stubProvider{name: "OpenAI test"}
	h := analyze.NewHandler(providers.NewChain(nil, p))

	res, err := h(context.Background(), map[string]any{"context": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInvalidInput, res.Outcome)
	assert.Contains(t, res.Text, "'prompt' is missing")
	assert.Zero(t, p.calls)
}

func TestAnalyze_ContextPrepended(t *testing.T) {
	p := &stubProvider{name: "OpenAI test", text: "42"}
	h := analyze.NewHandler(providers.NewChain(nil, p))

	res, err := h(context.Background(), map[string]any{
		"prompt":  "what is the answer",
		"context": "deep thought output",
	})

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeOK, res.Outcome)
	assert.Equal(t, "Context: deep thought output\n\nQuestion: what is the answer", p.lastPrompt)
}

func TestAnalyze_PrimarySuccessLabeled(t *testing.T) {
	p := &stubProvider{name: "OpenAI gpt-test", text: "a thorough analysis"}
	h := analyze.NewHandler(providers.NewChain(nil, p))

	res, err := h(context.Background(), map[string]any{"prompt": "analyze", "context": ""})

	require.NoError(t, err)
	assert.Contains(t, res.Text, "**AI Analysis (OpenAI gpt-test)**")
	assert.Contains(t, res.Text, "a thorough analysis")
	assert.Contains(t, res.Text, "verify critical information")
	assert.NotContains(t, res.Text, "fallback")
}

func TestAnalyze_FallbackLabeled(t *testing.T) {
	primary := &stubProvider{name: "OpenAI gpt-test", err: errors.New("down")}
	fallback := &stubProvider{name: "Anthropic claude-test", text: "rescued analysis"}
	h := analyze.NewHandler(providers.NewChain(nil, primary, fallback))

	res, err := h(context.Background(), map[string]any{"prompt": "analyze", "context": ""})

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeOK, res.Outcome)
	assert.Contains(t, res.Text, "**AI Analysis (Anthropic claude-test - fallback)**")
	assert.Contains(t, res.Text, "rescued analysis")
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestAnalyze_PrimaryOnlyFault(t *testing.T) {
	primary := &stubProvider{name: "OpenAI gpt-test", err: errors.New("quota exceeded")}
	h := analyze.NewHandler(providers.NewChain(nil, primary))

	res, err := h(context.Background(), map[string]any{"prompt": "analyze", "context": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRemoteFault, res.Outcome)
	assert.Contains(t, res.Text, "Error analyzing with AI")
	assert.Contains(t, res.Text, "quota exceeded")
	assert.NotContains(t, res.Text, "fallback")
}

// Package analyze implements the analyze_with_ai tool on top of the
// provider fallback chain.
package analyze

import (
	"context"
	"errors"
	"fmt"

	"github.com/vporto/almanac/internal/providers"
	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/internal/tools"
	"github.com/vporto/almanac/pkg/domain"
)

const disclaimer = "Note: AI-generated response - verify critical information."

// Descriptor returns the analyze_with_ai tool metadata.
func Descriptor() domain.Tool {
	return domain.Tool{
		Name: "analyze_with_ai",
		Description: "Use generative AI (primary provider with automatic " +
			"fallback) to analyze data, answer complex questions or make " +
			"recommendations.",
		Params: []domain.Param{
			{Name: "prompt", Description: "Question or analysis prompt", Required: true},
			{Name: "context", Description: "Additional context or data for the analysis (optional)", Default: ""},
		},
	}
}

type params struct {
	Prompt  string `mapstructure:"prompt"`
	Context string `mapstructure:"context"`
}

// NewHandler builds the analyze_with_ai handler around the chain.
func NewHandler(chain *providers.Chain) registry.Handler {
	return func(ctx context.Context, args map[string]any) (domain.Result, error) {
		var p params
		if err := tools.DecodeArgs(args, &p); err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid arguments for analyze_with_ai: %v", err), nil
		}
		if p.Prompt == "" {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: required argument 'prompt' is missing"), nil
		}

		prompt := p.Prompt
		if p.Context != "" {
			prompt = fmt.Sprintf("Context: %s\n\nQuestion: %s", p.Context, p.Prompt)
		}

		completion, err := chain.Complete(ctx, prompt)
		if errors.Is(err, providers.ErrNoProviders) {
			return domain.Failf(domain.OutcomeNotConfigured,
				"Error: no AI provider configured. Set OPENAI_API_KEY or ANTHROPIC_API_KEY."), nil
		}
		if err != nil {
			return domain.Failf(domain.OutcomeRemoteFault, "Error analyzing with AI: %v", err), nil
		}

		label := completion.Provider
		if completion.Fallback {
			label += " - fallback"
		}
		return domain.OK(fmt.Sprintf("**AI Analysis (%s)**\n\n%s\n\n---\n%s",
			label, completion.Text, disclaimer)), nil
	}
}

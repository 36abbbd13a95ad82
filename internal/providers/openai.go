package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const analysisSystemPrompt = "You are an assistant specializing in data analysis, " +
	"weather, geography and travel recommendations. Provide clear, concise and " +
	"useful answers."

// OpenAI is the primary generative provider.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates the provider. The timeout bounds each completion call
// through the underlying HTTP client.
func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string { return "OpenAI " + o.model }

// Complete implements Provider.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Close implements Provider. The OpenAI client holds no long-lived
// connections beyond the transport's idle pool.
func (o *OpenAI) Close() error { return nil }

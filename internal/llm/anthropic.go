package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const anthropicMaxTokens = 1024

// AnthropicGenerator talks to the Claude Messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicGenerator creates a generator. An empty baseURL uses the public API.
func NewAnthropicGenerator(apiKey, model, baseURL string) *AnthropicGenerator {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &AnthropicGenerator{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

// Generate returns the first text block of the reply.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0)
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(g.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(prompt)},
			},
		},
		MaxTokens:   anthropicMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}

	for _, c := range resp.Content {
		if c.Text != nil {
			return *c.Text, nil
		}
	}
	return "", fmt.Errorf("no response content")
}

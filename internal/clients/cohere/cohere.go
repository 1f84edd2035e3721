package cohere

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// FallbackText is returned when the model answered but produced no usable
// text segment. Callers must compare against it; it is not an error.
const FallbackText = "Failed to generate content"

// CohereClient talks to Cohere's OpenAI-compatible chat endpoint.
type CohereClient struct {
	client *openai.Client
	model  string
}

func NewCohereClient(apiKey, baseURL, model string) (*CohereClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("cohere api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &CohereClient{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// GenerateContent sends the prompt as a single user message and returns
// the first text segment of the reply. No retries, no streaming.
func (c *CohereClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return FallbackText, nil
	}
	return resp.Choices[0].Message.Content, nil
}

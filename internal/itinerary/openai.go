package itinerary

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIBackend implements Backend against the OpenAI chat-completions API.
type OpenAIBackend struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIBackend constructs a backend for the given API key and model.
// An empty model falls back to gpt-4o.
func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	m := openai.ChatModel(model)
	if model == "" {
		m = openai.ChatModelGPT4o
	}
	return &OpenAIBackend{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

// Complete sends prompt as a single user message and returns the first
// choice's text. Temperature 0 keeps plans reproducible for a given prompt.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       b.model,
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("itinerary.OpenAIBackend.Complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("itinerary.OpenAIBackend.Complete: reply has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

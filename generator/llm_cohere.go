package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereLLM implements LLMClient on the Cohere v2 Chat API.
type CohereLLM struct {
	client   *cohereclient.Client
	model    string
	sampling Sampling
}

func NewCohereLLM(apiKey, model string, sampling Sampling) (*CohereLLM, error) {
	if apiKey == "" {
		return nil, errors.New("cohere api key missing; set COHERE_API_KEY")
	}
	if model == "" {
		return nil, errors.New("cohere model is required")
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(&http.Client{Timeout: 5 * time.Minute}),
	)
	return &CohereLLM{client: client, model: model, sampling: sampling}, nil
}

func (c *CohereLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := c.client.V2.Chat(ctx, c.chatRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Message == nil {
		return "", errors.New("cohere chat returned empty response")
	}

	var b strings.Builder
	for _, item := range resp.Message.Content {
		if item != nil && item.Text != nil {
			b.WriteString(item.Text.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("cohere chat returned no text content")
	}
	return b.String(), nil
}

// chatRequest folds the system text into the single user turn.
func (c *CohereLLM) chatRequest(prompt Prompt) *cohere.V2ChatRequest {
	text := prompt.User
	if prompt.System != "" {
		text = prompt.System + "\n\n" + prompt.User
	}

	temperature := c.sampling.Temperature
	maxTokens := c.sampling.MaxTokens
	return &cohere.V2ChatRequest{
		Model: c.model,
		Messages: cohere.ChatMessages{
			{
				Role: "user",
				User: &cohere.UserMessageV2{Content: &cohere.UserMessageV2Content{String: text}},
			},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}
}

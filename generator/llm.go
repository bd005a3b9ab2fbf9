package generator

import (
	"context"
	"errors"
	"fmt"

	"newscast/config"
)

// Prompt is the text sent to the model. System may be empty.
type Prompt struct {
	System string
	User   string
}

// LLMClient sends one prompt and returns the model's raw text.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Sampling parameters shared by every backend.
type Sampling struct {
	Temperature float64
	MaxTokens   int
}

// DefaultSampling matches the parameters the scripts were tuned with.
var DefaultSampling = Sampling{Temperature: config.LLMTemperature, MaxTokens: config.LLMMaxTokens}

// NewLLMFromConfig builds the backend named by cfg.Provider.
func NewLLMFromConfig(cfg *config.LLMConfig) (LLMClient, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAILLM(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, DefaultSampling)
	case "cohere":
		return NewCohereLLM(cfg.CohereKey, cfg.CohereModel, DefaultSampling)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

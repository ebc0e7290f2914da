package generator

import (
	"context"
	"fmt"
	"time"
)

// LLMClient abstracts the chat model so providers can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	// Ping checks that the model endpoint is reachable and serving.
	Ping(ctx context.Context) error
}

// LLMSettings is the provider-neutral configuration handed to NewLLM.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// NewLLM builds the client for the configured provider.
func NewLLM(cfg LLMSettings) (LLMClient, error) {
	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaLLM(&cfg)
	case "openai":
		return NewOpenAILLMFromConfig(&cfg)
	case "mock":
		return MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

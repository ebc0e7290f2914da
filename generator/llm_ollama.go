package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	olla "github.com/ollama/ollama/api"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "granite3.3:2b"
)

// OllamaLLM talks to a locally hosted Ollama server through its chat endpoint.
type OllamaLLM struct {
	client *olla.Client
	model  string
}

func NewOllamaLLM(cfg *LLMSettings) (*OllamaLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultOllamaURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	hc := &http.Client{Timeout: timeout}
	return &OllamaLLM{client: olla.NewClient(parsed, hc), model: model}, nil
}

func (o *OllamaLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	msgs := []olla.Message{{Role: "system", Content: prompt.System}}
	for _, h := range prompt.History {
		role := h.Role
		if role == "" {
			role = "user"
		}
		msgs = append(msgs, olla.Message{Role: role, Content: h.Content})
	}
	msgs = append(msgs, olla.Message{Role: "user", Content: prompt.User})

	opts := map[string]any{}
	if prompt.MaxTokens > 0 {
		opts["num_predict"] = prompt.MaxTokens
	}
	if prompt.Temperature > 0 {
		opts["temperature"] = prompt.Temperature
	}

	stream := false
	var sb strings.Builder
	err := o.client.Chat(ctx, &olla.ChatRequest{
		Model:    o.model,
		Messages: msgs,
		Stream:   &stream,
		Options:  opts,
	}, func(resp olla.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return sb.String(), nil
}

// Ping confirms the server is up and the model has been pulled.
func (o *OllamaLLM) Ping(ctx context.Context) error {
	if err := o.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("cannot reach ollama: %w", err)
	}
	if _, err := o.client.Show(ctx, &olla.ShowRequest{Model: o.model}); err != nil {
		return fmt.Errorf("ollama model %s unavailable: %w", o.model, err)
	}
	return nil
}

package generator

import (
	"context"
	"strings"
)

// MockLLM is a local stand-in that echoes the request instead of calling a model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("**Draft response** (mock model)\n\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n")
	return sb.String(), nil
}

func (m MockLLM) Ping(context.Context) error { return nil }

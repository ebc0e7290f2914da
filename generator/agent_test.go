package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubLLM struct {
	pingErr     error
	completeErr error
	reply       string
	pings       int
	last        Prompt
}

func (s *stubLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.last = p
	if s.completeErr != nil {
		return "", s.completeErr
	}
	return s.reply, nil
}

func (s *stubLLM) Ping(context.Context) error {
	s.pings++
	return s.pingErr
}

func TestNewAgentRequiresClient(t *testing.T) {
	if _, err := NewAgent(nil, "m", nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestAgentRespond(t *testing.T) {
	llm := &stubLLM{reply: "  Assistant: Hello there  "}
	a, err := NewAgent(llm, "granite", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := a.Respond(context.Background(), "compose", Prompt{User: "x"})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got != "Hello there" {
		t.Errorf("Respond = %q", got)
	}
	if llm.last.User != "x" {
		t.Errorf("prompt not forwarded: %+v", llm.last)
	}
}

func TestAgentDegradedWhenLoadFails(t *testing.T) {
	llm := &stubLLM{pingErr: errors.New("connection refused")}
	a, _ := NewAgent(llm, "granite", nil)

	if err := a.Load(context.Background()); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("Load err = %v, want ErrModelUnavailable", err)
	}
	if a.Available() {
		t.Fatal("agent should be unavailable")
	}

	got, err := a.Respond(context.Background(), "compose", Prompt{})
	if !errors.Is(err, ErrModelUnavailable) || got != "Model not available" {
		t.Errorf("Respond = %q, %v", got, err)
	}

	llm.pingErr = nil
	if _, err := a.Respond(context.Background(), "compose", Prompt{}); err != nil {
		t.Errorf("expected recovery after model came up, got %v", err)
	}
	if !a.Available() {
		t.Error("agent should be available after successful retry")
	}
	if llm.pings != 3 {
		t.Errorf("pings = %d, want 3", llm.pings)
	}
}

func TestAgentGenerationFailureBecomesText(t *testing.T) {
	llm := &stubLLM{completeErr: errors.New("out of memory")}
	a, _ := NewAgent(llm, "granite", nil)
	got, err := a.Respond(context.Background(), "analyze", Prompt{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got != "Error generating response: out of memory" {
		t.Errorf("Respond text = %q", got)
	}
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"  plain  ":               "plain",
		"assistant: hi":           "hi",
		"<|assistant|>\nhi there": "hi there",
		"The assistant: said":     "The assistant: said",
	}
	for in, want := range tests {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewLLM(t *testing.T) {
	if _, err := NewLLM(LLMSettings{Provider: "bogus"}); err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("unexpected err %v", err)
	}
	if _, err := NewLLM(LLMSettings{Provider: "openai", Model: "gpt-4o-mini"}); err == nil {
		t.Error("openai without key or base url should fail")
	}
	if _, err := NewLLM(LLMSettings{Provider: "openai", Model: "granite", BaseURL: "http://localhost:8000/v1"}); err != nil {
		t.Errorf("local openai-compatible server: %v", err)
	}
	c, err := NewLLM(LLMSettings{Provider: "ollama"})
	if err != nil {
		t.Fatal(err)
	}
	if o := c.(*OllamaLLM); o.model != defaultOllamaModel {
		t.Errorf("default model = %s", o.model)
	}
	if c, _ := NewLLM(LLMSettings{Provider: "mock"}); c == nil {
		t.Error("mock provider missing")
	}
}

package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrModelUnavailable marks the degraded state after a failed model load.
var ErrModelUnavailable = errors.New("model not available")

const unavailableText = "Model not available"

// Agent wraps the model client with its load state.
type Agent struct {
	llm    LLMClient
	model  string
	log    *logrus.Entry
	loaded atomic.Bool
	loadMu sync.Mutex
}

func NewAgent(llm LLMClient, model string, log *logrus.Entry) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Agent{llm: llm, model: model, log: log.WithField("model", model)}, nil
}

// Load checks the model endpoint.
func (a *Agent) Load(ctx context.Context) error {
	a.loadMu.Lock()
	defer a.loadMu.Unlock()
	if a.loaded.Load() {
		return nil
	}
	if err := a.llm.Ping(ctx); err != nil {
		a.log.WithError(err).Warn("model load failed")
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	a.loaded.Store(true)
	a.log.Info("model loaded")
	return nil
}

func (a *Agent) Available() bool { return a.loaded.Load() }

func (a *Agent) Model() string { return a.model }

// EnsureLoaded retries Load when the agent has not come up yet.
func (a *Agent) EnsureLoaded(ctx context.Context) error {
	if a.Available() {
		return nil
	}
	return a.Load(ctx)
}

// Respond runs one completion; on err the text is the failure message.
func (a *Agent) Respond(ctx context.Context, feature string, prompt Prompt) (string, error) {
	if err := a.EnsureLoaded(ctx); err != nil {
		return unavailableText, err
	}
	start := time.Now()
	raw, err := a.llm.Complete(ctx, prompt)
	entry := a.log.WithFields(logrus.Fields{
		"feature":     feature,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("generation failed")
		return fmt.Sprintf("Error generating response: %v", err), err
	}
	entry.Info("generation done")
	return Clean(raw), nil
}

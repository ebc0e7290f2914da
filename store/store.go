// Package store keeps the per-workspace interaction records: composed
// messages, audience profiles and message analyses.
package store

import (
	"context"
	"errors"
	"time"

	"demographic_communication_hub/analyzer"
	"demographic_communication_hub/generator"
)

// ErrProfileNotFound is returned when a named profile is absent.
var ErrProfileNotFound = errors.New("profile not found")

// Conversation is one composer round trip. Records are append-only.
type Conversation struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Original     string    `json:"original"`
	Optimized    string    `json:"optimized"`
	Demographics []string  `json:"demographics"`
	Type         string    `json:"type"`
}

// Profile is a named audience description; saving the same name replaces it.
type Profile struct {
	Name          string                 `json:"name"`
	Demographics  generator.Demographics `json:"demographics"`
	CulturalNotes string                 `json:"cultural_notes"`
	Analysis      string                 `json:"analysis"`
	Created       time.Time              `json:"created"`
}

// AnalysisRecord is what the tone analyzer keeps for each run.
type AnalysisRecord struct {
	ID        string                 `json:"id"`
	Text      string                 `json:"text"`
	Analysis  string                 `json:"analysis"`
	Metrics   analyzer.StyleAnalysis `json:"metrics"`
	Timestamp time.Time              `json:"timestamp"`
}

// Store is implemented by the in-memory and SQLite backends.
type Store interface {
	AppendConversation(ctx context.Context, workspace string, c Conversation) error
	// Conversations returns records oldest first.
	Conversations(ctx context.Context, workspace string) ([]Conversation, error)

	SaveProfile(ctx context.Context, workspace string, p Profile) error
	Profile(ctx context.Context, workspace, name string) (Profile, error)
	// Profiles returns profiles sorted by name.
	Profiles(ctx context.Context, workspace string) ([]Profile, error)

	AppendAnalysis(ctx context.Context, workspace string, a AnalysisRecord) error
	Analyses(ctx context.Context, workspace string) ([]AnalysisRecord, error)

	Ping(ctx context.Context) error
	Close() error
}

// TruncateSnippet keeps the first n runes and marks the cut with "...".
func TruncateSnippet(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

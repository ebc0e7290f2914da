package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"demographic_communication_hub/analyzer"
	"demographic_communication_hub/generator"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLite(filepath.Join(t.TempDir(), "hub.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestConversationsAppendOnly(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i, typ := range []string{"Professional Email", "Marketing Copy"} {
				err := s.AppendConversation(ctx, "ws1", Conversation{
					ID:           typ,
					Timestamp:    base.Add(time.Duration(i) * time.Hour),
					Original:     "draft",
					Optimized:    "better",
					Demographics: []string{"Students"},
					Type:         typ,
				})
				if err != nil {
					t.Fatalf("append: %v", err)
				}
			}
			if err := s.AppendConversation(ctx, "ws2", Conversation{ID: "other", Timestamp: base}); err != nil {
				t.Fatal(err)
			}

			got, err := s.Conversations(ctx, "ws1")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d conversations, want 2", len(got))
			}
			if got[0].Type != "Professional Email" || got[1].Type != "Marketing Copy" {
				t.Errorf("order not preserved: %+v", got)
			}
			if !got[1].Timestamp.Equal(base.Add(time.Hour)) {
				t.Errorf("timestamp = %v", got[1].Timestamp)
			}
			if len(got[0].Demographics) != 1 || got[0].Demographics[0] != "Students" {
				t.Errorf("demographics = %v", got[0].Demographics)
			}
		})
	}
}

func TestProfilesOverwriteByName(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Profile(ctx, "ws", "missing"); !errors.Is(err, ErrProfileNotFound) {
				t.Fatalf("err = %v, want ErrProfileNotFound", err)
			}
			first := Profile{Name: "Tech Startup", Demographics: generator.Demographics{AgeGroup: "18-25", TechSavviness: 9}, Analysis: "v1", Created: time.Now()}
			second := first
			second.Analysis = "v2"
			second.CulturalNotes = "bilingual"
			for _, p := range []Profile{first, second, {Name: "Alumni", Created: time.Now()}} {
				if err := s.SaveProfile(ctx, "ws", p); err != nil {
					t.Fatalf("save: %v", err)
				}
			}

			p, err := s.Profile(ctx, "ws", "Tech Startup")
			if err != nil {
				t.Fatal(err)
			}
			if p.Analysis != "v2" || p.CulturalNotes != "bilingual" || p.Demographics.TechSavviness != 9 {
				t.Errorf("profile not overwritten: %+v", p)
			}

			all, err := s.Profiles(ctx, "ws")
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != 2 || all[0].Name != "Alumni" || all[1].Name != "Tech Startup" {
				t.Errorf("profiles = %+v", all)
			}

			if err := s.SaveProfile(ctx, "ws", Profile{}); err == nil {
				t.Error("expected error for unnamed profile")
			}
		})
	}
}

func TestAnalysesRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec := AnalysisRecord{
				ID:        "a1",
				Text:      "hello",
				Analysis:  "friendly",
				Metrics:   analyzer.AnalyzeStyle("Hey, great job."),
				Timestamp: time.Now(),
			}
			if err := s.AppendAnalysis(ctx, "ws", rec); err != nil {
				t.Fatal(err)
			}
			got, err := s.Analyses(ctx, "ws")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0].Metrics.Formality != analyzer.Informal || got[0].Metrics.Tone != analyzer.Positive {
				t.Errorf("analyses = %+v", got)
			}
			if err := s.Ping(ctx); err != nil {
				t.Errorf("ping: %v", err)
			}
		})
	}
}

func TestTruncateSnippet(t *testing.T) {
	if got := TruncateSnippet("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateSnippet("abcdefghij", 10); got != "abcdefghij" {
		t.Errorf("exact length should not be cut: %q", got)
	}
	if got := TruncateSnippet("abcdefghijk", 10); got != "abcdefghij..." {
		t.Errorf("got %q", got)
	}
	if got := TruncateSnippet("héllo wörld", 5); got != "héllo..." {
		t.Errorf("rune-aware cut failed: %q", got)
	}
}

package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryReadsDoNotCreateWorkspace(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if got, err := s.Conversations(ctx, "visitor"); err != nil || len(got) != 0 {
		t.Fatalf("conversations = %v, %v", got, err)
	}
	if got, err := s.Profiles(ctx, "visitor"); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("profiles = %#v, %v", got, err)
	}
	if _, err := s.Profile(ctx, "visitor", "Parents"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("profile err = %v", err)
	}
	if got, err := s.Analyses(ctx, "visitor"); err != nil || len(got) != 0 {
		t.Fatalf("analyses = %v, %v", got, err)
	}
	if n := len(s.workspaces); n != 0 {
		t.Errorf("reads created %d workspaces", n)
	}

	if err := s.SaveProfile(ctx, "visitor", Profile{Name: "Parents"}); err != nil {
		t.Fatal(err)
	}
	if n := len(s.workspaces); n != 1 {
		t.Errorf("workspaces after write = %d, want 1", n)
	}
}

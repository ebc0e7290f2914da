package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
)

type workspace struct {
	conversations []Conversation
	profiles      map[string]Profile
	analyses      []AnalysisRecord
}

// MemoryStore holds everything in process memory; it is lost on restart.
type MemoryStore struct {
	mu         sync.Mutex
	workspaces map[string]*workspace
}

func NewMemory() *MemoryStore {
	return &MemoryStore{workspaces: make(map[string]*workspace)}
}

var emptyWorkspace = &workspace{}

// view returns the workspace without creating it. Callers hold mu and must
// not write through the result.
func (s *MemoryStore) view(id string) *workspace {
	if w, ok := s.workspaces[id]; ok {
		return w
	}
	return emptyWorkspace
}

// ws must be called with mu held.
func (s *MemoryStore) ws(id string) *workspace {
	w, ok := s.workspaces[id]
	if !ok {
		w = &workspace{profiles: make(map[string]Profile)}
		s.workspaces[id] = w
	}
	return w
}

func (s *MemoryStore) AppendConversation(_ context.Context, workspace string, c Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Demographics = slices.Clone(c.Demographics)
	w := s.ws(workspace)
	w.conversations = append(w.conversations, c)
	return nil
}

func (s *MemoryStore) Conversations(_ context.Context, workspace string) ([]Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.view(workspace).conversations), nil
}

func (s *MemoryStore) SaveProfile(_ context.Context, workspace string, p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ws(workspace).profiles[p.Name] = p
	return nil
}

func (s *MemoryStore) Profile(_ context.Context, workspace, name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.view(workspace).profiles[name]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (s *MemoryStore) Profiles(_ context.Context, workspace string) ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.view(workspace)
	out := make([]Profile, 0, len(w.profiles))
	for _, p := range w.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) AppendAnalysis(_ context.Context, workspace string, a AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.ws(workspace)
	w.analyses = append(w.analyses, a)
	return nil
}

func (s *MemoryStore) Analyses(_ context.Context, workspace string) ([]AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.view(workspace).analyses), nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

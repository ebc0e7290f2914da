// Package hub implements the six hub features on top of the model agent,
// the keyword analyzer and the record store.
package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"demographic_communication_hub/analytics"
	"demographic_communication_hub/analyzer"
	"demographic_communication_hub/generator"
	"demographic_communication_hub/report"
	"demographic_communication_hub/store"
)

// ErrMissingInput is returned when a required form field is blank.
var ErrMissingInput = errors.New("missing input")

// analysisSnippet is how much of an analyzed text is kept in history.
const analysisSnippet = 100

// Generated is a model reply as shown to the user. Error is set when Text
// is the failure message rather than model output.
type Generated struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (g Generated) Failed() bool { return g.Error != "" }

// Service wires the features together.
type Service struct {
	agent *generator.Agent
	store store.Store
	log   *logrus.Entry
	now   func() time.Time
}

func New(agent *generator.Agent, st store.Store, log *logrus.Entry) (*Service, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if st == nil {
		return nil, errors.New("store required")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{agent: agent, store: st, log: log, now: time.Now}, nil
}

// ModelStatus reports whether the model is loaded and which one it is.
func (s *Service) ModelStatus(ctx context.Context) (bool, string) {
	return s.agent.EnsureLoaded(ctx) == nil, s.agent.Model()
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", ErrMissingInput, field)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// generate requires a loaded model, then always yields display text.
func (s *Service) generate(ctx context.Context, feature string, p generator.Prompt) (Generated, error) {
	if err := s.agent.EnsureLoaded(ctx); err != nil {
		return Generated{}, err
	}
	text, err := s.agent.Respond(ctx, feature, p)
	if errors.Is(err, generator.ErrModelUnavailable) {
		return Generated{}, err
	}
	g := Generated{Text: text}
	if err != nil {
		g.Error = err.Error()
		s.log.WithField("feature", feature).Debug("returning failure text as response")
	}
	return g, nil
}

// ComposeResult is the composer's reply plus the history record it created.
type ComposeResult struct {
	Generated
	Record store.Conversation `json:"record"`
}

// Compose rewrites a draft for the chosen audience and records it. A failed
// generation is recorded too, with the failure text as the optimized message.
func (s *Service) Compose(ctx context.Context, workspace string, in generator.ComposeInput) (ComposeResult, error) {
	if blank(in.Message) {
		return ComposeResult{}, missing("message")
	}
	g, err := s.generate(ctx, "compose", generator.BuildComposePrompt(in))
	if err != nil {
		return ComposeResult{}, err
	}
	rec := store.Conversation{
		ID:           uuid.NewString(),
		Timestamp:    s.now(),
		Original:     in.Message,
		Optimized:    g.Text,
		Demographics: in.Demographics,
		Type:         in.MessageType,
	}
	if err := s.store.AppendConversation(ctx, workspace, rec); err != nil {
		return ComposeResult{}, fmt.Errorf("record conversation: %w", err)
	}
	return ComposeResult{Generated: g, Record: rec}, nil
}

// ProfileResult is the analysis reply and the saved profile.
type ProfileResult struct {
	Generated
	Profile store.Profile `json:"profile"`
}

// CreateProfile analyses an audience and saves it under name, replacing any
// profile with the same name.
func (s *Service) CreateProfile(ctx context.Context, workspace, name string, in generator.ProfileInput) (ProfileResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ProfileResult{}, missing("profile name")
	}
	g, err := s.generate(ctx, "profile", generator.BuildProfilePrompt(in))
	if err != nil {
		return ProfileResult{}, err
	}
	p := store.Profile{
		Name:          name,
		Demographics:  in.Demographics,
		CulturalNotes: in.CulturalNotes,
		Analysis:      g.Text,
		Created:       s.now(),
	}
	if err := s.store.SaveProfile(ctx, workspace, p); err != nil {
		return ProfileResult{}, fmt.Errorf("save profile: %w", err)
	}
	return ProfileResult{Generated: g, Profile: p}, nil
}

func (s *Service) Profiles(ctx context.Context, workspace string) ([]store.Profile, error) {
	return s.store.Profiles(ctx, workspace)
}

func (s *Service) Profile(ctx context.Context, workspace, name string) (store.Profile, error) {
	return s.store.Profile(ctx, workspace, name)
}

// QuickProfile is the optimizer's one-off audience.
type QuickProfile struct {
	AgeGroup     string `json:"age_group"`
	Context      string `json:"context"`
	Relationship string `json:"relationship"`
}

// SuggestRequest targets either a saved profile (ProfileName) or Quick.
type SuggestRequest struct {
	ProfileName string       `json:"profile_name,omitempty"`
	Quick       QuickProfile `json:"quick"`
	Context     string       `json:"context"`
	Message     string       `json:"message"`
}

func (s *Service) target(ctx context.Context, workspace string, req SuggestRequest) (generator.TargetProfile, error) {
	name := strings.TrimSpace(req.ProfileName)
	if name == "" {
		return generator.TargetProfile{
			Demographics: generator.Demographics{AgeGroup: req.Quick.AgeGroup},
			Context:      req.Quick.Context,
			Relationship: req.Quick.Relationship,
		}, nil
	}
	p, err := s.store.Profile(ctx, workspace, name)
	if err != nil {
		return generator.TargetProfile{}, err
	}
	return generator.TargetProfile{
		Name:          p.Name,
		Demographics:  p.Demographics,
		CulturalNotes: p.CulturalNotes,
	}, nil
}

// Suggest produces alternative phrasings of a conversation message.
func (s *Service) Suggest(ctx context.Context, workspace string, req SuggestRequest) (Generated, error) {
	target, err := s.target(ctx, workspace, req)
	if err != nil {
		return Generated{}, err
	}
	if blank(req.Message) {
		return Generated{}, missing("message")
	}
	return s.generate(ctx, "optimize", generator.BuildSuggestionPrompt(generator.SuggestionInput{
		Context: req.Context,
		Target:  target,
		Message: req.Message,
	}))
}

// CheckTone runs the keyword heuristics only; it never needs the model.
func (s *Service) CheckTone(text string) (analyzer.StyleAnalysis, error) {
	if blank(text) {
		return analyzer.StyleAnalysis{}, missing("message")
	}
	return analyzer.AnalyzeStyle(text), nil
}

// AdaptRequest adapts one message from a source culture to several targets.
type AdaptRequest struct {
	Message        string   `json:"message"`
	SourceCulture  string   `json:"source_culture"`
	TargetCultures []string `json:"target_cultures"`
	ContextType    string   `json:"context_type"`
	FocusAreas     []string `json:"focus_areas"`
}

// Adaptation is the reply for one target culture.
type Adaptation struct {
	Culture string `json:"culture"`
	Generated
}

// Adapt makes one model call per target culture, in the order given.
func (s *Service) Adapt(ctx context.Context, req AdaptRequest) ([]Adaptation, error) {
	if blank(req.Message) {
		return nil, missing("message")
	}
	if len(req.TargetCultures) == 0 {
		return nil, missing("target culture")
	}
	out := make([]Adaptation, 0, len(req.TargetCultures))
	for _, culture := range req.TargetCultures {
		g, err := s.generate(ctx, "adapt", generator.BuildAdaptationPrompt(generator.AdaptationInput{
			Message:       req.Message,
			SourceCulture: req.SourceCulture,
			TargetCulture: culture,
			ContextType:   req.ContextType,
			FocusAreas:    req.FocusAreas,
		}))
		if err != nil {
			return nil, err
		}
		out = append(out, Adaptation{Culture: culture, Generated: g})
	}
	return out, nil
}

// AnalysisResult combines the model's analysis with the quick metrics.
type AnalysisResult struct {
	Generated
	Metrics analyzer.QuickMetrics `json:"metrics"`
	Record  store.AnalysisRecord  `json:"record"`
}

// AnalyzeMessage runs the deep analysis and keeps a truncated record of it.
func (s *Service) AnalyzeMessage(ctx context.Context, workspace string, in generator.AnalysisInput) (AnalysisResult, error) {
	if blank(in.Text) {
		return AnalysisResult{}, missing("text")
	}
	metrics := analyzer.Quick(in.Text)
	g, err := s.generate(ctx, "analyze", generator.BuildAnalysisPrompt(in))
	if err != nil {
		return AnalysisResult{}, err
	}
	rec := store.AnalysisRecord{
		ID:        uuid.NewString(),
		Text:      store.TruncateSnippet(in.Text, analysisSnippet),
		Analysis:  g.Text,
		Metrics:   metrics.Style,
		Timestamp: s.now(),
	}
	if err := s.store.AppendAnalysis(ctx, workspace, rec); err != nil {
		return AnalysisResult{}, fmt.Errorf("record analysis: %w", err)
	}
	return AnalysisResult{Generated: g, Metrics: metrics, Record: rec}, nil
}

func (s *Service) History(ctx context.Context, workspace string) ([]store.Conversation, error) {
	return s.store.Conversations(ctx, workspace)
}

func (s *Service) Analyses(ctx context.Context, workspace string) ([]store.AnalysisRecord, error) {
	return s.store.Analyses(ctx, workspace)
}

// Dashboard summarises the workspace's composer history.
func (s *Service) Dashboard(ctx context.Context, workspace string) (analytics.Dashboard, error) {
	history, err := s.store.Conversations(ctx, workspace)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	return analytics.Summarize(history, s.now()), nil
}

// Report exports the workspace's history, profiles and analyses.
func (s *Service) Report(ctx context.Context, workspace string, f report.Format) ([]byte, error) {
	history, err := s.store.Conversations(ctx, workspace)
	if err != nil {
		return nil, err
	}
	profiles, err := s.store.Profiles(ctx, workspace)
	if err != nil {
		return nil, err
	}
	analyses, err := s.store.Analyses(ctx, workspace)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return report.Render(report.Input{
		Generated:     now,
		Dashboard:     analytics.Summarize(history, now),
		Conversations: history,
		Profiles:      profiles,
		Analyses:      analyses,
	}, f)
}

// Ping checks the record store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"demographic_communication_hub/generator"
	"demographic_communication_hub/hub"
	"demographic_communication_hub/report"
	"demographic_communication_hub/store"
)

type composeReq struct {
	Message      string   `json:"message"`
	MessageType  string   `json:"message_type"`
	Demographics []string `json:"demographics"`
	Tone         string   `json:"tone"`
	Complexity   string   `json:"complexity"`
}

type profileReq struct {
	Name                    string `json:"name"`
	AgeGroup                string `json:"age_group"`
	Education               string `json:"education"`
	Profession              string `json:"profession"`
	Location                string `json:"location"`
	TechSavviness           int    `json:"tech_savviness"`
	CommunicationPreference string `json:"communication_preference"`
	CulturalNotes           string `json:"cultural_notes"`
}

type styleReq struct {
	Message string `json:"message"`
}

type analyzeReq struct {
	Text               string `json:"text"`
	AnalysisType       string `json:"analysis_type"`
	IncludeSuggestions bool   `json:"include_suggestions"`
	CompareAgainst     string `json:"compare_against"`
}

type statusResp struct {
	ModelLoaded bool   `json:"model_loaded"`
	Model       string `json:"model"`
}

type historyResp struct {
	Conversations []store.Conversation   `json:"conversations"`
	Analyses      []store.AnalysisRecord `json:"analyses"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) composeInput(req composeReq) generator.ComposeInput {
	in := generator.ComposeInput{
		Message:        req.Message,
		MessageType:    req.MessageType,
		Demographics:   req.Demographics,
		TonePreference: req.Tone,
		Complexity:     req.Complexity,
	}
	if in.MessageType == "" {
		in.MessageType = s.catalog.MessageTypes[0]
	}
	return in
}

func (s *Server) profileInput(req profileReq) generator.ProfileInput {
	return generator.ProfileInput{
		Demographics: generator.Demographics{
			AgeGroup:                req.AgeGroup,
			Education:               req.Education,
			Profession:              req.Profession,
			Location:                req.Location,
			TechSavviness:           s.catalog.Profile.TechSavviness.Clamp(req.TechSavviness),
			CommunicationPreference: req.CommunicationPreference,
		},
		CulturalNotes: req.CulturalNotes,
	}
}

func analysisInput(req analyzeReq) generator.AnalysisInput {
	return generator.AnalysisInput{
		Text:               req.Text,
		AnalysisType:       req.AnalysisType,
		IncludeSuggestions: req.IncludeSuggestions,
		CompareAgainst:     req.CompareAgainst,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ok, model := s.hub.ModelStatus(r.Context())
	JSON(w, http.StatusOK, statusResp{ModelLoaded: ok, Model: model})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composeReq
	if !decode(w, r, &req) {
		return
	}
	ctx, cancel := s.modelContext(r)
	defer cancel()
	res, err := s.hub.Compose(ctx, workspaceFrom(r.Context()), s.composeInput(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.hub.Profiles(r.Context(), workspaceFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []store.Profile{}
	}
	JSON(w, http.StatusOK, profiles)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileReq
	if !decode(w, r, &req) {
		return
	}
	ctx, cancel := s.modelContext(r)
	defer cancel()
	res, err := s.hub.CreateProfile(ctx, workspaceFrom(r.Context()), req.Name, s.profileInput(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.hub.Profile(r.Context(), workspaceFrom(r.Context()), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, p)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req hub.SuggestRequest
	if !decode(w, r, &req) {
		return
	}
	ctx, cancel := s.modelContext(r)
	defer cancel()
	res, err := s.hub.Suggest(ctx, workspaceFrom(r.Context()), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	var req styleReq
	if !decode(w, r, &req) {
		return
	}
	res, err := s.hub.CheckTone(req.Message)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *Server) handleAdapt(w http.ResponseWriter, r *http.Request) {
	var req hub.AdaptRequest
	if !decode(w, r, &req) {
		return
	}
	ctx, cancel := s.modelContext(r)
	defer cancel()
	res, err := s.hub.Adapt(ctx, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"adaptations": res})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeReq
	if !decode(w, r, &req) {
		return
	}
	ctx, cancel := s.modelContext(r)
	defer cancel()
	res, err := s.hub.AnalyzeMessage(ctx, workspaceFrom(r.Context()), analysisInput(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	d, err := s.hub.Dashboard(r.Context(), workspaceFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, d)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	conversations, err := s.hub.History(r.Context(), ws)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	analyses, err := s.hub.Analyses(r.Context(), ws)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if conversations == nil {
		conversations = []store.Conversation{}
	}
	if analyses == nil {
		analyses = []store.AnalysisRecord{}
	}
	JSON(w, http.StatusOK, historyResp{Conversations: conversations, Analyses: analyses})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.hub.Report(r.Context(), workspaceFrom(r.Context()), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="communication-report.%s"`, strings.ToLower(string(f))))
	_, _ = w.Write(out)
}

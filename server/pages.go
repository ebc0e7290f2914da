package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"demographic_communication_hub/analytics"
	"demographic_communication_hub/analyzer"
	"demographic_communication_hub/catalog"
	"demographic_communication_hub/charts"
	"demographic_communication_hub/generator"
	"demographic_communication_hub/hub"
	"demographic_communication_hub/store"
)

type page struct {
	Path  string
	Title string
	Blurb string
}

func (p page) name() string { return strings.TrimPrefix(p.Path, "/") }

var pageList = []page{
	{"/compose", "Smart Message Composer", "Craft messages tailored to specific demographics with AI assistance"},
	{"/profiles", "Demographic Profiler", "Create detailed profiles for targeted communication"},
	{"/optimize", "Conversation Optimizer", "Real-time conversation enhancement and suggestion engine"},
	{"/analytics", "Communication Analytics", "Analyze your communication patterns and effectiveness"},
	{"/adapt", "Cultural Adaptation Engine", "Adapt your messages for different cultural contexts and regions"},
	{"/analyze", "Message Tone Analyzer", "Deep analysis of message tone, sentiment, and communication effectiveness"},
}

// view is what every page template receives.
type view struct {
	Page    page
	Nav     []page
	ModelOK bool
	Model   string
	Catalog *catalog.Catalog
	Form    url.Values
	Error   string
	Notice  string
	Data    any

	status int
}

func (v *view) fail(err error) {
	v.status = statusFor(err)
	if errors.Is(err, generator.ErrModelUnavailable) {
		v.Error = "Model not loaded. Please wait for model initialization."
		return
	}
	v.Error = err.Error()
}

func (s *Server) pageHandler(path string) http.HandlerFunc {
	builders := map[string]func(*http.Request, *view){
		"/compose":   s.composePage,
		"/profiles":  s.profilesPage,
		"/optimize":  s.optimizePage,
		"/analytics": s.analyticsPage,
		"/adapt":     s.adaptPage,
		"/analyze":   s.analyzePage,
	}
	build := builders[path]
	var current page
	for _, p := range pageList {
		if p.Path == path {
			current = p
		}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		v := &view{Page: current, Nav: pageList, Catalog: s.catalog, Form: url.Values{}}
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form", http.StatusBadRequest)
				return
			}
			v.Form = r.PostForm
		}
		build(r, v)
		v.ModelOK, v.Model = s.hub.ModelStatus(r.Context())
		s.render(w, v)
	}
}

// defaults preselects the first option of each list on a fresh form.
func defaults(v *view, pairs map[string][]string) {
	for key, list := range pairs {
		if v.Form.Get(key) == "" {
			v.Form.Set(key, catalog.First(list))
		}
	}
}

type composeData struct {
	Result *hub.ComposeResult
}

func (s *Server) composePage(r *http.Request, v *view) {
	data := composeData{}
	v.Data = &data
	defaults(v, map[string][]string{
		"message_type": s.catalog.MessageTypes,
		"tone":         s.catalog.Tones,
		"complexity":   s.catalog.ComplexityLevels,
	})
	if r.Method == http.MethodPost {
		ctx, cancel := s.modelContext(r)
		defer cancel()
		res, err := s.hub.Compose(ctx, workspaceFrom(r.Context()), s.composeInput(composeReq{
			Message:      v.Form.Get("message"),
			MessageType:  v.Form.Get("message_type"),
			Demographics: v.Form["demographics"],
			Tone:         v.Form.Get("tone"),
			Complexity:   v.Form.Get("complexity"),
		}))
		if err != nil {
			v.fail(err)
		} else {
			data.Result = &res
		}
	}
}

type profilesData struct {
	Result *hub.ProfileResult
	Saved  []store.Profile
}

func (s *Server) profilesPage(r *http.Request, v *view) {
	data := profilesData{}
	v.Data = &data
	ws := workspaceFrom(r.Context())
	if r.Method == http.MethodPost {
		savvy, _ := strconv.Atoi(v.Form.Get("tech_savviness"))
		ctx, cancel := s.modelContext(r)
		defer cancel()
		res, err := s.hub.CreateProfile(ctx, ws, v.Form.Get("name"), s.profileInput(profileReq{
			AgeGroup:                v.Form.Get("age_group"),
			Education:               v.Form.Get("education"),
			Profession:              v.Form.Get("profession"),
			Location:                v.Form.Get("location"),
			TechSavviness:           savvy,
			CommunicationPreference: v.Form.Get("communication_preference"),
			CulturalNotes:           v.Form.Get("cultural_notes"),
		}))
		if err != nil {
			v.fail(err)
		} else {
			data.Result = &res
		}
	}
	saved, err := s.hub.Profiles(r.Context(), ws)
	if err != nil {
		v.fail(err)
	}
	data.Saved = saved
	pc := s.catalog.Profile
	defaults(v, map[string][]string{
		"age_group":                pc.AgeGroups,
		"education":                pc.Education,
		"profession":               pc.Professions,
		"location":                 pc.Locations,
		"communication_preference": pc.CommunicationStyles,
	})
	if v.Form.Get("tech_savviness") == "" {
		v.Form.Set("tech_savviness", strconv.Itoa(pc.TechSavviness.Default))
	}
}

type optimizeData struct {
	Profiles    []store.Profile
	Suggestions *hub.Generated
	Tone        *analyzer.StyleAnalysis
}

func (s *Server) optimizePage(r *http.Request, v *view) {
	data := optimizeData{}
	v.Data = &data
	ws := workspaceFrom(r.Context())
	profiles, err := s.hub.Profiles(r.Context(), ws)
	if err != nil {
		v.fail(err)
		return
	}
	data.Profiles = profiles

	qc := s.catalog.QuickProfile
	defaults(v, map[string][]string{
		"mode":         {"saved"},
		"quick_age":    qc.Ages,
		"quick_ctx":    qc.Contexts,
		"relationship": qc.Relationships,
	})
	saved := v.Form.Get("mode") == "saved"
	if saved && len(profiles) == 0 {
		v.Notice = "No saved profiles found. Please create a profile first."
	}
	if r.Method != http.MethodPost {
		return
	}

	if v.Form.Get("action") == "tone" {
		style, err := s.hub.CheckTone(v.Form.Get("message"))
		if err != nil {
			v.fail(err)
			return
		}
		data.Tone = &style
		return
	}

	req := hub.SuggestRequest{Context: v.Form.Get("context"), Message: v.Form.Get("message")}
	if saved {
		req.ProfileName = v.Form.Get("profile")
		if req.ProfileName == "" {
			v.fail(fmt.Errorf("%w: profile is required", hub.ErrMissingInput))
			return
		}
	} else {
		req.Quick = hub.QuickProfile{
			AgeGroup:     v.Form.Get("quick_age"),
			Context:      v.Form.Get("quick_ctx"),
			Relationship: v.Form.Get("relationship"),
		}
	}
	ctx, cancel := s.modelContext(r)
	defer cancel()
	res, err := s.hub.Suggest(ctx, ws, req)
	if err != nil {
		v.fail(err)
		return
	}
	data.Suggestions = &res
}

type analyticsData struct {
	Dashboard analytics.Dashboard
	TypesPie  template.HTML
	Timeline  template.HTML
}

func toData(counts []analytics.Count) []charts.Datum {
	out := make([]charts.Datum, 0, len(counts))
	for _, c := range counts {
		out = append(out, charts.Datum{Label: c.Label, Value: float64(c.Value)})
	}
	return out
}

func (s *Server) analyticsPage(r *http.Request, v *view) {
	data := analyticsData{}
	v.Data = &data
	d, err := s.hub.Dashboard(r.Context(), workspaceFrom(r.Context()))
	if err != nil {
		v.fail(err)
		return
	}
	data.Dashboard = d
	if !d.Empty() {
		var perr, berr error
		data.TypesPie, perr = charts.Pie(toData(d.Types))
		data.Timeline, berr = charts.Bar(toData(d.Timeline))
		if err := errors.Join(perr, berr); err != nil {
			s.log.WithError(err).Warn("render dashboard charts")
		}
	}
}

type adaptData struct {
	Adaptations []hub.Adaptation
}

func (s *Server) adaptPage(r *http.Request, v *view) {
	data := adaptData{}
	v.Data = &data
	defaults(v, map[string][]string{
		"source_culture": s.catalog.Cultures,
		"context_type":   s.catalog.ContextTypes,
	})
	if r.Method == http.MethodPost {
		ctx, cancel := s.modelContext(r)
		defer cancel()
		res, err := s.hub.Adapt(ctx, hub.AdaptRequest{
			Message:        v.Form.Get("message"),
			SourceCulture:  v.Form.Get("source_culture"),
			TargetCultures: v.Form["target_cultures"],
			ContextType:    v.Form.Get("context_type"),
			FocusAreas:     v.Form["focus_areas"],
		})
		if err != nil {
			v.fail(err)
		} else {
			data.Adaptations = res
		}
	}
}

type analyzeData struct {
	Result          *hub.AnalysisResult
	FormalityGauge  template.HTML
	ComplexityGauge template.HTML
}

func (s *Server) analyzePage(r *http.Request, v *view) {
	data := analyzeData{}
	v.Data = &data
	defaults(v, map[string][]string{
		"analysis_type":   s.catalog.AnalysisTypes,
		"compare_against": s.catalog.ComparisonGroups,
	})
	if r.Method != http.MethodPost {
		v.Form.Set("include_suggestions", "on")
	} else {
		in := analyzeReq{
			Text:               v.Form.Get("text"),
			AnalysisType:       v.Form.Get("analysis_type"),
			IncludeSuggestions: v.Form.Get("include_suggestions") != "",
		}
		if v.Form.Get("compare") != "" {
			in.CompareAgainst = v.Form.Get("compare_against")
		}
		ctx, cancel := s.modelContext(r)
		defer cancel()
		res, err := s.hub.AnalyzeMessage(ctx, workspaceFrom(r.Context()), analysisInput(in))
		if err != nil {
			v.fail(err)
		} else {
			data.Result = &res
			data.FormalityGauge = charts.Gauge("Formality Level", float64(res.Metrics.FormalityScore), 10)
			data.ComplexityGauge = charts.Gauge("Complexity Level", float64(res.Metrics.ComplexityScore), 10)
		}
	}
}

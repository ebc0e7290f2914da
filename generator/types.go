package generator

import (
	"fmt"
	"strings"
)

// Demographics is the flat attribute set captured by the profiler form.
type Demographics struct {
	AgeGroup                string `json:"age_group"`
	Education               string `json:"education,omitempty"`
	Profession              string `json:"profession,omitempty"`
	Location                string `json:"location,omitempty"`
	TechSavviness           int    `json:"tech_savviness,omitempty"`
	CommunicationPreference string `json:"communication_preference,omitempty"`
}

// ComposeInput drives the smart message composer.
type ComposeInput struct {
	Message        string
	MessageType    string
	Demographics   []string
	TonePreference string
	Complexity     string
}

// ProfileInput drives the demographic profile analysis.
type ProfileInput struct {
	Demographics  Demographics
	CulturalNotes string
}

// TargetProfile is a saved or quick profile.
type TargetProfile struct {
	Name          string
	Demographics  Demographics
	CulturalNotes string
	Context       string
	Relationship  string
}

// Describe renders the profile as a single prompt line.
func (t TargetProfile) Describe() string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+": "+v)
		}
	}
	add("Profile", t.Name)
	add("Age Group", t.Demographics.AgeGroup)
	add("Education", t.Demographics.Education)
	add("Profession", t.Demographics.Profession)
	add("Location", t.Demographics.Location)
	if t.Demographics.TechSavviness > 0 {
		add("Tech Level", fmt.Sprintf("%d/10", t.Demographics.TechSavviness))
	}
	add("Style", t.Demographics.CommunicationPreference)
	add("Cultural Notes", t.CulturalNotes)
	add("Context", t.Context)
	add("Relationship", t.Relationship)
	return strings.Join(parts, "; ")
}

// SuggestionInput drives the conversation optimizer.
type SuggestionInput struct {
	Context string
	Target  TargetProfile
	Message string
}

// AdaptationInput drives one cultural adaptation call.
type AdaptationInput struct {
	Message       string
	SourceCulture string
	TargetCulture string
	ContextType   string
	FocusAreas    []string
}

// AnalysisInput drives the message tone analyzer.
type AnalysisInput struct {
	Text               string
	AnalysisType       string
	IncludeSuggestions bool
	CompareAgainst     string
}

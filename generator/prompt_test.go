package generator

import (
	"strings"
	"testing"
)

func TestBuildComposePrompt(t *testing.T) {
	p := BuildComposePrompt(ComposeInput{
		Message:        "Our store opens Monday.",
		MessageType:    "Marketing Copy",
		Demographics:   []string{"Students", "Urban"},
		TonePreference: "Casual",
		Complexity:     "Simple",
	})
	for _, want := range []string{
		"Target Demographics: Students, Urban",
		"Message Type: Marketing Copy",
		"Tone Preference: Casual",
		"Complexity Level: Simple",
		"demographic-aware communication assistant",
	} {
		if !strings.Contains(p.System, want) {
			t.Errorf("system prompt missing %q:\n%s", want, p.System)
		}
	}
	if p.User != "Please optimize this message for the specified demographics: Our store opens Monday." {
		t.Errorf("unexpected user prompt %q", p.User)
	}
	if p.MaxTokens != ComposeTokens || p.Temperature != defaultTemperature {
		t.Errorf("limits = %d/%v", p.MaxTokens, p.Temperature)
	}
}

func TestBuildProfilePrompt(t *testing.T) {
	p := BuildProfilePrompt(ProfileInput{
		Demographics: Demographics{
			AgeGroup:                "26-35",
			Education:               "Master's",
			Profession:              "Executive",
			Location:                "Urban",
			TechSavviness:           7,
			CommunicationPreference: "Direct",
		},
		CulturalNotes: "Prefers English",
	})
	for _, want := range []string{"Age: 26-35", "Tech Level: 7/10", "Style: Direct", "Cultural Notes: Prefers English", "key motivators"} {
		if !strings.Contains(p.User, want) {
			t.Errorf("profile prompt missing %q", want)
		}
	}
	if p.MaxTokens != ProfileTokens {
		t.Errorf("max tokens = %d", p.MaxTokens)
	}
}

func TestBuildSuggestionPromptDescribesTarget(t *testing.T) {
	p := BuildSuggestionPrompt(SuggestionInput{
		Context: "Late delivery",
		Target:  TargetProfile{Demographics: Demographics{AgeGroup: "40+"}, Context: "Business", Relationship: "Client"},
		Message: "Sorry about that.",
	})
	if !strings.Contains(p.User, "Target Profile: Age Group: 40+; Context: Business; Relationship: Client") {
		t.Errorf("target not described:\n%s", p.User)
	}
	if !strings.Contains(p.User, "3. More Concise") || p.MaxTokens != SuggestionTokens {
		t.Errorf("unexpected prompt %+v", p)
	}
}

func TestBuildAdaptationPrompt(t *testing.T) {
	p := BuildAdaptationPrompt(AdaptationInput{
		Message:       "Let's meet at 8.",
		SourceCulture: "US/North America",
		TargetCulture: "East Asia",
		ContextType:   "Business Meeting",
		FocusAreas:    []string{"Hierarchy Respect", "Time Orientation"},
	})
	if !strings.Contains(p.User, "from US/North America context to East Asia context") {
		t.Errorf("missing culture pair:\n%s", p.User)
	}
	if !strings.Contains(p.User, "Focus Areas: Hierarchy Respect, Time Orientation") || p.MaxTokens != AdaptationTokens {
		t.Errorf("unexpected prompt %+v", p)
	}
}

func TestBuildAnalysisPromptOptionalItems(t *testing.T) {
	base := AnalysisInput{Text: "hi", AnalysisType: "Tone Only"}
	p := BuildAnalysisPrompt(base)
	if strings.Contains(p.User, "7.") || strings.Contains(p.User, "8.") {
		t.Errorf("optional items present without request:\n%s", p.User)
	}

	base.IncludeSuggestions = true
	base.CompareAgainst = "Students"
	p = BuildAnalysisPrompt(base)
	if !strings.Contains(p.User, "7. Specific recommendations for improvement") {
		t.Error("missing item 7")
	}
	if !strings.Contains(p.User, "8. Suitability for Students") {
		t.Error("missing item 8")
	}
	if p.MaxTokens != AnalysisTokens {
		t.Errorf("max tokens = %d", p.MaxTokens)
	}
}

func TestTargetProfileDescribeSkipsEmpty(t *testing.T) {
	if got := (TargetProfile{}).Describe(); got != "" {
		t.Errorf("Describe() = %q, want empty", got)
	}
}

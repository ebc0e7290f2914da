package generator

import (
	"fmt"
	"strings"
)

const defaultTemperature = 0.7

// Per-feature response budgets in tokens.
const (
	ComposeTokens    = 200
	ProfileTokens    = 300
	SuggestionTokens = 400
	AdaptationTokens = 350
	AnalysisTokens   = 400
)

// Prompt is one chat request: system framing, user turn and sampling limits.
type Prompt struct {
	System      string
	User        string
	History     []Message
	MaxTokens   int
	Temperature float64
}

// Message is an optional earlier turn.
type Message struct {
	Role    string
	Content string
}

// SystemPrompt frames every request around the audience description.
func SystemPrompt(demographicContext string) string {
	var sb strings.Builder
	sb.WriteString("You are a demographic-aware communication assistant.\n")
	sb.WriteString(fmt.Sprintf("Demographic Context: %s\n\n", strings.TrimSpace(demographicContext)))
	sb.WriteString("Please provide a response that is culturally sensitive, appropriate for the target demographic, ")
	sb.WriteString("and professionally crafted. Consider factors like age, cultural background, communication style preferences, ")
	sb.WriteString("and professional context when generating your response.")
	return sb.String()
}

func newPrompt(demographicContext, user string, maxTokens int) Prompt {
	return Prompt{
		System:      SystemPrompt(demographicContext),
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: defaultTemperature,
	}
}

// BuildComposePrompt asks for a rewrite of the draft.
func BuildComposePrompt(in ComposeInput) Prompt {
	var ctx strings.Builder
	ctx.WriteString(fmt.Sprintf("Target Demographics: %s\n", strings.Join(in.Demographics, ", ")))
	ctx.WriteString(fmt.Sprintf("Message Type: %s\n", in.MessageType))
	ctx.WriteString(fmt.Sprintf("Tone Preference: %s\n", in.TonePreference))
	ctx.WriteString(fmt.Sprintf("Complexity Level: %s", in.Complexity))

	user := fmt.Sprintf("Please optimize this message for the specified demographics: %s", in.Message)
	return newPrompt(ctx.String(), user, ComposeTokens)
}

// BuildProfilePrompt asks for a communication profile of an audience.
func BuildProfilePrompt(in ProfileInput) Prompt {
	d := in.Demographics
	var sb strings.Builder
	sb.WriteString("Create a comprehensive communication profile analysis for:\n")
	sb.WriteString(fmt.Sprintf("Age: %s\n", d.AgeGroup))
	sb.WriteString(fmt.Sprintf("Education: %s\n", d.Education))
	sb.WriteString(fmt.Sprintf("Profession: %s\n", d.Profession))
	sb.WriteString(fmt.Sprintf("Location: %s\n", d.Location))
	sb.WriteString(fmt.Sprintf("Tech Level: %d/10\n", d.TechSavviness))
	sb.WriteString(fmt.Sprintf("Style: %s\n", d.CommunicationPreference))
	sb.WriteString(fmt.Sprintf("Cultural Notes: %s\n\n", in.CulturalNotes))
	sb.WriteString("Provide insights on preferred communication channels, message length, tone, timing, and key motivators.")
	return newPrompt("", sb.String(), ProfileTokens)
}

// BuildSuggestionPrompt asks for three rewrites plus likely replies.
func BuildSuggestionPrompt(in SuggestionInput) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Context: %s\n", in.Context))
	sb.WriteString(fmt.Sprintf("Target Profile: %s\n", in.Target.Describe()))
	sb.WriteString(fmt.Sprintf("Original Message: %s\n\n", in.Message))
	sb.WriteString("Provide 3 optimized versions of this message:\n")
	sb.WriteString("1. More Professional\n")
	sb.WriteString("2. More Engaging\n")
	sb.WriteString("3. More Concise\n\n")
	sb.WriteString("Also suggest potential responses they might give and how to handle them.")
	return newPrompt("", sb.String(), SuggestionTokens)
}

// BuildAdaptationPrompt covers a single source/target culture pair.
func BuildAdaptationPrompt(in AdaptationInput) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Adapt this message from %s context to %s context:\n\n", in.SourceCulture, in.TargetCulture))
	sb.WriteString(fmt.Sprintf("Original Message: %s\n", in.Message))
	sb.WriteString(fmt.Sprintf("Context: %s\n", in.ContextType))
	sb.WriteString(fmt.Sprintf("Focus Areas: %s\n\n", strings.Join(in.FocusAreas, ", ")))
	sb.WriteString("Please provide:\n")
	sb.WriteString("1. Culturally adapted version\n")
	sb.WriteString("2. Key cultural considerations\n")
	sb.WriteString("3. Potential cultural pitfalls to avoid\n")
	sb.WriteString("4. Suggested delivery method/timing")
	return newPrompt("", sb.String(), AdaptationTokens)
}

// BuildAnalysisPrompt lists the analysis items; items 7 and 8 only appear
// when suggestions or a comparison demographic were requested.
func BuildAnalysisPrompt(in AnalysisInput) Prompt {
	var sb strings.Builder
	sb.WriteString("Perform a detailed communication analysis of this text:\n\n")
	sb.WriteString(fmt.Sprintf("Text: %s\n", in.Text))
	sb.WriteString(fmt.Sprintf("Analysis Type: %s\n\n", in.AnalysisType))
	sb.WriteString("Please provide:\n")
	sb.WriteString("1. Tone analysis (professional, casual, friendly, aggressive, etc.)\n")
	sb.WriteString("2. Sentiment analysis (positive, negative, neutral with intensity)\n")
	sb.WriteString("3. Formality level and appropriateness\n")
	sb.WriteString("4. Clarity and readability assessment\n")
	sb.WriteString("5. Potential audience reception\n")
	sb.WriteString("6. Communication effectiveness score (1-10)")
	if in.IncludeSuggestions {
		sb.WriteString("\n7. Specific recommendations for improvement")
	}
	if in.CompareAgainst != "" {
		sb.WriteString(fmt.Sprintf("\n8. Suitability for %s", in.CompareAgainst))
	}
	return newPrompt("", sb.String(), AnalysisTokens)
}

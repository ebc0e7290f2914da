// Package analyzer implements the keyword heuristics shown next to model
// output: formality, tone and sentence complexity, plus simple readability
// counts.
package analyzer

import (
	"regexp"
	"strings"
)

const (
	Formal   = "formal"
	Informal = "informal"
	Neutral  = "neutral"
	Positive = "positive"
	Negative = "negative"
	High     = "high"
	Medium   = "medium"
	Low      = "low"
)

// StyleAnalysis is the heuristic metric set stored with every analysis.
type StyleAnalysis struct {
	Formality  string   `json:"formality"`
	Tone       string   `json:"tone"`
	Complexity string   `json:"complexity"`
	KeyPhrases []string `json:"key_phrases"`
}

var (
	formalIndicators   = []string{"please", "thank you", "regards", "sincerely", "respectfully"}
	informalIndicators = []string{"hey", "yeah", "cool", "awesome", "thanks"}
	positiveWords      = []string{"great", "excellent", "wonderful", "amazing", "fantastic"}
	negativeWords      = []string{"bad", "terrible", "awful", "disappointing", "poor"}
)

var patterns = compile(formalIndicators, informalIndicators, positiveWords, negativeWords)

func compile(lists ...[]string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, list := range lists {
		for _, w := range list {
			phrase := strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
			out[w] = regexp.MustCompile(`\b` + phrase + `\b`)
		}
	}
	return out
}

// AnalyzeStyle buckets text into formality, tone and complexity labels.
// Ties between the opposing keyword counts report neutral.
func AnalyzeStyle(text string) StyleAnalysis {
	lower := strings.ToLower(text)
	analysis := StyleAnalysis{
		Formality:  Neutral,
		Tone:       Neutral,
		Complexity: Medium,
		KeyPhrases: []string{},
	}

	formal := countMatches(lower, formalIndicators, &analysis.KeyPhrases)
	informal := countMatches(lower, informalIndicators, &analysis.KeyPhrases)
	switch {
	case formal > informal:
		analysis.Formality = Formal
	case informal > formal:
		analysis.Formality = Informal
	}

	positive := countMatches(lower, positiveWords, &analysis.KeyPhrases)
	negative := countMatches(lower, negativeWords, &analysis.KeyPhrases)
	switch {
	case positive > negative:
		analysis.Tone = Positive
	case negative > positive:
		analysis.Tone = Negative
	}

	r := MeasureReadability(text)
	if r.WordCount > 0 {
		analysis.Complexity = complexityFor(r.AvgWordsPerSentence)
	}
	return analysis
}

func countMatches(lower string, words []string, matched *[]string) int {
	total := 0
	for _, w := range words {
		n := len(patterns[w].FindAllStringIndex(lower, -1))
		if n > 0 {
			*matched = append(*matched, w)
		}
		total += n
	}
	return total
}

// complexityFor uses strict bounds: exactly 10 or 20 words stays medium.
func complexityFor(avg float64) string {
	switch {
	case avg > 20:
		return High
	case avg < 10:
		return Low
	default:
		return Medium
	}
}

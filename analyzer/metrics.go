package analyzer

import "strings"

// Readability holds the raw counts behind the complexity label.
type Readability struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

// QuickMetrics is what the tone analyzer page shows beside the model output.
type QuickMetrics struct {
	Style           StyleAnalysis `json:"style"`
	Readability     Readability   `json:"readability"`
	FormalityScore  int           `json:"formality_score"`
	ComplexityScore int           `json:"complexity_score"`
}

// MeasureReadability counts whitespace separated words and non-empty
// sentences. Only '.' ends a sentence; the denominator never drops below one.
func MeasureReadability(text string) Readability {
	words := len(strings.Fields(text))
	sentences := 0
	for _, s := range strings.Split(text, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	return Readability{
		WordCount:           words,
		SentenceCount:       sentences,
		AvgWordsPerSentence: float64(words) / float64(max(sentences, 1)),
	}
}

// FormalityScore maps a formality label onto the 0-10 gauge.
func FormalityScore(label string) int {
	switch label {
	case Formal:
		return 8
	case Informal:
		return 2
	default:
		return 5
	}
}

// ComplexityScore maps a complexity label onto the 0-10 gauge.
func ComplexityScore(label string) int {
	switch label {
	case High:
		return 8
	case Low:
		return 2
	default:
		return 5
	}
}

func Quick(text string) QuickMetrics {
	style := AnalyzeStyle(text)
	return QuickMetrics{
		Style:           style,
		Readability:     MeasureReadability(text),
		FormalityScore:  FormalityScore(style.Formality),
		ComplexityScore: ComplexityScore(style.Complexity),
	}
}

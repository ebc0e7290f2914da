package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func sentence(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words)) + "."
}

func TestAnalyzeStyleFormality(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"formal wins", "Thank you for the update. Please advise. Regards", Formal},
		{"informal wins", "Hey, thanks! Please send it.", Informal},
		{"tie is neutral", "Cool, and thank you.", Neutral},
		{"nothing matched", "The report is attached.", Neutral},
		{"occurrences counted", "please please hey", Formal},
		{"case insensitive", "HEY YEAH", Informal},
		{"whole words only", "That was uncool of the headmaster.", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeStyle(tt.text).Formality; got != tt.want {
				t.Errorf("formality(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeStyleTone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Great work, excellent results, bad coffee.", Positive},
		{"Awful and poor service, great staff.", Negative},
		{"Amazing view but terrible food.", Neutral},
		{"bad bad great", Negative},
		{"", Neutral},
	}
	for _, tt := range tests {
		if got := AnalyzeStyle(tt.text).Tone; got != tt.want {
			t.Errorf("tone(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyzeStyleComplexityBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", Medium},
		{"whitespace only", "   \n", Medium},
		{"nine words", sentence(9), Low},
		{"exactly ten", sentence(10), Medium},
		{"exactly twenty", sentence(20), Medium},
		{"twenty one", sentence(21), High},
		{"averaged over sentences", sentence(30) + " " + sentence(10), Medium},
		{"question marks do not split", "one two three four five six? seven eight nine ten eleven twelve", Medium},
		{"exclamation does not split", strings.Repeat("word ", 11) + "wow! " + strings.Repeat("word ", 10), High},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeStyle(tt.text).Complexity; got != tt.want {
				t.Errorf("complexity = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeStyleKeyPhrases(t *testing.T) {
	got := AnalyzeStyle("Hey, thanks for the great and wonderful help. Sincerely").KeyPhrases
	want := []string{"sincerely", "hey", "thanks", "great", "wonderful"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("key phrases = %v, want %v", got, want)
	}
	if empty := AnalyzeStyle("nothing here").KeyPhrases; empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil key phrases, got %#v", empty)
	}
}

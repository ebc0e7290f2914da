package generator

import (
	"regexp"
	"strings"
)

var rolePrefix = regexp.MustCompile(`(?i)^\s*(<\|?assistant\|?>|assistant\s*:)\s*`)

// Clean trims the completion and drops an echoed role label.
func Clean(raw string) string {
	out := strings.TrimSpace(raw)
	out = rolePrefix.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

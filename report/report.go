// Package report turns a workspace's history into a shareable Markdown or
// HTML document.
package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"demographic_communication_hub/analytics"
	"demographic_communication_hub/store"
)

// Format selects the export encoding.
type Format string

const (
	Markdown Format = "md"
	HTML     Format = "html"
)

// ParseFormat accepts "md"/"markdown" and "html"; empty means markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return Markdown, nil
	case "html":
		return HTML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

// ContentType is the HTTP content type for the format.
func (f Format) ContentType() string {
	if f == HTML {
		return "text/html; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Input is everything that goes into a report.
type Input struct {
	Generated     time.Time
	Dashboard     analytics.Dashboard
	Conversations []store.Conversation
	Profiles      []store.Profile
	Analyses      []store.AnalysisRecord
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render builds the report in the requested format.
func Render(in Input, f Format) ([]byte, error) {
	doc := BuildMarkdown(in)
	if f != HTML {
		return []byte(doc), nil
	}
	body, err := mdToHTML(doc)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Communication Report</title></head><body>\n")
	out.WriteString(inlineStyles(body))
	out.WriteString("</body></html>\n")
	return out.Bytes(), nil
}

// BuildMarkdown renders the report as GitHub-flavoured Markdown.
func BuildMarkdown(in Input) string {
	var sb strings.Builder
	d := in.Dashboard

	sb.WriteString("# Communication Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated %s\n\n", in.Generated.Format("2006-01-02 15:04")))

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Total Messages | %d |\n", d.Total))
	sb.WriteString(fmt.Sprintf("| Unique Demographics | %d |\n", d.UniqueDemographics))
	sb.WriteString(fmt.Sprintf("| Most Used Type | %s |\n", cell(d.MostUsedType)))
	sb.WriteString(fmt.Sprintf("| This Week | %d |\n\n", d.ThisWeek))

	if len(d.Types) > 0 {
		sb.WriteString("## Message Types\n\n")
		for _, t := range d.Types {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", t.Label, t.Value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Messages\n\n")
	if len(in.Conversations) == 0 {
		sb.WriteString("No messages composed yet.\n\n")
	}
	for i, c := range in.Conversations {
		sb.WriteString(fmt.Sprintf("### %d. %s (%s)\n\n", i+1, c.Type, c.Timestamp.Format("2006-01-02 15:04")))
		if len(c.Demographics) > 0 {
			sb.WriteString(fmt.Sprintf("**Demographics:** %s\n\n", strings.Join(c.Demographics, ", ")))
		}
		sb.WriteString("**Original:**\n\n")
		sb.WriteString(quote(c.Original))
		sb.WriteString("**Optimized:**\n\n")
		sb.WriteString(strings.TrimSpace(c.Optimized) + "\n\n")
	}

	if len(in.Profiles) > 0 {
		sb.WriteString("## Profiles\n\n")
		for _, p := range in.Profiles {
			sb.WriteString(fmt.Sprintf("### %s\n\n", p.Name))
			demo := p.Demographics
			sb.WriteString(fmt.Sprintf("- Age: %s\n- Education: %s\n- Profession: %s\n- Location: %s\n- Tech Savviness: %d/10\n- Style: %s\n\n",
				demo.AgeGroup, demo.Education, demo.Profession, demo.Location, demo.TechSavviness, demo.CommunicationPreference))
			if p.CulturalNotes != "" {
				sb.WriteString(fmt.Sprintf("**Cultural Notes:** %s\n\n", p.CulturalNotes))
			}
			if p.Analysis != "" {
				sb.WriteString(strings.TrimSpace(p.Analysis) + "\n\n")
			}
		}
	}

	if len(in.Analyses) > 0 {
		sb.WriteString("## Tone Analyses\n\n")
		sb.WriteString("| When | Text | Formality | Tone | Complexity |\n|---|---|---|---|---|\n")
		for _, a := range in.Analyses {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				a.Timestamp.Format("2006-01-02 15:04"), cell(a.Text), a.Metrics.Formality, a.Metrics.Tone, a.Metrics.Complexity))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func quote(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func mdToHTML(doc string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(doc), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	headingRe = regexp.MustCompile(`(?s)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	tableRe   = regexp.MustCompile(`<table>`)
	cellRe    = regexp.MustCompile(`<(td|th)([^>]*)>`)
)

// Mail clients drop <style> blocks, so headings and tables get inline styles.
func inlineStyles(html string) string {
	sizes := map[string]string{
		"1": "24px",
		"2": "20px",
		"3": "17px",
	}
	html = headingRe.ReplaceAllStringFunc(html, func(block string) string {
		parts := headingRe.FindStringSubmatch(block)
		if len(parts) != 3 {
			return block
		}
		size := sizes[parts[1]]
		if size == "" {
			size = "15px"
		}
		return fmt.Sprintf(`<h%s style="font-size:%s;font-weight:700;margin:1em 0 0.6em;">%s</h%s>`, parts[1], size, strings.TrimSpace(parts[2]), parts[1])
	})
	html = tableRe.ReplaceAllString(html, `<table style="border-collapse:collapse;">`)
	html = cellRe.ReplaceAllString(html, `<$1$2 style="border:1px solid #ccc;padding:4px 8px;">`)
	return html
}

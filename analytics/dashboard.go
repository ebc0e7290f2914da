// Package analytics aggregates composer history into the dashboard figures
// and chart series.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"demographic_communication_hub/store"
)

const (
	recentLimit   = 10
	snippetLength = 200
	week          = 7 * 24 * time.Hour
	dateLayout    = "2006-01-02"
)

// Count is one labelled value in a chart series.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// RecentMessage is a history entry prepared for display.
type RecentMessage struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	When         string `json:"when"`
	Original     string `json:"original"`
	Optimized    string `json:"optimized"`
	Demographics string `json:"demographics"`
}

// Dashboard is the communication analytics overview.
type Dashboard struct {
	Total              int             `json:"total"`
	UniqueDemographics int             `json:"unique_demographics"`
	MostUsedType       string          `json:"most_used_type"`
	ThisWeek           int             `json:"this_week"`
	Types              []Count         `json:"types"`
	Timeline           []Count         `json:"timeline"`
	Recent             []RecentMessage `json:"recent"`
}

// Empty reports whether there is any history to show.
func (d Dashboard) Empty() bool { return d.Total == 0 }

// Summarize computes the dashboard for history ordered oldest first.
func Summarize(history []store.Conversation, now time.Time) Dashboard {
	d := Dashboard{
		Total:        len(history),
		MostUsedType: "None",
		Types:        []Count{},
		Timeline:     []Count{},
		Recent:       []RecentMessage{},
	}
	if len(history) == 0 {
		return d
	}

	demoSets := make(map[string]struct{})
	typeIdx := make(map[string]int)
	days := make(map[string]int)
	for _, c := range history {
		demoSets[strings.Join(c.Demographics, "\x00")] = struct{}{}

		typ := c.Type
		if typ == "" {
			typ = "Unknown"
		}
		if i, ok := typeIdx[typ]; ok {
			d.Types[i].Value++
		} else {
			typeIdx[typ] = len(d.Types)
			d.Types = append(d.Types, Count{Label: typ, Value: 1})
		}

		days[c.Timestamp.Format(dateLayout)]++
		if now.Sub(c.Timestamp) < week {
			d.ThisWeek++
		}
	}
	d.UniqueDemographics = len(demoSets)

	best := d.Types[0]
	for _, t := range d.Types[1:] {
		if t.Value > best.Value {
			best = t
		}
	}
	d.MostUsedType = best.Label

	for day, n := range days {
		d.Timeline = append(d.Timeline, Count{Label: day, Value: n})
	}
	sort.Slice(d.Timeline, func(i, j int) bool { return d.Timeline[i].Label < d.Timeline[j].Label })

	recent := history
	if len(recent) > recentLimit {
		recent = recent[len(recent)-recentLimit:]
	}
	for i := len(recent) - 1; i >= 0; i-- {
		c := recent[i]
		d.Recent = append(d.Recent, RecentMessage{
			Title:        fmt.Sprintf("Message %d", i+1),
			Type:         c.Type,
			When:         c.Timestamp.Format("2006-01-02 15:04"),
			Original:     store.TruncateSnippet(c.Original, snippetLength),
			Optimized:    store.TruncateSnippet(c.Optimized, snippetLength),
			Demographics: strings.Join(c.Demographics, ", "),
		})
	}
	return d
}

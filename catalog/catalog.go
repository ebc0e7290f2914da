// Package catalog holds the choices offered by every form in the hub.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var defaultOptions []byte

// Catalog mirrors options.yaml.
type Catalog struct {
	MessageTypes       []string       `yaml:"message_types" json:"message_types"`
	TargetDemographics []string       `yaml:"target_demographics" json:"target_demographics"`
	Tones              []string       `yaml:"tones" json:"tones"`
	ComplexityLevels   []string       `yaml:"complexity_levels" json:"complexity_levels"`
	Profile            ProfileChoices `yaml:"profile" json:"profile"`
	QuickProfile       QuickChoices   `yaml:"quick_profile" json:"quick_profile"`
	Cultures           []string       `yaml:"cultures" json:"cultures"`
	FocusAreas         []string       `yaml:"focus_areas" json:"focus_areas"`
	ContextTypes       []string       `yaml:"context_types" json:"context_types"`
	AnalysisTypes      []string       `yaml:"analysis_types" json:"analysis_types"`
	ComparisonGroups   []string       `yaml:"comparison_demographics" json:"comparison_demographics"`
}

type ProfileChoices struct {
	AgeGroups           []string `yaml:"age_groups" json:"age_groups"`
	Education           []string `yaml:"education" json:"education"`
	Professions         []string `yaml:"professions" json:"professions"`
	Locations           []string `yaml:"locations" json:"locations"`
	CommunicationStyles []string `yaml:"communication_styles" json:"communication_styles"`
	TechSavviness       Range    `yaml:"tech_savviness" json:"tech_savviness"`
}

type QuickChoices struct {
	Ages          []string `yaml:"ages" json:"ages"`
	Contexts      []string `yaml:"contexts" json:"contexts"`
	Relationships []string `yaml:"relationships" json:"relationships"`
}

// Range describes a slider.
type Range struct {
	Min     int `yaml:"min" json:"min"`
	Max     int `yaml:"max" json:"max"`
	Default int `yaml:"default" json:"default"`
}

// Clamp pulls v into the slider range; zero means "not set" and maps to Default.
func (r Range) Clamp(v int) int {
	if v == 0 {
		return r.Default
	}
	return min(max(v, r.Min), r.Max)
}

// Load parses the embedded option lists.
func Load() (*Catalog, error) {
	return Parse(defaultOptions)
}

// Parse decodes a catalog document and rejects empty lists.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	lists := map[string][]string{
		"message_types":                c.MessageTypes,
		"target_demographics":          c.TargetDemographics,
		"tones":                        c.Tones,
		"complexity_levels":            c.ComplexityLevels,
		"profile.age_groups":           c.Profile.AgeGroups,
		"profile.education":            c.Profile.Education,
		"profile.professions":          c.Profile.Professions,
		"profile.locations":            c.Profile.Locations,
		"profile.communication_styles": c.Profile.CommunicationStyles,
		"quick_profile.ages":           c.QuickProfile.Ages,
		"quick_profile.contexts":       c.QuickProfile.Contexts,
		"quick_profile.relationships":  c.QuickProfile.Relationships,
		"cultures":                     c.Cultures,
		"focus_areas":                  c.FocusAreas,
		"context_types":                c.ContextTypes,
		"analysis_types":               c.AnalysisTypes,
		"comparison_demographics":      c.ComparisonGroups,
	}
	keys := make([]string, 0, len(lists))
	for k := range lists {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if len(lists[k]) == 0 {
			return fmt.Errorf("catalog: %s is empty", k)
		}
	}
	r := c.Profile.TechSavviness
	if r.Min >= r.Max || r.Default < r.Min || r.Default > r.Max {
		return fmt.Errorf("catalog: invalid tech_savviness range %d..%d (default %d)", r.Min, r.Max, r.Default)
	}
	return nil
}

// First is a list's preselected entry.
func First(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

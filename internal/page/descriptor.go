package page

import (
	"git.home.luguber.info/inful/seobuilder/internal/variation"
)

// Descriptor is the canonical record describing one generated page. It is
// treated as immutable once a catalogue has been built from it; derived views
// (links, metadata) are computed separately.
type Descriptor struct {
	ID          string               `yaml:"id" json:"id"`
	ShortName   string               `yaml:"short_name" json:"shortName"`
	Path        string               `yaml:"path" json:"path"`
	Category    Category             `yaml:"category" json:"category"`
	Title       string               `yaml:"title" json:"title"`
	Description string               `yaml:"description" json:"description"`
	Heading     string               `yaml:"heading" json:"heading"`
	Intro       string               `yaml:"intro" json:"intro"`
	Benefits    []string             `yaml:"benefits,omitempty" json:"benefits,omitempty"`
	CTA         *CallToAction        `yaml:"cta,omitempty" json:"cta,omitempty"`
	FAQ         []FAQ                `yaml:"faq,omitempty" json:"faq,omitempty"`
	HowTo       *HowTo               `yaml:"how_to,omitempty" json:"howTo,omitempty"`
	Prefill     map[string]string    `yaml:"prefill,omitempty" json:"prefill,omitempty"`
	RelatedIDs  []string             `yaml:"related,omitempty" json:"related,omitempty"`
	ParentID    string               `yaml:"parent,omitempty" json:"parent,omitempty"`
	HubID       string               `yaml:"hub,omitempty" json:"hub,omitempty"`
	Canonical   string               `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	Image       string               `yaml:"image,omitempty" json:"image,omitempty"`
	NoIndex     bool                 `yaml:"no_index,omitempty" json:"noIndex,omitempty"`
	Sitemap     *SitemapOverride     `yaml:"sitemap,omitempty" json:"sitemap,omitempty"`
	Variables   *variation.Variables `yaml:"variables,omitempty" json:"variables,omitempty"`

	// Source is the catalogue file the descriptor was loaded from, if any.
	Source string `yaml:"-" json:"-"`
}

// CallToAction points a page at the tool or page it promotes.
type CallToAction struct {
	Target string `yaml:"target" json:"target"`
	Label  string `yaml:"label" json:"label"`
}

// FAQ is a single question/answer pair.
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// HowTo is a step-by-step block.
type HowTo struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Step is one ordered how-to step.
type Step struct {
	Name string `yaml:"name" json:"name"`
	Text string `yaml:"text" json:"text"`
}

// SitemapOverride replaces the computed sitemap priority or change frequency.
type SitemapOverride struct {
	Priority   *float64 `yaml:"priority,omitempty" json:"priority,omitempty"`
	ChangeFreq string   `yaml:"change_freq,omitempty" json:"changeFreq,omitempty"`
}

// MakeID derives the stable identifier "category:shortname".
func MakeID(c Category, shortName string) string {
	return string(c) + ":" + shortName
}

// References returns every identifier the descriptor declares a link to, in
// declaration order: related pages, then parent, then hub.
func (d *Descriptor) References() []string {
	refs := make([]string, 0, len(d.RelatedIDs)+2)
	refs = append(refs, d.RelatedIDs...)
	if d.ParentID != "" {
		refs = append(refs, d.ParentID)
	}
	if d.HubID != "" {
		refs = append(refs, d.HubID)
	}
	return refs
}

// HasFAQ reports whether the descriptor carries at least one FAQ entry.
func (d *Descriptor) HasFAQ() bool { return len(d.FAQ) > 0 }

// DisplayName is the best short human label for breadcrumbs and anchors.
func (d *Descriptor) DisplayName() string {
	if d.Variables != nil && d.Variables.DisplayName != "" {
		return d.Variables.DisplayName
	}
	if d.Heading != "" {
		return d.Heading
	}
	return d.Title
}

package relevance

import (
	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// majorShortNames are well-known races and distances that outrank ordinary
// spokes in the sitemap.
var majorShortNames = map[string]bool{
	"boston":        true,
	"berlin":        true,
	"london":        true,
	"chicago":       true,
	"new-york":      true,
	"tokyo":         true,
	"sydney":        true,
	"marathon":      true,
	"half-marathon": true,
	"10k":           true,
	"5k":            true,
}

// IsMajor reports whether the short name is on the major allow-list.
func IsMajor(shortName string) bool { return majorShortNames[shortName] }

const (
	PriorityHub     = 0.9
	PriorityMajor   = 0.8
	PriorityFAQ     = 0.7
	PriorityDefault = 0.6
)

// SitemapPriority ranks d for the sitemap. A descriptor override always wins.
func SitemapPriority(hubs *page.HubSet, d *page.Descriptor) float64 {
	if d.Sitemap != nil && d.Sitemap.Priority != nil {
		return *d.Sitemap.Priority
	}
	switch {
	case hubs.IsHub(d):
		return PriorityHub
	case IsMajor(d.ShortName):
		return PriorityMajor
	case d.HasFAQ():
		return PriorityFAQ
	default:
		return PriorityDefault
	}
}

// ChangeFreq is the sitemap change frequency for d.
func ChangeFreq(hubs *page.HubSet, d *page.Descriptor) string {
	if d.Sitemap != nil && d.Sitemap.ChangeFreq != "" {
		return d.Sitemap.ChangeFreq
	}
	if hubs.IsHub(d) {
		return "daily"
	}
	switch d.Category {
	case page.CategoryRaceGuide:
		return "weekly"
	case page.CategoryBlogPost:
		return "monthly"
	case page.CategoryPaceTool, page.CategoryFuelTool, page.CategoryElevationTool:
		return "monthly"
	default:
		return "monthly"
	}
}

package quality

import (
	"fmt"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// MaxThinRatio is the share of thin pages above which publishing is blocked.
const MaxThinRatio = 0.10

// GateCounts are the per-reason tallies behind a gate decision.
type GateCounts struct {
	Pages           int `json:"pages"`
	MissingRequired int `json:"missingRequired"`
	DuplicatePaths  int `json:"duplicatePaths"`
	DuplicateIDs    int `json:"duplicateIds"`
	ThinPages       int `json:"thinPages"`
	BrokenLinks     int `json:"brokenLinks"`
	DuplicateGroups int `json:"duplicateGroups"`
	Orphans         int `json:"orphans"`
}

// GateResult is the pre-publish decision.
type GateResult struct {
	Passed   bool       `json:"passed"`
	Blocking []string   `json:"blocking"`
	Warnings []string   `json:"warnings"`
	Counts   GateCounts `json:"counts"`
}

// Gate runs over the whole catalogue and only then decides. It blocks on
// missing required fields, duplicate paths or identifiers and a thin-page
// share above MaxThinRatio. Catalogue-level findings become warnings.
func (v *Validator) Gate(pages []page.Descriptor, hubs *page.HubSet) GateResult {
	var c GateCounts
	c.Pages = len(pages)

	ids := make(map[string]int, len(pages))
	paths := make(map[string]int, len(pages))
	for i := range pages {
		d := &pages[i]
		if !v.ValidatePage(d).Valid {
			c.MissingRequired++
		}
		if d.ID != "" {
			ids[d.ID]++
			if ids[d.ID] == 2 {
				c.DuplicateIDs++
			}
		}
		if d.Path != "" {
			paths[d.Path]++
			if paths[d.Path] == 2 {
				c.DuplicatePaths++
			}
		}
		if v.isThin(d) {
			c.ThinPages++
		}
	}

	broken, orphans := v.LinkIntegrity(pages, hubs)
	c.BrokenLinks = len(broken)
	c.Orphans = len(orphans)
	c.DuplicateGroups = len(ExactDuplicates(pages, "title", titleOf)) + len(ExactDuplicates(pages, "description", descriptionOf))

	var res GateResult
	if c.MissingRequired > 0 {
		res.Blocking = append(res.Blocking, fmt.Sprintf("%d page(s) missing required fields", c.MissingRequired))
	}
	if c.DuplicatePaths > 0 {
		res.Blocking = append(res.Blocking, fmt.Sprintf("%d duplicate output path(s)", c.DuplicatePaths))
	}
	if c.DuplicateIDs > 0 {
		res.Blocking = append(res.Blocking, fmt.Sprintf("%d duplicate identifier(s)", c.DuplicateIDs))
	}
	if c.Pages > 0 {
		ratio := float64(c.ThinPages) / float64(c.Pages)
		if ratio > MaxThinRatio {
			res.Blocking = append(res.Blocking, fmt.Sprintf("%d thin page(s) (%.1f%% > %.0f%%)", c.ThinPages, ratio*100, MaxThinRatio*100))
		}
	}

	if c.BrokenLinks > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d broken link(s)", c.BrokenLinks))
	}
	if c.DuplicateGroups > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d duplicate content group(s)", c.DuplicateGroups))
	}
	if c.Orphans > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d orphan page(s)", c.Orphans))
	}

	res.Counts = c
	res.Passed = len(res.Blocking) == 0
	return res
}

package quality

import (
	"git.home.luguber.info/inful/seobuilder/internal/markdown"
	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/util/sets"
)

// LinkIntegrity resolves every declared reference and inline site link and
// finds orphan pages. Hubs are exempt from the orphan check.
func (v *Validator) LinkIntegrity(pages []page.Descriptor, hubs *page.HubSet) ([]BrokenLink, []string) {
	ids := sets.New[string]()
	paths := sets.New[string]("/")
	for i := range pages {
		ids.Add(pages[i].ID)
		if pages[i].Path != "" {
			paths.Add(markdown.NormalizePath(pages[i].Path))
		}
	}

	opts := markdown.Options{SiteURL: v.rules.SiteURL}
	inbound := sets.New[string]()
	var broken []BrokenLink

	for i := range pages {
		d := &pages[i]
		declared := []struct {
			field string
			ids   []string
		}{
			{"related", d.RelatedIDs},
			{"parent", nonEmpty(d.ParentID)},
			{"hub", nonEmpty(d.HubID)},
		}
		for _, ref := range declared {
			for _, target := range ref.ids {
				if !ids.Has(target) {
					broken = append(broken, BrokenLink{SourceID: d.ID, Field: ref.field, Target: target})
					continue
				}
				if target != d.ID {
					inbound.Add(target)
				}
			}
		}

		for _, p := range markdown.InternalPaths(d.Intro, opts) {
			if !paths.Has(p) {
				broken = append(broken, BrokenLink{SourceID: d.ID, Field: "intro", Target: p})
			}
		}
		for _, f := range d.FAQ {
			for _, p := range markdown.InternalPaths(f.Answer, opts) {
				if !paths.Has(p) {
					broken = append(broken, BrokenLink{SourceID: d.ID, Field: "faq", Target: p})
				}
			}
		}
	}

	var orphans []string
	for i := range pages {
		d := &pages[i]
		if hubs.IsHub(d) {
			continue
		}
		if !inbound.Has(d.ID) && len(d.RelatedIDs) == 0 {
			orphans = append(orphans, d.ID)
		}
	}
	return broken, orphans
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

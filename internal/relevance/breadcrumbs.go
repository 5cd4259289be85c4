package relevance

import (
	"strings"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

const guidesSegment = "guides"

// Breadcrumbs builds the trail Home, owning hub, optional Guides crumb, page.
// A hub page gets only the Home crumb.
func Breadcrumbs(hubs *page.HubSet, d *page.Descriptor) []Crumb {
	crumbs := []Crumb{{Name: "Home", Path: "/"}}
	if hubs.IsHub(d) {
		return crumbs
	}
	if hub, ok := hubs.ForCategory(d.Category); ok {
		crumbs = append(crumbs, Crumb{Name: hub.Title, Path: hub.Path})
	}
	if p, ok := guidesPath(d.Path); ok {
		crumbs = append(crumbs, Crumb{Name: "Guides", Path: p})
	}
	return append(crumbs, Crumb{Name: d.DisplayName(), Path: d.Path})
}

// guidesPath returns the path prefix up to and including the guides segment
// when it is not the final segment.
func guidesPath(p string) (string, bool) {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segs[:max(len(segs)-1, 0)] {
		if s == guidesSegment {
			return "/" + strings.Join(segs[:i+1], "/"), true
		}
	}
	return "", false
}

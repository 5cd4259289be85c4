package sitemap

import (
	"strings"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// Builder turns descriptors into sitemap entries.
type Builder struct {
	BaseURL    string
	Lastmod    LastmodResolver
	Priority   func(*page.Descriptor) float64
	ChangeFreq func(*page.Descriptor) string
}

// FromPages maps descriptors to URLs in catalogue order, skipping no-index
// pages. A canonical override replaces the page location.
func FromPages(pages []page.Descriptor, b Builder) []URL {
	base := strings.TrimRight(b.BaseURL, "/")
	out := make([]URL, 0, len(pages))
	for i := range pages {
		d := &pages[i]
		if d.NoIndex {
			continue
		}
		loc := d.Path
		if d.Canonical != "" {
			loc = d.Canonical
		}
		if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
			loc = base + loc
		}
		u := URL{Loc: loc}
		if b.Lastmod != nil {
			u.LastMod = b.Lastmod.Lastmod(d)
		}
		if b.Priority != nil {
			u.Priority = b.Priority(d)
		}
		if b.ChangeFreq != nil {
			u.ChangeFreq = ChangeFreq(b.ChangeFreq(d))
		}
		out = append(out, u)
	}
	return out
}

package structured

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

const (
	MaxTitleLength       = 60
	MaxDescriptionLength = 160

	ellipsis = "..."
)

// Social holds the social-preview fields of a page.
type Social struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Card        string `json:"card"`
	Site        string `json:"site,omitempty"`
}

// Discovery is the set of head tags that make a page discoverable.
type Discovery struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Canonical   string `json:"canonical"`
	Robots      string `json:"robots"`
	Social      Social `json:"social"`
}

// Tag is a single meta tag. Exactly one of Name or Property is set.
type Tag struct {
	Name     string `json:"name,omitempty"`
	Property string `json:"property,omitempty"`
	Content  string `json:"content"`
}

// Tags derives the discovery tags for d.
func (g *Generator) Tags(d *page.Descriptor) Discovery {
	title := TrimTitle(d.Title, g.site.Name, MaxTitleLength)
	desc := TrimDescription(d.Description, MaxDescriptionLength)
	canonical := g.pageURL(d)

	robots := "index, follow"
	if d.NoIndex {
		robots = "noindex, follow"
	}
	ogType := "website"
	if d.Category == page.CategoryBlogPost || d.Category == page.CategoryRaceGuide {
		ogType = "article"
	}

	return Discovery{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		Robots:      robots,
		Social: Social{
			Title:       title,
			Description: desc,
			Image:       g.image(d.Image),
			URL:         canonical,
			Type:        ogType,
			Card:        "summary_large_image",
			Site:        g.site.TwitterHandle,
		},
	}
}

// List flattens the discovery tags into meta entries.
func (d Discovery) List() []Tag {
	tags := []Tag{
		{Name: "description", Content: d.Description},
		{Name: "robots", Content: d.Robots},
		{Property: "og:title", Content: d.Social.Title},
		{Property: "og:description", Content: d.Social.Description},
		{Property: "og:type", Content: d.Social.Type},
		{Property: "og:url", Content: d.Social.URL},
	}
	if d.Social.Image != "" {
		tags = append(tags, Tag{Property: "og:image", Content: d.Social.Image})
	}
	tags = append(tags,
		Tag{Name: "twitter:card", Content: d.Social.Card},
		Tag{Name: "twitter:title", Content: d.Social.Title},
		Tag{Name: "twitter:description", Content: d.Social.Description},
	)
	if d.Social.Image != "" {
		tags = append(tags, Tag{Name: "twitter:image", Content: d.Social.Image})
	}
	if d.Social.Site != "" {
		tags = append(tags, Tag{Name: "twitter:site", Content: d.Social.Site})
	}
	return tags
}

// Head is the shape a head-management component consumes.
func (d Discovery) Head() map[string]any {
	return map[string]any{
		"title": d.Title,
		"meta":  d.List(),
		"link": []map[string]string{
			{"rel": "canonical", "href": d.Canonical},
		},
	}
}

// TrimTitle fits a title into max runes. A trailing " | brand" or
// " - brand" suffix is dropped first; if that is not enough the title is cut
// at a word boundary and an ellipsis appended.
func TrimTitle(title, brand string, max int) string {
	if runeLen(title) <= max {
		return title
	}
	if stripped, ok := stripBrand(title, brand); ok {
		title = stripped
		if runeLen(title) <= max {
			return title
		}
	}
	return truncateWords(title, max)
}

func stripBrand(title, brand string) (string, bool) {
	if brand != "" {
		for _, sep := range []string{" | ", " - "} {
			if strings.HasSuffix(title, sep+brand) {
				return strings.TrimSuffix(title, sep+brand), true
			}
		}
	}
	if i := strings.LastIndex(title, " | "); i > 0 {
		return title[:i], true
	}
	return title, false
}

// TrimDescription fits a description into max runes, preferring the last
// sentence end past 60% of the limit, then the last word boundary.
func TrimDescription(desc string, max int) string {
	r := []rune(desc)
	if len(r) <= max {
		return desc
	}
	window := r[:max]
	floor := max * 6 / 10
	for i := len(window) - 1; i >= floor; i-- {
		if !isSentenceEnd(window[i]) {
			continue
		}
		if i+1 == len(window) || unicode.IsSpace(window[i+1]) {
			return string(window[:i+1])
		}
	}
	return truncateWords(desc, max)
}

func isSentenceEnd(r rune) bool { return r == '.' || r == '!' || r == '?' }

// truncateWords cuts s to at most max runes including the ellipsis, at the
// last word boundary when there is one.
func truncateWords(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	limit := max - len(ellipsis)
	if limit <= 0 {
		return string(r[:max])
	}
	cut := r[:limit]
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	out := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == ':' || r == '-' || r == '|'
	})
	return out + ellipsis
}

func runeLen(s string) int { return len([]rune(s)) }

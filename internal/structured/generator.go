package structured

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/relevance"
)

// Site carries the site-wide facts every block needs.
type Site struct {
	Name          string
	BaseURL       string
	Logo          string
	DefaultImage  string
	TwitterHandle string
	Locale        string
}

// AbsURL joins a site path onto BaseURL. Absolute URLs pass through.
func (s Site) AbsURL(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	base := strings.TrimRight(s.BaseURL, "/")
	if p == "" || p == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

func (s Site) language() string {
	return strings.ReplaceAll(s.Locale, "_", "-")
}

// EventFacts is the optional race-event context for SportsEvent blocks.
type EventFacts struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Venue     string
	City      string
	Country   string
	Organizer string
	URL       string
	Image     string
}

// ArticleFacts is the optional editorial context for Article blocks.
type ArticleFacts struct {
	Author    string
	Published time.Time
	Modified  time.Time
	Image     string
	Section   string
	Keywords  []string
}

// BreadcrumbSource yields the crumb trail for a descriptor.
type BreadcrumbSource func(d *page.Descriptor) []relevance.Crumb

// Generator builds metadata blocks for descriptors. It holds no mutable
// state and never fails.
type Generator struct {
	site   Site
	hubs   *page.HubSet
	crumbs BreadcrumbSource
}

// NewGenerator creates a generator. A nil crumbs source uses
// relevance.Breadcrumbs over hubs.
func NewGenerator(site Site, hubs *page.HubSet, crumbs BreadcrumbSource) *Generator {
	if crumbs == nil {
		crumbs = func(d *page.Descriptor) []relevance.Crumb {
			return relevance.Breadcrumbs(hubs, d)
		}
	}
	return &Generator{site: site, hubs: hubs, crumbs: crumbs}
}

func (g *Generator) pageURL(d *page.Descriptor) string {
	if d.Canonical != "" {
		return g.site.AbsURL(d.Canonical)
	}
	return g.site.AbsURL(d.Path)
}

func (g *Generator) orgID() string  { return g.site.AbsURL("/") + "#organization" }
func (g *Generator) siteID() string { return g.site.AbsURL("/") + "#website" }

func (g *Generator) WebPage(d *page.Descriptor) *WebPage {
	u := g.pageURL(d)
	return &WebPage{
		Type:        KindWebPage,
		ID:          u + "#webpage",
		URL:         u,
		Name:        d.Title,
		Description: d.Description,
		InLanguage:  g.site.language(),
		IsPartOf:    &Ref{ID: g.siteID()},
		Breadcrumb:  &Ref{ID: u + "#breadcrumb"},
	}
}

func (g *Generator) Breadcrumbs(d *page.Descriptor) *BreadcrumbList {
	crumbs := g.crumbs(d)
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     g.site.AbsURL(c.Path),
		})
	}
	return &BreadcrumbList{
		Type:            KindBreadcrumbList,
		ID:              g.pageURL(d) + "#breadcrumb",
		ItemListElement: items,
	}
}

// FAQ returns nil when d has no FAQ entries.
func (g *Generator) FAQ(d *page.Descriptor) *FAQPage {
	if !d.HasFAQ() {
		return nil
	}
	qs := make([]Question, 0, len(d.FAQ))
	for _, f := range d.FAQ {
		qs = append(qs, Question{
			Type:           "Question",
			Name:           f.Question,
			AcceptedAnswer: Answer{Type: "Answer", Text: f.Answer},
		})
	}
	return &FAQPage{Type: KindFAQPage, MainEntity: qs}
}

// HowTo returns nil when d has no how-to block.
func (g *Generator) HowTo(d *page.Descriptor) *HowTo {
	if d.HowTo == nil || len(d.HowTo.Steps) == 0 {
		return nil
	}
	steps := make([]HowToStep, 0, len(d.HowTo.Steps))
	for i, s := range d.HowTo.Steps {
		steps = append(steps, HowToStep{Type: "HowToStep", Position: i + 1, Name: s.Name, Text: s.Text})
	}
	return &HowTo{
		Type:        KindHowTo,
		Name:        d.HowTo.Name,
		Description: d.HowTo.Description,
		Step:        steps,
	}
}

func (g *Generator) SportsEvent(d *page.Descriptor, ev EventFacts) *SportsEvent {
	name := ev.Name
	if name == "" {
		name = d.Title
	}
	venue := ev.Venue
	if venue == "" {
		venue = ev.City
	}
	e := &SportsEvent{
		Type:                KindSportsEvent,
		Name:                name,
		Description:         d.Description,
		URL:                 g.pageURL(d),
		StartDate:           formatDate(ev.StartDate),
		EndDate:             formatDate(ev.EndDate),
		Sport:               "Running",
		EventStatus:         "https://schema.org/EventScheduled",
		EventAttendanceMode: "https://schema.org/OfflineEventAttendanceMode",
		Location: Place{
			Type: "Place",
			Name: venue,
			Address: PostalAddress{
				Type:            "PostalAddress",
				AddressLocality: ev.City,
				AddressCountry:  ev.Country,
			},
		},
		Image: g.image(ev.Image, d.Image),
	}
	if ev.Organizer != "" {
		e.Organizer = &Organizer{Type: "Organization", Name: ev.Organizer, URL: ev.URL}
	}
	return e
}

// Article emits a BlogPosting for blog posts and an Article otherwise.
func (g *Generator) Article(d *page.Descriptor, af ArticleFacts) *Article {
	kind := KindArticle
	if d.Category == page.CategoryBlogPost {
		kind = KindBlogPosting
	}
	author := af.Author
	if author == "" {
		author = g.site.Name
	}
	return &Article{
		Type:             kind,
		Headline:         truncateWords(d.Title, 110),
		Description:      d.Description,
		Image:            g.image(af.Image, d.Image),
		Author:           Person{Type: "Person", Name: author},
		DatePublished:    formatTimestamp(af.Published),
		DateModified:     formatTimestamp(af.Modified),
		ArticleSection:   af.Section,
		Keywords:         af.Keywords,
		MainEntityOfPage: Ref{ID: g.pageURL(d) + "#webpage"},
		Publisher:        &Ref{ID: g.orgID()},
	}
}

// SoftwareApplication returns nil for non-tool categories.
func (g *Generator) SoftwareApplication(d *page.Descriptor) *SoftwareApplication {
	if !d.Category.IsTool() {
		return nil
	}
	return &SoftwareApplication{
		Type:                KindSoftwareApplication,
		Name:                d.Title,
		Description:         d.Description,
		URL:                 g.pageURL(d),
		ApplicationCategory: "SportsApplication",
		OperatingSystem:     "Web",
		Offers:              Offer{Type: "Offer", Price: "0", PriceCurrency: "USD"},
	}
}

func (g *Generator) Organization() *Organization {
	o := &Organization{
		Type: KindOrganization,
		ID:   g.orgID(),
		Name: g.site.Name,
		URL:  g.site.AbsURL("/"),
	}
	if g.site.Logo != "" {
		o.Logo = &ImageObject{Type: "ImageObject", URL: g.site.AbsURL(g.site.Logo)}
	}
	if g.site.TwitterHandle != "" {
		o.SameAs = []string{"https://twitter.com/" + strings.TrimPrefix(g.site.TwitterHandle, "@")}
	}
	return o
}

func (g *Generator) WebSite() *WebSite {
	return &WebSite{
		Type:       KindWebSite,
		ID:         g.siteID(),
		Name:       g.site.Name,
		URL:        g.site.AbsURL("/"),
		InLanguage: g.site.language(),
		Publisher:  &Ref{ID: g.orgID()},
	}
}

// image resolves the first non-empty candidate, falling back to the site
// default image.
func (g *Generator) image(candidates ...string) string {
	img := g.site.DefaultImage
	for _, c := range candidates {
		if c != "" {
			img = c
			break
		}
	}
	if img == "" {
		return ""
	}
	return g.site.AbsURL(img)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

package structured

// Kind is the closed set of structured-data block types.
type Kind string

const (
	KindWebPage             Kind = "WebPage"
	KindBreadcrumbList      Kind = "BreadcrumbList"
	KindFAQPage             Kind = "FAQPage"
	KindHowTo               Kind = "HowTo"
	KindSportsEvent         Kind = "SportsEvent"
	KindArticle             Kind = "Article"
	KindBlogPosting         Kind = "BlogPosting"
	KindOrganization        Kind = "Organization"
	KindWebSite             Kind = "WebSite"
	KindSoftwareApplication Kind = "SoftwareApplication"
)

// Block is one node of a metadata graph. Only types in this package
// implement it.
type Block interface {
	BlockKind() Kind
	block()
}

// Ref points at another node by @id.
type Ref struct {
	ID string `json:"@id"`
}

type WebPage struct {
	Type        Kind   `json:"@type"`
	ID          string `json:"@id"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InLanguage  string `json:"inLanguage,omitempty"`
	IsPartOf    *Ref   `json:"isPartOf,omitempty"`
	Breadcrumb  *Ref   `json:"breadcrumb,omitempty"`
}

type BreadcrumbList struct {
	Type            Kind       `json:"@type"`
	ID              string     `json:"@id,omitempty"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type FAQPage struct {
	Type       Kind       `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type HowTo struct {
	Type        Kind        `json:"@type"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Step        []HowToStep `json:"step"`
}

type HowToStep struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type SportsEvent struct {
	Type                Kind       `json:"@type"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	URL                 string     `json:"url,omitempty"`
	StartDate           string     `json:"startDate"`
	EndDate             string     `json:"endDate,omitempty"`
	Sport               string     `json:"sport"`
	EventStatus         string     `json:"eventStatus"`
	EventAttendanceMode string     `json:"eventAttendanceMode"`
	Location            Place      `json:"location"`
	Organizer           *Organizer `json:"organizer,omitempty"`
	Image               string     `json:"image,omitempty"`
}

type Place struct {
	Type    string        `json:"@type"`
	Name    string        `json:"name"`
	Address PostalAddress `json:"address"`
}

type PostalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type Organizer struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Article struct {
	Type             Kind     `json:"@type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description,omitempty"`
	Image            string   `json:"image,omitempty"`
	Author           Person   `json:"author"`
	DatePublished    string   `json:"datePublished,omitempty"`
	DateModified     string   `json:"dateModified,omitempty"`
	ArticleSection   string   `json:"articleSection,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	MainEntityOfPage Ref      `json:"mainEntityOfPage"`
	Publisher        *Ref     `json:"publisher,omitempty"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Organization struct {
	Type   Kind         `json:"@type"`
	ID     string       `json:"@id"`
	Name   string       `json:"name"`
	URL    string       `json:"url"`
	Logo   *ImageObject `json:"logo,omitempty"`
	SameAs []string     `json:"sameAs,omitempty"`
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type WebSite struct {
	Type       Kind   `json:"@type"`
	ID         string `json:"@id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	InLanguage string `json:"inLanguage,omitempty"`
	Publisher  *Ref   `json:"publisher,omitempty"`
}

type SoftwareApplication struct {
	Type                Kind   `json:"@type"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	URL                 string `json:"url"`
	ApplicationCategory string `json:"applicationCategory"`
	OperatingSystem     string `json:"operatingSystem"`
	Offers              Offer  `json:"offers"`
}

type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

func (*WebPage) BlockKind() Kind             { return KindWebPage }
func (*BreadcrumbList) BlockKind() Kind      { return KindBreadcrumbList }
func (*FAQPage) BlockKind() Kind             { return KindFAQPage }
func (*HowTo) BlockKind() Kind               { return KindHowTo }
func (*SportsEvent) BlockKind() Kind         { return KindSportsEvent }
func (a *Article) BlockKind() Kind           { return a.Type }
func (*Organization) BlockKind() Kind        { return KindOrganization }
func (*WebSite) BlockKind() Kind             { return KindWebSite }
func (*SoftwareApplication) BlockKind() Kind { return KindSoftwareApplication }

func (*WebPage) block()             {}
func (*BreadcrumbList) block()      {}
func (*FAQPage) block()             {}
func (*HowTo) block()               {}
func (*SportsEvent) block()         {}
func (*Article) block()             {}
func (*Organization) block()        {}
func (*WebSite) block()             {}
func (*SoftwareApplication) block() {}

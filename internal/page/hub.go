package page

import "fmt"

// HubConfig describes a category landing page and the spokes it groups.
type HubConfig struct {
	ID            string        `yaml:"id" json:"id"`
	Category      Category      `yaml:"category" json:"category"`
	Path          string        `yaml:"path" json:"path"`
	Title         string        `yaml:"title" json:"title"`
	Description   string        `yaml:"description" json:"description"`
	Heading       string        `yaml:"heading,omitempty" json:"heading,omitempty"`
	Intro         string        `yaml:"intro,omitempty" json:"intro,omitempty"`
	Benefits      []string      `yaml:"benefits,omitempty" json:"benefits,omitempty"`
	SubCategories []SubCategory `yaml:"sub_categories,omitempty" json:"subCategories,omitempty"`
}

// SubCategory is a named group of spoke identifiers on a hub page.
type SubCategory struct {
	Name     string   `yaml:"name" json:"name"`
	SpokeIDs []string `yaml:"spokes" json:"spokes"`
}

// SpokeIDs returns every spoke across sub-categories, in order, deduplicated.
func (h HubConfig) SpokeIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sc := range h.SubCategories {
		for _, id := range sc.SpokeIDs {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Descriptor renders the hub as a page descriptor so it can take part in the
// catalogue like any other page.
func (h HubConfig) Descriptor() Descriptor {
	return Descriptor{
		ID:          h.ID,
		ShortName:   shortNameOf(h.ID),
		Path:        h.Path,
		Category:    h.Category,
		Title:       h.Title,
		Description: h.Description,
		Heading:     h.Heading,
		Intro:       h.Intro,
		Benefits:    h.Benefits,
		RelatedIDs:  h.SpokeIDs(),
	}
}

func shortNameOf(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == ':' {
			return id[i+1:]
		}
	}
	return id
}

// HubSet is the immutable collection of hubs, one per category, passed
// explicitly to the relevance engine and the metadata generator.
type HubSet struct {
	byCategory map[Category]HubConfig
	byID       map[string]HubConfig
	byPath     map[string]HubConfig
	order      []Category
}

// NewHubSet validates and indexes hubs. At most one hub per category.
func NewHubSet(hubs ...HubConfig) (*HubSet, error) {
	hs := &HubSet{
		byCategory: make(map[Category]HubConfig, len(hubs)),
		byID:       make(map[string]HubConfig, len(hubs)),
		byPath:     make(map[string]HubConfig, len(hubs)),
	}
	for _, h := range hubs {
		if !h.Category.Valid() {
			return nil, fmt.Errorf("hub %q: invalid category %q", h.ID, h.Category)
		}
		if h.ID == "" || h.Path == "" {
			return nil, fmt.Errorf("hub for %s requires id and path", h.Category)
		}
		if _, dup := hs.byCategory[h.Category]; dup {
			return nil, fmt.Errorf("duplicate hub for category %s", h.Category)
		}
		if _, dup := hs.byPath[h.Path]; dup {
			return nil, fmt.Errorf("duplicate hub path %s", h.Path)
		}
		h.SubCategories = cloneSubCategories(h.SubCategories)
		h.Benefits = append([]string(nil), h.Benefits...)
		hs.byCategory[h.Category] = h
		hs.byID[h.ID] = h
		hs.byPath[h.Path] = h
		hs.order = append(hs.order, h.Category)
	}
	return hs, nil
}

func cloneSubCategories(in []SubCategory) []SubCategory {
	out := make([]SubCategory, len(in))
	for i, sc := range in {
		out[i] = SubCategory{Name: sc.Name, SpokeIDs: append([]string(nil), sc.SpokeIDs...)}
	}
	return out
}

// ForCategory returns the hub owning category c.
func (hs *HubSet) ForCategory(c Category) (HubConfig, bool) {
	if hs == nil {
		return HubConfig{}, false
	}
	h, ok := hs.byCategory[c]
	return h, ok
}

// ByID returns the hub with identifier id.
func (hs *HubSet) ByID(id string) (HubConfig, bool) {
	if hs == nil {
		return HubConfig{}, false
	}
	h, ok := hs.byID[id]
	return h, ok
}

// IsHub reports whether d is itself a hub page (matched by ID or exact path).
func (hs *HubSet) IsHub(d *Descriptor) bool {
	if hs == nil || d == nil {
		return false
	}
	if _, ok := hs.byID[d.ID]; ok {
		return true
	}
	_, ok := hs.byPath[d.Path]
	return ok
}

// All returns the hubs in construction order.
func (hs *HubSet) All() []HubConfig {
	if hs == nil {
		return nil
	}
	out := make([]HubConfig, 0, len(hs.order))
	for _, c := range hs.order {
		out = append(out, hs.byCategory[c])
	}
	return out
}

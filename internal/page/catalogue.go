package page

import (
	"fmt"
	"strings"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
)

type shortKey struct {
	category  Category
	shortName string
}

// Catalogue is the ordered, indexed, read-only set of page descriptors.
type Catalogue struct {
	pages   []Descriptor
	byID    map[string]int
	byShort map[shortKey]int
	byPath  map[string]int
}

// NewCatalogue copies pages into a catalogue after checking every descriptor
// invariant. All violations are collected into a single catalogue error.
func NewCatalogue(pages []Descriptor) (*Catalogue, error) {
	c := &Catalogue{
		pages:   make([]Descriptor, len(pages)),
		byID:    make(map[string]int, len(pages)),
		byShort: make(map[shortKey]int, len(pages)),
		byPath:  make(map[string]int, len(pages)),
	}
	copy(c.pages, pages)

	violations := CheckInvariants(c.pages)
	if len(violations) > 0 {
		return nil, seoerrors.CatalogueInvariant(violations)
	}

	for i := range c.pages {
		d := &c.pages[i]
		c.byID[d.ID] = i
		c.byShort[shortKey{d.Category, d.ShortName}] = i
		c.byPath[d.Path] = i
	}
	return c, nil
}

// MustCatalogue is NewCatalogue for fixtures known to be valid.
func MustCatalogue(pages []Descriptor) *Catalogue {
	c, err := NewCatalogue(pages)
	if err != nil {
		panic(err)
	}
	return c
}

// CheckInvariants returns a human-readable line per violated descriptor
// invariant. It never stops at the first problem.
func CheckInvariants(pages []Descriptor) []string {
	var out []string
	ids := make(map[string]int, len(pages))
	paths := make(map[string]string, len(pages))
	shorts := make(map[shortKey]string, len(pages))

	for i := range pages {
		d := &pages[i]
		label := d.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if d.ID == "" {
			out = append(out, fmt.Sprintf("%s: missing id", label))
		} else if ids[d.ID] > 0 {
			out = append(out, fmt.Sprintf("%s: duplicate id", label))
		}
		ids[d.ID]++

		if !d.Category.Valid() {
			out = append(out, fmt.Sprintf("%s: invalid category %q", label, d.Category))
		}
		if d.Path == "" {
			out = append(out, fmt.Sprintf("%s: missing path", label))
		} else if prev, dup := paths[d.Path]; dup {
			out = append(out, fmt.Sprintf("%s: path %s already used by %s", label, d.Path, prev))
		} else {
			paths[d.Path] = label
		}
		if d.ShortName != "" {
			k := shortKey{d.Category, d.ShortName}
			if prev, dup := shorts[k]; dup {
				out = append(out, fmt.Sprintf("%s: short name %q already used by %s in %s", label, d.ShortName, prev, d.Category))
			} else {
				shorts[k] = label
			}
		}
		if strings.TrimSpace(d.Title) == "" {
			out = append(out, fmt.Sprintf("%s: missing title", label))
		}
		if strings.TrimSpace(d.Description) == "" {
			out = append(out, fmt.Sprintf("%s: missing description", label))
		}
		if d.HowTo != nil && len(d.HowTo.Steps) == 0 {
			out = append(out, fmt.Sprintf("%s: how-to has no steps", label))
		}
		for j, f := range d.FAQ {
			if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
				out = append(out, fmt.Sprintf("%s: faq[%d] needs question and answer", label, j))
			}
		}
	}
	return out
}

// Get returns the descriptor with identifier id.
func (c *Catalogue) Get(id string) (*Descriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.pages[i], true
}

// ByShortName looks a descriptor up by category and short name.
func (c *Catalogue) ByShortName(cat Category, name string) (*Descriptor, bool) {
	i, ok := c.byShort[shortKey{cat, name}]
	if !ok {
		return nil, false
	}
	return &c.pages[i], true
}

// ByPath looks a descriptor up by its output path.
func (c *Catalogue) ByPath(path string) (*Descriptor, bool) {
	i, ok := c.byPath[path]
	if !ok {
		return nil, false
	}
	return &c.pages[i], true
}

// All returns a copy of the ordered descriptor slice.
func (c *Catalogue) All() []Descriptor {
	out := make([]Descriptor, len(c.pages))
	copy(out, c.pages)
	return out
}

// Len is the number of descriptors.
func (c *Catalogue) Len() int { return len(c.pages) }

// ByCategory returns the descriptors in category cat, in catalogue order.
func (c *Catalogue) ByCategory(cat Category) []Descriptor {
	var out []Descriptor
	for i := range c.pages {
		if c.pages[i].Category == cat {
			out = append(out, c.pages[i])
		}
	}
	return out
}

// Categories lists the non-empty categories in canonical order.
func (c *Catalogue) Categories() []Category {
	present := make(map[Category]bool)
	for i := range c.pages {
		present[c.pages[i].Category] = true
	}
	var out []Category
	for _, cat := range Categories() {
		if present[cat] {
			out = append(out, cat)
		}
	}
	return out
}

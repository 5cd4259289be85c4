package page

import "fmt"

// Category is the closed set of page kinds the catalogue may hold.
type Category string

const (
	CategoryPaceTool      Category = "pace-tool"
	CategoryFuelTool      Category = "fuel-tool"
	CategoryElevationTool Category = "elevation-tool"
	CategoryRaceGuide     Category = "race-guide"
	CategoryBlogPost      Category = "blog-post"
)

// Categories returns every category in canonical order.
func Categories() []Category {
	return []Category{
		CategoryPaceTool,
		CategoryFuelTool,
		CategoryElevationTool,
		CategoryRaceGuide,
		CategoryBlogPost,
	}
}

// ParseCategory validates a raw category tag.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown page category %q", s)
	}
	return c, nil
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPaceTool, CategoryFuelTool, CategoryElevationTool, CategoryRaceGuide, CategoryBlogPost:
		return true
	default:
		return false
	}
}

// IsTool reports whether pages of this category front an interactive tool.
func (c Category) IsTool() bool {
	switch c {
	case CategoryPaceTool, CategoryFuelTool, CategoryElevationTool:
		return true
	case CategoryRaceGuide, CategoryBlogPost:
		return false
	default:
		return false
	}
}

// Label is the human-readable name used in breadcrumbs and reports.
func (c Category) Label() string {
	switch c {
	case CategoryPaceTool:
		return "Pace Calculator"
	case CategoryFuelTool:
		return "Fuel Planner"
	case CategoryElevationTool:
		return "Elevation"
	case CategoryRaceGuide:
		return "Races"
	case CategoryBlogPost:
		return "Blog"
	default:
		return string(c)
	}
}

// Index is the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, k := range Categories() {
		if k == c {
			return i
		}
	}
	return -1
}

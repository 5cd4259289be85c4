package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/variation"
)

func desc(cat Category, short, path string) Descriptor {
	return Descriptor{
		ID:          MakeID(cat, short),
		ShortName:   short,
		Path:        path,
		Category:    cat,
		Title:       "Title for " + short,
		Description: "Description for " + short,
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCategory("podcast")
	assert.Error(t, err)
}

func TestMakeID(t *testing.T) {
	assert.Equal(t, "race-guide:berlin", MakeID(CategoryRaceGuide, "berlin"))
}

func TestNewCatalogue_Indices(t *testing.T) {
	pages := []Descriptor{
		desc(CategoryRaceGuide, "berlin", "/races/berlin"),
		desc(CategoryPaceTool, "marathon-sub-3", "/calculator/marathon/sub-3"),
		desc(CategoryRaceGuide, "boston", "/races/boston"),
	}
	c, err := NewCatalogue(pages)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	d, ok := c.Get("race-guide:boston")
	require.True(t, ok)
	assert.Equal(t, "/races/boston", d.Path)

	d, ok = c.ByShortName(CategoryPaceTool, "marathon-sub-3")
	require.True(t, ok)
	assert.Equal(t, "pace-tool:marathon-sub-3", d.ID)

	d, ok = c.ByPath("/races/berlin")
	require.True(t, ok)
	assert.Equal(t, "berlin", d.ShortName)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	assert.Len(t, c.ByCategory(CategoryRaceGuide), 2)
	assert.Equal(t, []Category{CategoryPaceTool, CategoryRaceGuide}, c.Categories())
}

func TestNewCatalogue_AllIsCopy(t *testing.T) {
	c := MustCatalogue([]Descriptor{desc(CategoryBlogPost, "taper", "/blog/taper")})
	all := c.All()
	all[0].Title = "changed"
	d, _ := c.Get("blog-post:taper")
	assert.Equal(t, "Title for taper", d.Title)
}

func TestNewCatalogue_CollectsAllViolations(t *testing.T) {
	bad := desc(CategoryFuelTool, "gels", "/fuel/gels")
	bad.Title = ""
	bad.HowTo = &HowTo{Name: "empty"}
	bad.FAQ = []FAQ{{Question: "How many?", Answer: ""}}

	pages := []Descriptor{
		desc(CategoryRaceGuide, "berlin", "/races/berlin"),
		desc(CategoryRaceGuide, "berlin", "/races/berlin"),
		bad,
	}
	_, err := NewCatalogue(pages)
	require.Error(t, err)
	assert.True(t, seoerrors.IsCategory(err, seoerrors.CategoryCatalogue))

	violations := CheckInvariants(pages)
	assert.Contains(t, violations, "race-guide:berlin: duplicate id")
	assert.Contains(t, violations, "race-guide:berlin: path /races/berlin already used by race-guide:berlin")
	assert.Contains(t, violations, "fuel-tool:gels: missing title")
	assert.Contains(t, violations, "fuel-tool:gels: how-to has no steps")
	assert.Contains(t, violations, "fuel-tool:gels: faq[0] needs question and answer")
}

func TestCheckInvariants_SameShortNameAcrossCategories(t *testing.T) {
	pages := []Descriptor{
		desc(CategoryRaceGuide, "berlin", "/races/berlin"),
		desc(CategoryElevationTool, "berlin", "/elevation/berlin"),
	}
	assert.Empty(t, CheckInvariants(pages))
}

func TestHubSet(t *testing.T) {
	pace := HubConfig{
		ID:       MakeID(CategoryPaceTool, "hub"),
		Category: CategoryPaceTool,
		Path:     "/calculator",
		Title:    "Pace Calculator",
		SubCategories: []SubCategory{
			{Name: "Marathon", SpokeIDs: []string{"pace-tool:a", "pace-tool:b"}},
			{Name: "Half", SpokeIDs: []string{"pace-tool:b", "pace-tool:c"}},
		},
	}
	hs, err := NewHubSet(pace)
	require.NoError(t, err)

	h, ok := hs.ForCategory(CategoryPaceTool)
	require.True(t, ok)
	assert.Equal(t, []string{"pace-tool:a", "pace-tool:b", "pace-tool:c"}, h.SpokeIDs())

	hd := h.Descriptor()
	assert.Equal(t, "hub", hd.ShortName)
	assert.True(t, hs.IsHub(&hd))

	other := desc(CategoryPaceTool, "x", "/calculator/guides/x")
	assert.False(t, hs.IsHub(&other))

	_, err = NewHubSet(pace, pace)
	assert.Error(t, err)
}

func TestDescriptor_Helpers(t *testing.T) {
	d := desc(CategoryRaceGuide, "berlin", "/races/berlin")
	d.RelatedIDs = []string{"elevation-tool:berlin"}
	d.HubID = "race-guide:hub"
	assert.Equal(t, []string{"elevation-tool:berlin", "race-guide:hub"}, d.References())

	assert.Equal(t, "Title for berlin", d.DisplayName())
	d.Variables = &variation.Variables{DisplayName: "Berlin Marathon"}
	assert.Equal(t, "Berlin Marathon", d.DisplayName())

	l := LinkTo(&d, nil)
	assert.Equal(t, "Title for berlin", l.AnchorText())
	l.Anchor = "Berlin"
	assert.Equal(t, "Berlin", l.AnchorText())
}

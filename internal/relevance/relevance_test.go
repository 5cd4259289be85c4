package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

func spoke(cat page.Category, short, path, title string) page.Descriptor {
	return page.Descriptor{
		ID:          page.MakeID(cat, short),
		ShortName:   short,
		Path:        path,
		Category:    cat,
		Title:       title,
		Description: title,
	}
}

func fixture(t *testing.T) (*page.Catalogue, *page.HubSet) {
	t.Helper()
	paceHub := page.HubConfig{
		ID:          page.MakeID(page.CategoryPaceTool, "hub"),
		Category:    page.CategoryPaceTool,
		Path:        "/calculator",
		Title:       "Pace Calculator",
		Description: "Pace calculators for every distance.",
		SubCategories: []page.SubCategory{
			{Name: "Marathon", SpokeIDs: []string{"pace-tool:marathon-sub-3", "pace-tool:ghost"}},
			{Name: "Guides", SpokeIDs: []string{"pace-tool:x"}},
		},
	}
	raceHub := page.HubConfig{
		ID:          page.MakeID(page.CategoryRaceGuide, "hub"),
		Category:    page.CategoryRaceGuide,
		Path:        "/races",
		Title:       "Race Guides",
		Description: "Course guides for major marathons.",
	}
	hubs, err := page.NewHubSet(paceHub, raceHub)
	require.NoError(t, err)

	pages := []page.Descriptor{
		paceHub.Descriptor(),
		raceHub.Descriptor(),
		spoke(page.CategoryPaceTool, "marathon-sub-3", "/calculator/marathon/sub-3", "Sub 3 Marathon Pace Calculator"),
		spoke(page.CategoryPaceTool, "half-sub-90", "/calculator/half-marathon/sub-90", "Sub 90 Half Marathon Pace"),
		spoke(page.CategoryPaceTool, "x", "/calculator/guides/x", "Negative Split Pacing Guide"),
		spoke(page.CategoryRaceGuide, "berlin", "/races/berlin", "Berlin Marathon Race Guide"),
		spoke(page.CategoryFuelTool, "gels", "/fuel/gels", "Marathon Gel Fueling Plan"),
	}
	return page.MustCatalogue(pages), hubs
}

func TestExtractTopics(t *testing.T) {
	d := spoke(page.CategoryRaceGuide, "berlin", "/races/berlin", "Berlin Marathon Race Guide")
	d.Intro = "A flat course with almost no elevation gain and fast splits."
	assert.Equal(t, []string{"berlin", "elevation", "marathon", "pace"}, ExtractTopics(&d))

	half := spoke(page.CategoryPaceTool, "half-sub-90", "/p", "Half Marathon in 90 minutes")
	assert.Contains(t, ExtractTopics(&half), "half-marathon")

	none := spoke(page.CategoryBlogPost, "misc", "/blog/misc", "Thoughts")
	assert.Empty(t, ExtractTopics(&none))
}

func TestExtractTopics_MatchesInsideWords(t *testing.T) {
	d := spoke(page.CategoryBlogPost, "stems", "/blog/stems", "Climbing plans for the marathoner")
	assert.Equal(t, []string{"elevation", "marathon", "training"}, ExtractTopics(&d))
}

func TestRelevance_Symmetric(t *testing.T) {
	c, _ := fixture(t)
	all := c.All()
	for i := range all {
		for j := range all {
			assert.InDelta(t, Relevance(&all[i], &all[j]), Relevance(&all[j], &all[i]), 1e-12)
		}
	}
}

func TestRelevance_CategoryBonusWithoutTopics(t *testing.T) {
	a := spoke(page.CategoryBlogPost, "a", "/blog/a", "Thoughts")
	b := spoke(page.CategoryBlogPost, "b", "/blog/b", "Musings")
	assert.InDelta(t, 0.3, Relevance(&a, &b), 1e-12)

	c := spoke(page.CategoryRaceGuide, "c", "/races/c", "Musings")
	assert.InDelta(t, 0.0, Relevance(&a, &c), 1e-12)
}

func TestRelevance_Capped(t *testing.T) {
	a := spoke(page.CategoryPaceTool, "a", "/a", "Marathon pace")
	b := spoke(page.CategoryPaceTool, "b", "/b", "Marathon pace")
	assert.InDelta(t, 1.0, Relevance(&a, &b), 1e-12)
}

func TestFindRelated(t *testing.T) {
	c, hubs := fixture(t)
	e := NewEngine(c, hubs, DefaultOptions())
	d, _ := c.Get("pace-tool:marathon-sub-3")

	links := e.FindRelated(d, Options{Limit: 10, MinRelevance: 0.1})
	require.NotEmpty(t, links)
	for _, l := range links {
		assert.NotEqual(t, d.ID, l.TargetID)
	}
	for i := 1; i < len(links); i++ {
		assert.GreaterOrEqual(t, *links[i-1].Score, *links[i].Score)
	}

	same := e.FindRelated(d, Options{Limit: 10, SameCategoryOnly: true, ExcludeIDs: []string{"pace-tool:hub"}})
	for _, l := range same {
		got, _ := c.Get(l.TargetID)
		assert.Equal(t, page.CategoryPaceTool, got.Category)
		assert.NotEqual(t, "pace-tool:hub", l.TargetID)
	}

	limited := e.FindRelated(d, Options{Limit: 1})
	assert.Len(t, limited, 1)
}

func TestFindRelated_LoneCategory(t *testing.T) {
	c := page.MustCatalogue([]page.Descriptor{
		spoke(page.CategoryFuelTool, "gels", "/fuel/gels", "Gel plan"),
		spoke(page.CategoryBlogPost, "misc", "/blog/misc", "Thoughts"),
	})
	hubs, err := page.NewHubSet()
	require.NoError(t, err)
	e := NewEngine(c, hubs, DefaultOptions())
	d, _ := c.Get("fuel-tool:gels")
	assert.Empty(t, e.FindRelated(d, Options{SameCategoryOnly: true, MinRelevance: 0.1}))
}

func TestFindRelated_Deterministic(t *testing.T) {
	c, hubs := fixture(t)
	e := NewEngine(c, hubs, DefaultOptions())
	d, _ := c.Get("pace-tool:x")
	assert.Equal(t, e.FindRelated(d, DefaultOptions()), e.FindRelated(d, DefaultOptions()))
}

func TestHubAndSpokeLinks(t *testing.T) {
	c, hubs := fixture(t)
	e := NewEngine(c, hubs, DefaultOptions())

	hub, _ := hubs.ForCategory(page.CategoryPaceTool)
	links := e.HubLinks(hub)
	require.Len(t, links, 2)
	assert.Equal(t, "pace-tool:marathon-sub-3", links[0].TargetID)
	assert.Equal(t, "pace-tool:x", links[1].TargetID)

	d, _ := c.Get("pace-tool:half-sub-90")
	spokes := e.SpokeLinks(d)
	require.NotEmpty(t, spokes)
	assert.Equal(t, "pace-tool:hub", spokes[0].TargetID)
	for _, l := range spokes[1:] {
		assert.NotEqual(t, "pace-tool:hub", l.TargetID)
	}

	graph := e.LinkGraph()
	assert.Len(t, graph, c.Len())
	assert.Equal(t, links, graph["pace-tool:hub"])
}

func TestBreadcrumbs(t *testing.T) {
	c, hubs := fixture(t)

	x, _ := c.Get("pace-tool:x")
	assert.Equal(t, []Crumb{
		{Name: "Home", Path: "/"},
		{Name: "Pace Calculator", Path: "/calculator"},
		{Name: "Guides", Path: "/calculator/guides"},
		{Name: "Negative Split Pacing Guide", Path: "/calculator/guides/x"},
	}, Breadcrumbs(hubs, x))

	berlin, _ := c.Get("race-guide:berlin")
	assert.Equal(t, []Crumb{
		{Name: "Home", Path: "/"},
		{Name: "Race Guides", Path: "/races"},
		{Name: "Berlin Marathon Race Guide", Path: "/races/berlin"},
	}, Breadcrumbs(hubs, berlin))

	hub, _ := c.Get("pace-tool:hub")
	assert.Equal(t, []Crumb{{Name: "Home", Path: "/"}}, Breadcrumbs(hubs, hub))
}

func TestSitemapPriority(t *testing.T) {
	c, hubs := fixture(t)

	hub, _ := c.Get("race-guide:hub")
	assert.InDelta(t, PriorityHub, SitemapPriority(hubs, hub), 1e-12)

	berlin, _ := c.Get("race-guide:berlin")
	assert.InDelta(t, PriorityMajor, SitemapPriority(hubs, berlin), 1e-12)

	withFAQ := spoke(page.CategoryFuelTool, "salt", "/fuel/salt", "Salt")
	withFAQ.FAQ = []page.FAQ{{Question: "q", Answer: "a"}}
	assert.InDelta(t, PriorityFAQ, SitemapPriority(hubs, &withFAQ), 1e-12)

	plain := spoke(page.CategoryFuelTool, "water", "/fuel/water", "Water")
	assert.InDelta(t, PriorityDefault, SitemapPriority(hubs, &plain), 1e-12)

	p := 0.25
	plain.Sitemap = &page.SitemapOverride{Priority: &p, ChangeFreq: "yearly"}
	assert.InDelta(t, 0.25, SitemapPriority(hubs, &plain), 1e-12)
	assert.Equal(t, "yearly", ChangeFreq(hubs, &plain))
}

func TestChangeFreq(t *testing.T) {
	c, hubs := fixture(t)
	hub, _ := c.Get("pace-tool:hub")
	assert.Equal(t, "daily", ChangeFreq(hubs, hub))
	berlin, _ := c.Get("race-guide:berlin")
	assert.Equal(t, "weekly", ChangeFreq(hubs, berlin))
	gels, _ := c.Get("fuel-tool:gels")
	assert.Equal(t, "monthly", ChangeFreq(hubs, gels))
}

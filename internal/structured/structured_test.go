package structured

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

func testSite() Site {
	return Site{
		Name:          "PacePro",
		BaseURL:       "https://example.com",
		Logo:          "/images/logo.png",
		DefaultImage:  "/images/og-default.png",
		TwitterHandle: "@pacepro",
		Locale:        "en_US",
	}
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	hubs, err := page.NewHubSet(page.HubConfig{
		ID:       "race-guide:hub",
		Category: page.CategoryRaceGuide,
		Path:     "/races",
		Title:    "Race Guides",
	})
	require.NoError(t, err)
	return NewGenerator(testSite(), hubs, nil)
}

func raceGuide() page.Descriptor {
	return page.Descriptor{
		ID:          "race-guide:berlin",
		ShortName:   "berlin",
		Path:        "/races/berlin",
		Category:    page.CategoryRaceGuide,
		Title:       "Berlin Marathon Race Guide",
		Description: "Everything about the Berlin Marathon course.",
		FAQ: []page.FAQ{
			{Question: "Is Berlin fast?", Answer: "Yes, it is one of the flattest majors."},
		},
		HowTo: &page.HowTo{
			Name:  "Race Berlin",
			Steps: []page.Step{{Name: "Start", Text: "Start conservatively."}},
		},
	}
}

func TestBuildGraph_Order(t *testing.T) {
	g := testGenerator(t)
	d := raceGuide()

	graph := g.BuildGraph(&d, Options{
		Event:       &EventFacts{StartDate: time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC), City: "Berlin", Country: "DE"},
		IncludeSite: true,
	})
	assert.Equal(t, []Kind{
		KindWebPage, KindBreadcrumbList, KindFAQPage, KindHowTo, KindSportsEvent,
		KindOrganization, KindWebSite,
	}, graph.Kinds())
}

func TestBuildGraph_OmitsAbsentBlocks(t *testing.T) {
	g := testGenerator(t)
	d := raceGuide()
	d.FAQ = nil
	d.HowTo = nil

	graph := g.BuildGraph(&d, Options{IncludeSoftware: true})
	assert.Equal(t, []Kind{KindWebPage, KindBreadcrumbList}, graph.Kinds())
}

func TestBuildGraph_ArticleKind(t *testing.T) {
	g := testGenerator(t)
	d := page.Descriptor{
		ID: "blog-post:taper", ShortName: "taper", Path: "/blog/taper",
		Category: page.CategoryBlogPost, Title: "How to Taper", Description: "Taper well.",
	}
	graph := g.BuildGraph(&d, Options{Article: &ArticleFacts{Published: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}})
	require.Len(t, graph, 3)
	art, ok := graph[2].(*Article)
	require.True(t, ok)
	assert.Equal(t, KindBlogPosting, art.Type)
	assert.Equal(t, "PacePro", art.Author.Name)
	assert.Equal(t, "2026-01-02T03:04:05Z", art.DatePublished)
	assert.Equal(t, "https://example.com/images/og-default.png", art.Image)

	d.Image = "/images/taper.png"
	assert.Equal(t, "https://example.com/images/taper.png", g.Article(&d, ArticleFacts{}).Image)
	assert.Equal(t, "https://cdn.example.com/a.png", g.Article(&d, ArticleFacts{Image: "https://cdn.example.com/a.png"}).Image)
}

func TestSoftwareApplication_ToolsOnly(t *testing.T) {
	g := testGenerator(t)
	d := raceGuide()
	assert.Nil(t, g.SoftwareApplication(&d))

	tool := page.Descriptor{ID: "pace-tool:x", Path: "/calculator/x", Category: page.CategoryPaceTool, Title: "X"}
	app := g.SoftwareApplication(&tool)
	require.NotNil(t, app)
	assert.Equal(t, "https://example.com/calculator/x", app.URL)
}

func TestGraph_MarshalAndValidate(t *testing.T) {
	g := testGenerator(t)
	d := raceGuide()
	graph := g.BuildGraph(&d, Options{
		Event:       &EventFacts{StartDate: time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC), City: "Berlin", Country: "DE"},
		IncludeSite: true,
	})

	raw, err := json.Marshal(graph)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "https://schema.org", doc["@context"])
	assert.Len(t, doc["@graph"], 7)

	assert.Empty(t, ValidateGraph(raw))
}

func TestBreadcrumbsBlock(t *testing.T) {
	g := testGenerator(t)
	d := raceGuide()
	bc := g.Breadcrumbs(&d)
	require.Len(t, bc.ItemListElement, 3)
	assert.Equal(t, ListItem{Type: "ListItem", Position: 1, Name: "Home", Item: "https://example.com/"}, bc.ItemListElement[0])
	assert.Equal(t, "https://example.com/races", bc.ItemListElement[1].Item)
	assert.Equal(t, 3, bc.ItemListElement[2].Position)
}

func TestValidateGraph_Problems(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "invalid json",
			raw:  `{`,
			want: []string{"$"},
		},
		{
			name: "missing envelope",
			raw:  `{"foo": 1}`,
			want: []string{"$['@context']", "$['@graph']"},
		},
		{
			name: "empty faq and steps",
			raw: `{"@context":"https://schema.org","@graph":[
				{"@type":"FAQPage","mainEntity":[]},
				{"@type":"HowTo","name":"x","step":[]},
				{"name":"untyped"},
				{"@type":"BreadcrumbList"},
				{"@type":"SportsEvent","startDate":"2026-09-27"}
			]}`,
			want: []string{
				"$['@graph'][0].mainEntity",
				"$['@graph'][1].step",
				"$['@graph'][2]",
				"$['@graph'][3].itemListElement",
				"$['@graph'][4].location",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := ValidateGraph([]byte(tt.raw))
			paths := make([]string, len(problems))
			for i, p := range problems {
				paths[i] = p.Path
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestTags(t *testing.T) {
	g := testGenerator(t)
	d := raceGuide()
	d.NoIndex = true

	tags := g.Tags(&d)
	assert.Equal(t, "Berlin Marathon Race Guide", tags.Title)
	assert.Equal(t, "https://example.com/races/berlin", tags.Canonical)
	assert.Equal(t, "noindex, follow", tags.Robots)
	assert.Equal(t, "https://example.com/images/og-default.png", tags.Social.Image)
	assert.Equal(t, "article", tags.Social.Type)

	d.Canonical = "/races/berlin-marathon"
	assert.Equal(t, "https://example.com/races/berlin-marathon", g.Tags(&d).Canonical)

	list := tags.List()
	assert.Contains(t, list, Tag{Property: "og:title", Content: "Berlin Marathon Race Guide"})
	assert.Contains(t, list, Tag{Name: "twitter:site", Content: "@pacepro"})

	head := tags.Head()
	assert.Equal(t, "Berlin Marathon Race Guide", head["title"])

	d.Image = "/images/berlin.jpg"
	withImage := g.Tags(&d)
	assert.Equal(t, "https://example.com/images/berlin.jpg", withImage.Social.Image)
	assert.Contains(t, withImage.List(), Tag{Property: "og:image", Content: "https://example.com/images/berlin.jpg"})
}

func TestTrimTitle(t *testing.T) {
	branded := "Sub 3 Hour Marathon Pace Calculator and Split Planner | PacePro"
	assert.Equal(t, "Sub 3 Hour Marathon Pace Calculator and Split Planner", TrimTitle(branded, "PacePro", 60))

	long := "The Complete Berlin Marathon Course Guide With Elevation Profile and Fueling Strategy"
	got := TrimTitle(long, "PacePro", 60)
	assert.Equal(t, "The Complete Berlin Marathon Course Guide With Elevation...", got)
	assert.LessOrEqual(t, len([]rune(got)), 60)

	assert.Equal(t, "Short", TrimTitle("Short", "PacePro", 60))
}

func TestTrimDescription(t *testing.T) {
	sentence := "Plan your Berlin Marathon with our detailed course guide covering elevation, weather and aid stations. " +
		"Learn where to push and where to hold back on race day for a new personal best."
	assert.Equal(t,
		"Plan your Berlin Marathon with our detailed course guide covering elevation, weather and aid stations.",
		TrimDescription(sentence, 160))

	words := "Plan your Berlin Marathon with our detailed course guide covering elevation weather aid stations pacing " +
		"splits fueling strategy and everything else you need to know before race day arrives"
	got := TrimDescription(words, 160)
	assert.Equal(t, "Plan your Berlin Marathon with our detailed course guide covering elevation weather aid stations pacing "+
		"splits fueling strategy and everything else you need...", got)
	assert.LessOrEqual(t, len([]rune(got)), 160)
}

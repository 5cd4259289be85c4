package quality

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

func goodPage(short string) page.Descriptor {
	return page.Descriptor{
		ID:          page.MakeID(page.CategoryRaceGuide, short),
		ShortName:   short,
		Path:        "/races/" + short,
		Category:    page.CategoryRaceGuide,
		Title:       "Race Guide and Course Tips for " + short,
		Description: fmt.Sprintf("Everything you need for the %s: course map, elevation profile, pacing strategy, fueling advice and race day logistics in one place.", short),
		Heading:     short + " Race Guide",
		Intro:       "The " + short + " course is famously flat and fast, making it a favourite for runners chasing a personal best.",
		Benefits:    []string{"Course map", "Elevation profile", "Pacing plan"},
		CTA:         &page.CallToAction{Target: "/elevation/" + short, Label: "See the course"},
		FAQ: []page.FAQ{
			{Question: "Is it fast?", Answer: "Yes. The course is flat and the weather is usually cool in late September."},
		},
		HowTo: &page.HowTo{Name: "Race it", Steps: []page.Step{{Name: "Start", Text: "Start steady."}}},
	}
}

func noHubs(t *testing.T) *page.HubSet {
	t.Helper()
	hs, err := page.NewHubSet()
	require.NoError(t, err)
	return hs
}

func TestValidatePage_Perfect(t *testing.T) {
	v := New(DefaultRules())
	d := goodPage("berlin")
	r := v.ValidatePage(&d)
	assert.True(t, r.Valid)
	assert.Equal(t, 100, r.Score)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidatePage_ScoringExample(t *testing.T) {
	v := New(DefaultRules())
	d := goodPage("berlin")
	d.CTA = nil
	d.Intro = "Fast flat race."
	require.Len(t, []rune(d.Intro), 15)

	r := v.ValidatePage(&d)
	assert.Equal(t, 85, r.Score)
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 2)
	assert.Equal(t, "intro", r.Warnings[0].Field)
	assert.Equal(t, "cta", r.Warnings[1].Field)
}

func TestValidatePage_Deductions(t *testing.T) {
	v := New(DefaultRules())
	tests := []struct {
		name   string
		mutate func(*page.Descriptor)
		score  int
		valid  bool
		field  string
	}{
		{"missing title", func(d *page.Descriptor) { d.Title = "" }, 80, false, "title"},
		{"missing heading", func(d *page.Descriptor) { d.Heading = "" }, 85, false, "heading"},
		{"missing intro", func(d *page.Descriptor) { d.Intro = "" }, 90, false, "intro"},
		{"short title", func(d *page.Descriptor) { d.Title = "Berlin" }, 95, true, "title"},
		{"long description", func(d *page.Descriptor) { d.Description += d.Description }, 95, true, "description"},
		{"too many bullets", func(d *page.Descriptor) { d.Benefits = []string{"a", "b", "c", "d", "e", "f", "g"} }, 97, true, "benefits"},
		{"no faq", func(d *page.Descriptor) { d.FAQ = nil }, 95, true, "faq"},
		{"short faq answer", func(d *page.Descriptor) {
			d.FAQ = append(d.FAQ, page.FAQ{Question: "Cold?", Answer: "Sometimes."})
		}, 98, true, "faq"},
		{"no how-to", func(d *page.Descriptor) { d.HowTo = nil }, 97, true, "howTo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := goodPage("berlin")
			tt.mutate(&d)
			r := v.ValidatePage(&d)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.valid, r.Valid)
			issues := r.Issues()
			require.Len(t, issues, 1)
			assert.Equal(t, tt.field, issues[0].Field)
		})
	}
}

func TestValidatePage_ClampsAtZero(t *testing.T) {
	v := New(DefaultRules())
	r := v.ValidatePage(&page.Descriptor{})
	assert.Equal(t, 0, r.Score)
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors, 7)
}

func TestValidateAll_DuplicateTitles(t *testing.T) {
	v := New(DefaultRules())
	a, b, c := goodPage("alpha"), goodPage("bravo"), goodPage("charlie")
	a.Title = "Marathon Race Guide and Course Tips"
	c.Title = "  MARATHON race guide and course tips "

	res := v.ValidateAll([]page.Descriptor{a, b, c}, noHubs(t))
	require.Len(t, res.DuplicateTitles, 1)
	assert.Equal(t, []string{a.ID, c.ID}, res.DuplicateTitles[0].PageIDs)
	assert.Equal(t, "title", res.DuplicateTitles[0].Field)
	assert.Empty(t, res.DuplicateDescs)
}

func TestSimilarIntros_StopWordsOnly(t *testing.T) {
	a, b := goodPage("alpha"), goodPage("bravo")
	a.Intro = "The race is in the city of Berlin with a fast course"
	b.Intro = "A race in a city Berlin and fast course"

	pairs := SimilarIntros([]page.Descriptor{a, b}, 0.7)
	require.Len(t, pairs, 1)
	assert.Equal(t, a.ID, pairs[0].A)
	assert.Equal(t, b.ID, pairs[0].B)
	assert.InDelta(t, 1.0, pairs[0].Similarity, 1e-12)

	b.Intro = "Hilly trail ultra through mountain forests"
	assert.Empty(t, SimilarIntros([]page.Descriptor{a, b}, 0.7))
}

func TestValidateAll_Idempotent(t *testing.T) {
	v := New(DefaultRules())
	pages := []page.Descriptor{goodPage("alpha"), goodPage("bravo"), goodPage("charlie")}
	pages[1].RelatedIDs = []string{"race-guide:ghost"}
	first := v.ValidateAll(pages, noHubs(t))
	second := v.ValidateAll(pages, noHubs(t))
	assert.Equal(t, first, second)
}

func TestValidateAllPartitioned_SimilarityWithinCategory(t *testing.T) {
	v := New(DefaultRules())
	a, b := goodPage("alpha"), goodPage("bravo")
	b.Category = page.CategoryBlogPost
	b.ID = page.MakeID(page.CategoryBlogPost, "bravo")
	a.Intro = "Flat fast course in Berlin"
	b.Intro = "Flat fast course in Berlin"

	assert.Len(t, v.ValidateAll([]page.Descriptor{a, b}, noHubs(t)).Similar, 1)
	assert.Empty(t, v.ValidateAllPartitioned([]page.Descriptor{a, b}, noHubs(t)).Similar)
}

func TestCannibalization(t *testing.T) {
	v := New(DefaultRules())
	pages := []page.Descriptor{
		{ID: "pace-tool:a", Title: "Sub 3 Marathon Pace Plan"},
		{ID: "pace-tool:b", Title: "Marathon Pace Calculator"},
		{ID: "race-guide:c", Title: "Boston Course Guide"},
	}
	conflicts := v.Cannibalization(pages)
	require.Len(t, conflicts, 1)
	assert.Equal(t, Conflict{Phrase: "marathon pace", Count: 2, PageIDs: []string{"pace-tool:a", "pace-tool:b"}}, conflicts[0])

	rules := DefaultRules()
	rules.Brand = "Marathon"
	assert.Empty(t, New(rules).Cannibalization(pages))
}

func TestCannibalization_Capped(t *testing.T) {
	rules := DefaultRules()
	rules.MaxConflicts = 2
	v := New(rules)
	pages := []page.Descriptor{
		{ID: "a", Title: "alpha bravo charlie delta"},
		{ID: "b", Title: "alpha bravo charlie delta"},
		{ID: "c", Title: "alpha bravo"},
	}
	conflicts := v.Cannibalization(pages)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "alpha bravo", conflicts[0].Phrase)
	assert.Equal(t, 3, conflicts[0].Count)
	assert.Equal(t, "alpha bravo charlie", conflicts[1].Phrase)
}

func TestLinkIntegrity(t *testing.T) {
	hub := page.HubConfig{ID: "race-guide:hub", Category: page.CategoryRaceGuide, Path: "/races", Title: "Races"}
	hubs, err := page.NewHubSet(hub)
	require.NoError(t, err)

	a, b, c := goodPage("alpha"), goodPage("bravo"), goodPage("charlie")
	hd := hub.Descriptor()
	hd.Description = "All races."
	a.RelatedIDs = []string{b.ID, "race-guide:ghost"}
	a.HubID = hub.ID
	a.Intro = "See [bravo](/races/bravo/) and [nowhere](/races/nowhere)."
	a.FAQ = []page.FAQ{{Question: "Where?", Answer: "Check [the hub](https://example.com/races) or [wiki](https://en.wikipedia.org)."}}

	v := New(Rules{SiteURL: "https://example.com"})
	broken, orphans := v.LinkIntegrity([]page.Descriptor{hd, a, b, c}, hubs)
	assert.Equal(t, []BrokenLink{
		{SourceID: a.ID, Field: "related", Target: "race-guide:ghost"},
		{SourceID: a.ID, Field: "intro", Target: "/races/nowhere"},
	}, broken)
	assert.Equal(t, []string{c.ID}, orphans)
}

func TestGate_InjectedDuplicates(t *testing.T) {
	v := New(DefaultRules())
	a, b := goodPage("alpha"), goodPage("alpha")
	res := v.Gate([]page.Descriptor{a, b, goodPage("bravo")}, noHubs(t))
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.Counts.DuplicateIDs)
	assert.Equal(t, 1, res.Counts.DuplicatePaths)
	assert.Contains(t, res.Blocking, "1 duplicate output path(s)")
	assert.Contains(t, res.Blocking, "1 duplicate identifier(s)")
}

func TestGate_ThinPages(t *testing.T) {
	v := New(DefaultRules())
	var pages []page.Descriptor
	for i := 0; i < 10; i++ {
		pages = append(pages, goodPage(fmt.Sprintf("race-%d", i)))
	}
	pages[0].Benefits = nil
	res := v.Gate(pages, noHubs(t))
	assert.True(t, res.Passed, res.Blocking)
	assert.Equal(t, 1, res.Counts.ThinPages)

	pages[1].Intro = "Too short."
	res = v.Gate(pages, noHubs(t))
	assert.False(t, res.Passed)
	assert.Equal(t, 2, res.Counts.ThinPages)
}

func TestGate_MissingRequired(t *testing.T) {
	v := New(DefaultRules())
	a := goodPage("alpha")
	a.Heading = ""
	res := v.Gate([]page.Descriptor{a}, noHubs(t))
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.Counts.MissingRequired)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(&BatchResult{}))
	assert.Equal(t, 1, ExitCode(&BatchResult{InvalidCount: 1}))
	assert.Equal(t, 1, ExitCode(&BatchResult{BrokenLinks: []BrokenLink{{SourceID: "a", Target: "b"}}}))

	dups := make([]DuplicateGroup, 11)
	assert.Equal(t, 1, ExitCode(&BatchResult{DuplicateTitles: dups}))
	assert.Equal(t, 0, ExitCode(&BatchResult{DuplicateTitles: dups[:10]}))
}

func TestGradeFor(t *testing.T) {
	tests := map[float64]Grade{95: GradeA, 90: GradeA, 85: GradeB, 70: GradeC, 60: GradeD, 59.9: GradeF}
	for avg, want := range tests {
		assert.Equal(t, want, GradeFor(avg), "avg=%v", avg)
	}
}

func TestReport_Recommendations(t *testing.T) {
	v := New(DefaultRules())
	a := goodPage("alpha")
	a.CTA = nil
	a.RelatedIDs = []string{"race-guide:ghost"}
	rep := Report(v.ValidateAll([]page.Descriptor{a}, noHubs(t)))
	assert.Equal(t, GradeA, rep.Grade)
	assert.Contains(t, rep.Recommendations, "Add a call-to-action to 1 page(s).")
	assert.Contains(t, rep.Recommendations, "Repair 1 broken internal link(s).")
}

func TestFormatters(t *testing.T) {
	v := New(DefaultRules())
	pages := []page.Descriptor{goodPage("alpha"), goodPage("bravo")}
	batch := v.ValidateAll(pages, noHubs(t))
	gate := v.Gate(pages, noHubs(t))
	r := NewCIReport(batch, &gate)
	assert.Equal(t, 0, r.ExitCode)

	var text bytes.Buffer
	require.NoError(t, NewFormatter("text", true).Format(&text, r))
	assert.Contains(t, text.String(), "Validated 2 pages")
	assert.Contains(t, text.String(), "Grade: A")
	assert.Contains(t, text.String(), "Pre-publish gate passed.")

	var js bytes.Buffer
	require.NoError(t, NewFormatter("json", false).Format(&js, r))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.EqualValues(t, 0, decoded["exitCode"])
	report := decoded["report"].(map[string]any)
	assert.Equal(t, "A", report["grade"])
}

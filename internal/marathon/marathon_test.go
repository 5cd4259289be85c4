package marathon

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/seobuilder/internal/elevation"
	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
	"git.home.luguber.info/inful/seobuilder/internal/scale"
)

func embeddedDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Embedded()
	require.NoError(t, err)
	return ds
}

func TestEmbedded(t *testing.T) {
	ds := embeddedDataset(t)
	assert.Len(t, ds.Races, 10)
	assert.Len(t, ds.Distances, 5)
	assert.Len(t, ds.Goals, 11)

	var zurich *Race
	for i := range ds.Races {
		if ds.Races[i].Name == "Zürich Marathon" {
			zurich = &ds.Races[i]
		}
	}
	require.NotNil(t, zurich)
	assert.Equal(t, "zurich", zurich.Slug)
	assert.Equal(t, 2027, zurich.StartDate().Year())
}

func TestDecode_DurationsAndValidation(t *testing.T) {
	ds, err := Decode(strings.NewReader(`
distances:
  - {slug: marathon, name: Marathon, km: 42.195}
goals:
  - {slug: sub-3, label: Sub 3, finish: 3h, distance: marathon}
`))
	require.NoError(t, err)
	require.NoError(t, ds.normalize())
	assert.Equal(t, 3*time.Hour, ds.Goals[0].Finish)

	bad := &Dataset{Goals: []TimeGoal{{Slug: "x", Finish: time.Hour, Distance: "nope"}}}
	assert.ErrorContains(t, bad.Validate(), "unknown distance")

	dup := &Dataset{Races: []Race{
		{Slug: "a", Name: "A", Date: "2027-01-01", DistanceKM: 42.195, Difficulty: "easy"},
		{Slug: "a", Name: "A", Date: "2027-01-01", DistanceKM: 42.195, Difficulty: "easy"},
	}}
	assert.ErrorContains(t, dup.Validate(), "duplicate slug")
}

func TestPaceAndClock(t *testing.T) {
	assert.Equal(t, "4:59", FormatClock(Pace(3*time.Hour+30*time.Minute, 42.195)))
	assert.Equal(t, "5:00", FormatClock(Pace(25*time.Minute, 5)))
	assert.Equal(t, "3:30:00", FormatClock(3*time.Hour+30*time.Minute))
	assert.Equal(t, "25:00", FormatClock(25*time.Minute))
	assert.Zero(t, Pace(time.Hour, 0))
}

func TestRaceGuide(t *testing.T) {
	ds := embeddedDataset(t)
	d := RaceGuide(ds.Races[0])

	assert.Equal(t, "race-guide:boston", d.ID)
	assert.Equal(t, "/races/boston", d.Path)
	assert.Equal(t, "Boston Marathon Guide: Course, Pacing and Tips", d.Title)
	assert.Equal(t, HubRaces, d.HubID)
	assert.Equal(t, []string{"elevation-tool:boston"}, d.RelatedIDs)
	require.Len(t, d.FAQ, 3)
	assert.Equal(t, "How hilly is the Boston Marathon course?", d.FAQ[0].Question)
	assert.Contains(t, d.FAQ[0].Answer, "248 m")
	require.NotNil(t, d.HowTo)
	assert.Len(t, d.HowTo.Steps, 4)

	// Same input, same page.
	assert.Equal(t, d, RaceGuide(ds.Races[0]))
}

func TestPaceGoal(t *testing.T) {
	ds := embeddedDataset(t)
	dist, ok := ds.Distance("marathon")
	require.True(t, ok)

	var goal TimeGoal
	for _, g := range ds.GoalsFor("marathon") {
		if g.Slug == "sub-3-30" {
			goal = g
		}
	}
	d := PaceGoal(goal, dist)

	assert.Equal(t, "pace-tool:marathon-sub-3-30", d.ID)
	assert.Equal(t, "/calculator/marathon/sub-3-30", d.Path)
	assert.Equal(t, "How to Run a Sub 3:30 Marathon: Pace Chart", d.Title)
	assert.Equal(t, "4:59", d.Prefill["pace"])
	assert.Equal(t, "3:30:00", d.Prefill["time"])
	assert.Equal(t, "42.195", d.Prefill["distanceKm"])
	assert.Equal(t, []string{"fuel-tool:marathon"}, d.RelatedIDs)
}

func TestBuildCatalogue(t *testing.T) {
	ds := embeddedDataset(t)
	cat, hubs, err := BuildCatalogue(ds)
	require.NoError(t, err)

	// 5 hubs, 11 pace goals, 3 guides, 5 fuel plans, 10 elevation pages,
	// 10 race guides, 3 posts.
	assert.Equal(t, 47, cat.Len())
	assert.Len(t, hubs.All(), 5)

	races, ok := hubs.ForCategory(page.CategoryRaceGuide)
	require.True(t, ok)
	require.Len(t, races.SubCategories, 2)
	assert.Len(t, races.SubCategories[0].SpokeIDs, 7)
	assert.Len(t, races.SubCategories[1].SpokeIDs, 3)

	for _, d := range cat.All() {
		for _, s := range []string{d.Title, d.Description, d.Heading, d.Intro} {
			assert.NotContains(t, s, "{{", "unresolved placeholder in %s", d.ID)
		}
	}
}

func TestBuildCatalogue_PassesIntegrityChecks(t *testing.T) {
	ds := embeddedDataset(t)
	cat, hubs, err := BuildCatalogue(ds)
	require.NoError(t, err)

	v := quality.New(quality.DefaultRules())
	broken, orphans := v.LinkIntegrity(cat.All(), hubs)
	assert.Empty(t, broken)
	assert.Empty(t, orphans)

	gate := v.Gate(cat.All(), hubs)
	assert.True(t, gate.Passed, "blocking: %v", gate.Blocking)
}

type fakeProfiles struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeProfiles) Profile(_ context.Context, course string) (*elevation.Profile, error) {
	f.mu.Lock()
	f.calls = append(f.calls, course)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if course == "valencia" {
		return nil, elevation.ErrNotFound
	}
	return &elevation.Profile{Course: course, Gain: 1000, Loss: 900}, nil
}

func TestEnrichElevation(t *testing.T) {
	ds := embeddedDataset(t)
	pages := Pages(ds)
	before := make([]int, 0)
	for _, p := range pages {
		if p.Category == page.CategoryRaceGuide {
			before = append(before, *p.Variables.ElevationGain)
		}
	}

	src := &fakeProfiles{}
	var progress []scale.BatchProgress
	out, err := EnrichElevation(context.Background(), src, pages, scale.BatchOptions{
		Size:    4,
		OnBatch: func(p scale.BatchProgress) { progress = append(progress, p) },
	})
	require.NoError(t, err)
	require.Len(t, out, len(pages))

	// 10 elevation pages + 10 race guides.
	assert.Len(t, src.calls, 20)
	assert.Equal(t, len(pages), progress[len(progress)-1].Completed)

	var after []int
	for i, p := range out {
		if p.Category != page.CategoryRaceGuide {
			continue
		}
		after = append(after, *p.Variables.ElevationGain)
		if p.ShortName == "boston" {
			assert.Contains(t, p.FAQ[0].Answer, "1000 m")
			assert.NotSame(t, pages[i].Variables, p.Variables)
		}
		if p.ShortName == "valencia" {
			assert.Equal(t, 46, *p.Variables.ElevationGain)
		}
	}
	assert.Len(t, after, len(before))

	// The input is untouched.
	i := 0
	for _, p := range pages {
		if p.Category == page.CategoryRaceGuide {
			assert.Equal(t, before[i], *p.Variables.ElevationGain)
			i++
		}
	}
}

func TestEnrichElevation_ErrorAborts(t *testing.T) {
	ds := embeddedDataset(t)
	boom := errors.New("service down")
	_, err := EnrichElevation(context.Background(), &fakeProfiles{err: boom}, Pages(ds), scale.BatchOptions{Size: 8})
	assert.ErrorIs(t, err, boom)
}

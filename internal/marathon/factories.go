package marathon

import (
	"strconv"

	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/variation"
)

// Hub identifiers for the five top-level sections.
var (
	HubPace      = page.MakeID(page.CategoryPaceTool, "hub")
	HubFuel      = page.MakeID(page.CategoryFuelTool, "hub")
	HubElevation = page.MakeID(page.CategoryElevationTool, "hub")
	HubRaces     = page.MakeID(page.CategoryRaceGuide, "hub")
	HubBlog      = page.MakeID(page.CategoryBlogPost, "hub")
)

// Extra variable names used by the pace and race templates.
const (
	varGoal   = "goal"
	varPace   = "pace"
	varFinish = "finish"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func kmString(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

func raceVariables(r Race) *variation.Variables {
	return &variation.Variables{
		ShortName:     r.Slug,
		DisplayName:   r.Name,
		Distance:      "Marathon",
		DistanceKM:    floatPtr(r.DistanceKM),
		City:          r.City,
		Country:       r.Country,
		EventName:     r.Name,
		EventDate:     r.Date,
		ElevationGain: intPtr(r.ElevationGain),
		ElevationLoss: intPtr(r.ElevationLoss),
		Difficulty:    r.Difficulty,
		Extra:         map[string]string{"website": r.Website},
	}
}

func fromRendered(d *page.Descriptor, r variation.Rendered) {
	d.Title = r.Title
	d.Description = r.Description
	d.Heading = r.Heading
	d.Intro = r.Intro
	d.Benefits = r.Benefits
}

func interpolateFAQ(faq []page.FAQ, vars *variation.Variables) []page.FAQ {
	out := make([]page.FAQ, len(faq))
	for i, f := range faq {
		out[i] = page.FAQ{
			Question: variation.Interpolate(f.Question, vars),
			Answer:   variation.Interpolate(f.Answer, vars),
		}
	}
	return out
}

func interpolateHowTo(h page.HowTo, vars *variation.Variables) *page.HowTo {
	out := &page.HowTo{
		Name:        variation.Interpolate(h.Name, vars),
		Description: variation.Interpolate(h.Description, vars),
		Steps:       make([]page.Step, len(h.Steps)),
	}
	for i, s := range h.Steps {
		out.Steps[i] = page.Step{
			Name: variation.Interpolate(s.Name, vars),
			Text: variation.Interpolate(s.Text, vars),
		}
	}
	return out
}

var raceFAQ = []page.FAQ{
	{
		Question: "How hilly is the {{eventName}} course?",
		Answer:   "The course gains about {{elevationGain}} m and loses {{elevationLoss}} m, which makes it a {{difficulty}} marathon for most runners. See the [elevation profile](/elevation/{{shortName}}) for the breakdown.",
	},
	{
		Question: "When is the next {{eventName}}?",
		Answer:   "The next edition starts on {{eventDate}} in {{city}}, {{country}}. Check the official race website for start waves and cut-off times.",
	},
	{
		Question: "How should I pace the {{eventName}}?",
		Answer:   "Run the first 10 km at or just under goal pace, hold steady through halfway and only push once the main climbs are behind you.",
	},
}

var raceHowTo = page.HowTo{
	Name:        "How to prepare for the {{eventName}}",
	Description: "A short checklist for the weeks before race day in {{city}}.",
	Steps: []page.Step{
		{Name: "Study the course", Text: "Learn where the {{elevationGain}} m of climbing sits and mark the sections you will run by effort."},
		{Name: "Set a goal pace", Text: "Pick a realistic finish time and convert it into kilometre splits."},
		{Name: "Plan your fueling", Text: "Decide when you will take gels and which aid stations you will use."},
		{Name: "Taper", Text: "Cut volume over the final two to three weeks while keeping some race-pace work."},
	},
}

// RaceGuide builds the race-guide page for r.
func RaceGuide(r Race) page.Descriptor {
	vars := raceVariables(r)
	id := page.MakeID(page.CategoryRaceGuide, r.Slug)
	d := page.Descriptor{
		ID:         id,
		ShortName:  r.Slug,
		Path:       "/races/" + r.Slug,
		Category:   page.CategoryRaceGuide,
		CTA:        &page.CallToAction{Target: "/elevation/" + r.Slug, Label: "Explore the course elevation"},
		FAQ:        interpolateFAQ(raceFAQ, vars),
		HowTo:      interpolateHowTo(raceHowTo, vars),
		RelatedIDs: []string{page.MakeID(page.CategoryElevationTool, r.Slug)},
		HubID:      HubRaces,
		Variables:  vars,
	}
	fromRendered(&d, variation.Render(raceGuideTemplates, id, vars))
	return d
}

var elevationFAQ = []page.FAQ{
	{
		Question: "What is the total elevation gain of the {{eventName}}?",
		Answer:   "The course climbs about {{elevationGain}} m in total and descends {{elevationLoss}} m between start and finish.",
	},
	{
		Question: "Should I change my pace on the hills?",
		Answer:   "Yes. Run the climbs by effort rather than pace and let the downhills give back the time you lost going up.",
	},
}

var elevationHowTo = page.HowTo{
	Name: "How to read the {{eventName}} elevation profile",
	Steps: []page.Step{
		{Name: "Find the climbs", Text: "Look for segments with a positive grade above two percent."},
		{Name: "Mark effort zones", Text: "Note where you will ease off and where you can press."},
		{Name: "Adjust your splits", Text: "Add a few seconds per kilometre on climbs and take them back on descents."},
	},
}

// ElevationPage builds the elevation tool page for r.
func ElevationPage(r Race) page.Descriptor {
	vars := raceVariables(r)
	id := page.MakeID(page.CategoryElevationTool, r.Slug)
	d := page.Descriptor{
		ID:        id,
		ShortName: r.Slug,
		Path:      "/elevation/" + r.Slug,
		Category:  page.CategoryElevationTool,
		CTA:       &page.CallToAction{Target: "/races/" + r.Slug, Label: "Read the race guide"},
		FAQ:       interpolateFAQ(elevationFAQ, vars),
		HowTo:     interpolateHowTo(elevationHowTo, vars),
		Prefill: map[string]string{
			"course":     r.Slug,
			"gain":       strconv.Itoa(r.ElevationGain),
			"loss":       strconv.Itoa(r.ElevationLoss),
			"distanceKm": kmString(r.DistanceKM),
		},
		RelatedIDs: []string{page.MakeID(page.CategoryRaceGuide, r.Slug)},
		HubID:      HubElevation,
		Variables:  vars,
	}
	fromRendered(&d, variation.Render(elevationTemplates, id, vars))
	return d
}

// PaceGoalShortName is the short-name of the pace page for g.
func PaceGoalShortName(g TimeGoal) string {
	return g.Distance + "-" + g.Slug
}

var paceFAQ = []page.FAQ{
	{
		Question: "What pace do I need for a {{goal}} {{distance}}?",
		Answer:   "You need to average {{pace}} per kilometre for the full {{distanceKm}} km to finish in {{finish}}.",
	},
	{
		Question: "Should I run even splits?",
		Answer:   "Even or slightly negative splits are the most reliable way to hit a time goal. Read the [negative splits guide](/calculator/guides/negative-splits) for details.",
	},
}

var paceHowTo = page.HowTo{
	Name: "How to train for a {{goal}} {{distance}}",
	Steps: []page.Step{
		{Name: "Confirm your goal", Text: "Check that {{pace}} per km is close to what recent races suggest."},
		{Name: "Train at goal pace", Text: "Include weekly segments at {{pace}} per km to make the rhythm familiar."},
		{Name: "Race the plan", Text: "Start on pace and hold it; do not bank time in the first kilometres."},
	},
}

// PaceGoal builds the pace calculator page for g over dist.
func PaceGoal(g TimeGoal, dist Distance) page.Descriptor {
	pace := Pace(g.Finish, dist.KM)
	short := PaceGoalShortName(g)
	vars := &variation.Variables{
		ShortName:   short,
		DisplayName: g.Label + " " + dist.Name,
		Distance:    dist.Name,
		DistanceKM:  floatPtr(dist.KM),
		Extra: map[string]string{
			varGoal:   g.Label,
			varPace:   FormatClock(pace),
			varFinish: FormatClock(g.Finish),
		},
	}
	id := page.MakeID(page.CategoryPaceTool, short)
	d := page.Descriptor{
		ID:        id,
		ShortName: short,
		Path:      "/calculator/" + dist.Slug + "/" + g.Slug,
		Category:  page.CategoryPaceTool,
		CTA:       &page.CallToAction{Target: "/calculator/" + dist.Slug + "/" + g.Slug + "#calculator", Label: "Calculate my splits"},
		FAQ:       interpolateFAQ(paceFAQ, vars),
		HowTo:     interpolateHowTo(paceHowTo, vars),
		Prefill: map[string]string{
			"distanceKm": kmString(dist.KM),
			"time":       FormatClock(g.Finish),
			"pace":       FormatClock(pace),
		},
		RelatedIDs: []string{page.MakeID(page.CategoryFuelTool, dist.Slug)},
		HubID:      HubPace,
		Variables:  vars,
	}
	fromRendered(&d, variation.Render(paceGoalTemplates, id, vars))
	return d
}

var fuelFAQ = []page.FAQ{
	{
		Question: "How many carbs do I need during a {{distance}}?",
		Answer:   "Most runners do well with 60 to 90 grams of carbohydrate per hour once the race lasts longer than about 75 minutes.",
	},
	{
		Question: "When should I take my first gel?",
		Answer:   "Take the first gel 30 to 45 minutes in, then keep a steady rhythm rather than waiting until you feel low.",
	},
}

var fuelHowTo = page.HowTo{
	Name: "How to build a {{distance}} fueling plan",
	Steps: []page.Step{
		{Name: "Estimate your finish time", Text: "Use your goal pace to work out how long you will be running."},
		{Name: "Set a carb target", Text: "Choose grams of carbohydrate per hour you have practised in training."},
		{Name: "Schedule intake", Text: "Spread gels and drinks evenly across the {{distanceKm}} km."},
	},
}

// FuelPlan builds the fueling planner page for dist.
func FuelPlan(dist Distance) page.Descriptor {
	vars := &variation.Variables{
		ShortName:   dist.Slug,
		DisplayName: dist.Name + " Fueling",
		Distance:    dist.Name,
		DistanceKM:  floatPtr(dist.KM),
	}
	id := page.MakeID(page.CategoryFuelTool, dist.Slug)
	d := page.Descriptor{
		ID:        id,
		ShortName: dist.Slug,
		Path:      "/fuel/" + dist.Slug,
		Category:  page.CategoryFuelTool,
		CTA:       &page.CallToAction{Target: "/fuel/" + dist.Slug + "#planner", Label: "Build my fueling plan"},
		FAQ:       interpolateFAQ(fuelFAQ, vars),
		HowTo:     interpolateHowTo(fuelHowTo, vars),
		Prefill:   map[string]string{"distanceKm": kmString(dist.KM)},
		HubID:     HubFuel,
		Variables: vars,
	}
	fromRendered(&d, variation.Render(fuelTemplates, id, vars))
	return d
}

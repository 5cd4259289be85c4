package marathon

import (
	"git.home.luguber.info/inful/seobuilder/internal/page"
)

func ids(pages []page.Descriptor) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.ID
	}
	return out
}

func splitMajor(races []Race, build func(Race) page.Descriptor) (major, other []string) {
	for _, r := range races {
		id := build(r).ID
		if r.Major {
			major = append(major, id)
		} else {
			other = append(other, id)
		}
	}
	return major, other
}

func subCategories(groups ...page.SubCategory) []page.SubCategory {
	out := make([]page.SubCategory, 0, len(groups))
	for _, g := range groups {
		if len(g.SpokeIDs) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Hubs returns the five section hubs with their spokes filled from ds.
func Hubs(ds *Dataset) []page.HubConfig {
	paceGroups := make([]page.SubCategory, 0, len(ds.Distances)+1)
	fuelSpokes := make([]string, 0, len(ds.Distances))
	for _, dist := range ds.Distances {
		var spokes []string
		for _, g := range ds.GoalsFor(dist.Slug) {
			spokes = append(spokes, page.MakeID(page.CategoryPaceTool, PaceGoalShortName(g)))
		}
		paceGroups = append(paceGroups, page.SubCategory{Name: dist.Name + " goals", SpokeIDs: spokes})
		fuelSpokes = append(fuelSpokes, page.MakeID(page.CategoryFuelTool, dist.Slug))
	}
	paceGroups = append(paceGroups, page.SubCategory{Name: "Pacing guides", SpokeIDs: ids(PaceGuides())})

	majorRaces, otherRaces := splitMajor(ds.Races, RaceGuide)
	majorCourses, otherCourses := splitMajor(ds.Races, ElevationPage)

	return []page.HubConfig{
		{
			ID:            HubPace,
			Category:      page.CategoryPaceTool,
			Path:          "/calculator",
			Title:         "Running Pace Calculator for Every Race Goal",
			Description:   "Calculate the pace you need for any finish time. Split tables for 5K, 10K, half marathon and marathon goals plus guides to pacing strategy.",
			Heading:       "Pace Calculator",
			Intro:         "Pick a distance and a goal time to get per-kilometre pace, full split tables and the training paces that get you there.",
			Benefits:      []string{"Pace for any finish time", "Split tables by distance", "Pacing strategy guides"},
			SubCategories: subCategories(paceGroups...),
		},
		{
			ID:            HubFuel,
			Category:      page.CategoryFuelTool,
			Path:          "/fuel",
			Title:         "Race Fueling Planner: Carbs, Gels and Fluids",
			Description:   "Plan race nutrition for any distance. Work out carbs per hour, gel timing and fluid needs so you can hold pace from the start line to the finish.",
			Heading:       "Fueling Planner",
			Intro:         "Choose a race distance to build a fueling schedule matched to your finish time and the carbohydrate you have practised in training.",
			Benefits:      []string{"Carbs per hour targets", "Gel timing by distance", "Fluid and sodium planning"},
			SubCategories: subCategories(page.SubCategory{Name: "Plans by distance", SpokeIDs: fuelSpokes}),
		},
		{
			ID:          HubElevation,
			Category:    page.CategoryElevationTool,
			Path:        "/elevation",
			Title:       "Marathon Course Elevation Profiles and Maps",
			Description: "Elevation profiles for major and regional marathons. Compare total gain, find every climb and plan an effort-based pacing strategy for hilly courses.",
			Heading:     "Course Elevation Profiles",
			Intro:       "Every course profile shows total gain and loss, kilometre-by-kilometre grade and where the hardest climbs fall in the race.",
			Benefits:    []string{"Total gain and loss", "Kilometre-by-kilometre grade", "Hardest climbs highlighted"},
			SubCategories: subCategories(
				page.SubCategory{Name: "World Marathon Majors", SpokeIDs: majorCourses},
				page.SubCategory{Name: "More courses", SpokeIDs: otherCourses},
			),
		},
		{
			ID:          HubRaces,
			Category:    page.CategoryRaceGuide,
			Path:        "/races",
			Title:       "Marathon Race Guides: Courses, Dates and Tips",
			Description: "Race guides for the World Marathon Majors and other popular marathons: course notes, race dates, pacing advice and what to expect on race day.",
			Heading:     "Marathon Race Guides",
			Intro:       "Choose a race to see its course profile, key dates, pacing strategy and the logistics that make race morning go smoothly.",
			Benefits:    []string{"Course notes and dates", "Race-specific pacing advice", "Race-day logistics"},
			SubCategories: subCategories(
				page.SubCategory{Name: "World Marathon Majors", SpokeIDs: majorRaces},
				page.SubCategory{Name: "More races", SpokeIDs: otherRaces},
			),
		},
		{
			ID:            HubBlog,
			Category:      page.CategoryBlogPost,
			Path:          "/blog",
			Title:         "Running Blog: Training, Fueling and Racing",
			Description:   "Practical articles on marathon training, tapering, carb loading and hill work. Short reads that help you train smarter and race with confidence.",
			Heading:       "Running Blog",
			Intro:         "Training and racing advice from the team behind the calculators, written for runners chasing their next personal best.",
			Benefits:      []string{"Training advice", "Fueling and recovery", "Race preparation"},
			SubCategories: subCategories(page.SubCategory{Name: "Latest posts", SpokeIDs: ids(BlogPosts())}),
		},
	}
}

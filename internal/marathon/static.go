package marathon

import (
	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/variation"
)

func guide(slug, title, description, heading, intro string, benefits []string, faq []page.FAQ) page.Descriptor {
	return page.Descriptor{
		ID:          page.MakeID(page.CategoryPaceTool, slug),
		ShortName:   slug,
		Path:        "/calculator/guides/" + slug,
		Category:    page.CategoryPaceTool,
		Title:       title,
		Description: description,
		Heading:     heading,
		Intro:       intro,
		Benefits:    benefits,
		CTA:         &page.CallToAction{Target: "/calculator", Label: "Open the pace calculator"},
		FAQ:         faq,
		HubID:       HubPace,
		Variables:   &variation.Variables{ShortName: slug, DisplayName: heading},
	}
}

func post(slug, title, description, heading, intro string, benefits []string, related ...string) page.Descriptor {
	return page.Descriptor{
		ID:          page.MakeID(page.CategoryBlogPost, slug),
		ShortName:   slug,
		Path:        "/blog/" + slug,
		Category:    page.CategoryBlogPost,
		Title:       title,
		Description: description,
		Heading:     heading,
		Intro:       intro,
		Benefits:    benefits,
		RelatedIDs:  related,
		HubID:       HubBlog,
		Variables:   &variation.Variables{ShortName: slug, DisplayName: heading},
	}
}

// PaceGuides returns the hand-written pacing guides.
func PaceGuides() []page.Descriptor {
	return []page.Descriptor{
		guide("negative-splits",
			"Negative Splits: Run the Second Half Faster",
			"Learn how negative splits work, why they protect your goal time and how to plan a marathon or half marathon that finishes faster than it starts.",
			"Negative Splits Explained",
			"A negative split means running the second half of a race faster than the first. It keeps glycogen in reserve and turns the final kilometres into a finish instead of a fade.",
			[]string{"Why starting slower works", "Split targets by distance", "Workouts that teach the feel"},
			[]page.FAQ{{
				Question: "How much faster should the second half be?",
				Answer:   "Aim for one to two percent faster. Bigger gaps usually mean the first half was too slow.",
			}}),
		guide("even-pacing",
			"Even Pacing: How to Hold Goal Pace All Race",
			"Even pacing is the simplest route to a personal best. Learn how to lock in goal pace early, handle hills by effort and avoid the late-race slowdown.",
			"Even Pacing for Road Races",
			"Even pacing keeps every kilometre close to goal pace. It sounds simple, but adrenaline, crowds and hills all push runners off their plan in the opening stages.",
			[]string{"Pace discipline drills", "Using a GPS watch wisely", "Handling hills by effort"},
			[]page.FAQ{{
				Question: "Is even pacing better than negative splits?",
				Answer:   "Both work. Even pacing is easier to execute; negative splits leave more margin for a strong finish.",
			}}),
		guide("race-day-pacing",
			"Race Day Pacing Plan: From Start Line to Finish",
			"Turn your goal time into a race day pacing plan. Break the course into sections, set effort cues for each and know when to speed up or hold back.",
			"Race Day Pacing Plan",
			"A pacing plan turns a finish time into decisions you can make while tired. Split the race into thirds and give each one a clear job: settle, hold and then race.",
			[]string{"Section-by-section targets", "Effort cues for each third", "What to do when plans go wrong"},
			[]page.FAQ{{
				Question: "Should I follow a pace group?",
				Answer:   "A pace group helps if its target matches yours; drift away if the group surges through aid stations.",
			}}),
	}
}

// BlogPosts returns the hand-written editorial posts.
func BlogPosts() []page.Descriptor {
	return []page.Descriptor{
		post("marathon-taper",
			"How to Taper for a Marathon Without Losing Fitness",
			"A three-week marathon taper plan: how much to cut mileage, which workouts to keep and how to arrive at the start line fresh instead of flat or stale.",
			"The Marathon Taper",
			"Tapering is the last piece of marathon training. Cutting volume while keeping some intensity lets the body absorb months of work and show up rested on race day.",
			[]string{"Three-week taper schedule", "Workouts worth keeping", "Managing taper nerves"},
			page.MakeID(page.CategoryPaceTool, "race-day-pacing")),
		post("carb-loading",
			"Carb Loading for Runners: A Practical Guide",
			"How to carb load before a marathon or half: how many grams per kilogram, which foods sit well and how to avoid feeling heavy on race morning.",
			"Carb Loading Made Simple",
			"Carb loading tops up glycogen so you can hold goal pace longer. Two or three days of higher carbohydrate intake is enough for most runners racing over 90 minutes.",
			[]string{"Grams per kilogram targets", "Easy-to-digest food ideas", "Race morning breakfast"},
			page.MakeID(page.CategoryFuelTool, "marathon")),
		post("hill-training",
			"Hill Training for Flat and Hilly Marathons Alike",
			"Hill repeats and long runs on rolling routes build strength for any course. Learn which hill sessions to run and how to fit them into a training week.",
			"Hill Training for Marathoners",
			"Hills build leg strength and running economy even when the race is flat. On hilly courses they are the difference between holding pace and walking the climbs.",
			[]string{"Short and long hill repeats", "Downhill running technique", "Weekly session placement"},
			page.MakeID(page.CategoryElevationTool, "boston")),
	}
}

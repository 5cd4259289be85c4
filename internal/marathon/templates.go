package marathon

import "git.home.luguber.info/inful/seobuilder/internal/variation"

var raceGuideTemplates = variation.Templates{
	Titles: []string{
		"{{eventName}} Guide: Course, Pacing and Tips",
		"{{eventName}}: Course Map and Race Day Guide",
		"Running the {{eventName}}: Course and Pacing",
	},
	Descriptions: []string{
		"Plan your {{eventName}} in {{city}}: a {{difficulty}} course with {{elevationGain}} m of climbing, pacing advice, fueling and race-day logistics.",
		"How to race the {{eventName}}: where the {{elevationGain}} m of climbing sits, how to pace a {{difficulty}} course and what to expect in {{city}}.",
	},
	Headings: []string{
		"{{eventName}} Race Guide",
		"Running the {{eventName}}",
	},
	Intros: []string{
		"The {{eventName}} runs through {{city}}, {{country}}. It is a {{difficulty}} course with {{elevationGain}} m of gain, so pacing the climbs matters more than the flat miles.",
		"Race day in {{city}} rewards patience. The {{eventName}} climbs {{elevationGain}} m and drops {{elevationLoss}} m; check the [elevation profile](/elevation/{{shortName}}) before you set a goal.",
	},
	Benefits: [][]string{
		{"Course profile and key climbs", "Pacing plan by section", "Fueling and aid stations", "Race-day logistics for {{city}}"},
		{"Where the hills are", "Even-effort pacing strategy", "Gel and water timing", "Travel and start-line tips"},
	},
}

var elevationTemplates = variation.Templates{
	Titles: []string{
		"{{eventName}} Elevation Profile and Hill Map",
		"{{eventName}} Course Elevation: Gain and Grades",
	},
	Descriptions: []string{
		"See the {{eventName}} elevation profile: {{elevationGain}} m of gain and {{elevationLoss}} m of loss, mapped by kilometre with grade for every climb.",
		"Interactive {{eventName}} elevation chart. Find every climb on the {{difficulty}} {{city}} course and adjust your pace for {{elevationGain}} m of gain.",
	},
	Headings: []string{
		"{{eventName}} Elevation Profile",
		"{{eventName}} Course Elevation",
	},
	Intros: []string{
		"The {{eventName}} gains {{elevationGain}} m and loses {{elevationLoss}} m over {{distanceKm}} km. Use the profile to see which sections will cost time.",
		"Elevation decides how the {{eventName}} feels in the final 10 km. This profile shows every rise and drop on the {{city}} course.",
	},
	Benefits: [][]string{
		{"Kilometre-by-kilometre profile", "Grade for every climb", "Net elevation change", "Effort-based pacing hints"},
		{"Hill locations at a glance", "Total gain and loss", "Steepest sections highlighted"},
	},
}

var paceGoalTemplates = variation.Templates{
	Titles: []string{
		"{{goal}} {{distance}} Pace Calculator and Splits",
		"{{distance}} Pace for a {{goal}} Finish: Splits",
		"How to Run a {{goal}} {{distance}}: Pace Chart",
	},
	Descriptions: []string{
		"Running a {{goal}} {{distance}} takes an average pace of {{pace}} per kilometre. Get split times, a pacing chart and training targets for your goal.",
		"Target {{pace}} per km to finish the {{distance}} in under {{finish}}. Calculate splits for every kilometre and plan an even-paced {{goal}} race.",
	},
	Headings: []string{
		"{{goal}} {{distance}} Pace Calculator",
		"{{distance}} Pace for {{goal}}",
	},
	Intros: []string{
		"A {{goal}} {{distance}} means holding {{pace}} per kilometre for {{distanceKm}} km. Enter your own numbers to adjust the splits.",
		"To finish the {{distance}} in {{finish}} you need {{pace}} per km. The calculator turns that goal into splits you can train with.",
	},
	Benefits: [][]string{
		{"Pace per kilometre and mile", "Split table for the full distance", "Training paces for your goal"},
		{"Instant split times", "Even and negative split plans", "Pace bands you can print", "Goal time sanity checks"},
	},
}

var fuelTemplates = variation.Templates{
	Titles: []string{
		"{{distance}} Fueling Plan: Carbs, Gels and Fluids",
		"How to Fuel a {{distance}}: Nutrition Calculator",
	},
	Descriptions: []string{
		"Build a {{distance}} fueling plan: how many carbs per hour, when to take gels and how much to drink over {{distanceKm}} km, tuned to your finish time.",
		"Calculate carbohydrate, gel and fluid needs for the {{distance}}. Get a timed fueling schedule for {{distanceKm}} km that matches your race pace.",
	},
	Headings: []string{
		"{{distance}} Fueling Planner",
		"Fueling for the {{distance}}",
	},
	Intros: []string{
		"Running {{distanceKm}} km burns through glycogen fast. Plan carbs and fluids before race day so the last kilometres are not the hardest.",
		"Fueling the {{distance}} is a pacing problem too. Set a carb target per hour and the planner spreads gels and drinks across the course.",
	},
	Benefits: [][]string{
		{"Carbs per hour target", "Gel timing schedule", "Fluid and sodium guidance"},
		{"Personalised fueling plan", "Aid station strategy", "Carb-loading reminders", "Gut training tips"},
	},
}

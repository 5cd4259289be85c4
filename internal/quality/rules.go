package quality

// Rules holds the thresholds the validator applies.
type Rules struct {
	TitleMin            int
	TitleMax            int
	DescriptionMin      int
	DescriptionMax      int
	MinBenefits         int
	MaxBenefits         int
	ShortIntro          int
	ThinIntro           int
	ShortFAQAnswer      int
	SimilarityThreshold float64
	MaxConflicts        int

	// Brand is excluded from key-phrase extraction.
	Brand string
	// SiteURL makes absolute links on the same host count as internal.
	SiteURL string
	// StopPhrases are key phrases never reported as cannibalization.
	StopPhrases []string
}

// DefaultRules returns the stock thresholds.
func DefaultRules() Rules {
	return Rules{
		TitleMin:            30,
		TitleMax:            60,
		DescriptionMin:      120,
		DescriptionMax:      160,
		MinBenefits:         3,
		MaxBenefits:         6,
		ShortIntro:          50,
		ThinIntro:           20,
		ShortFAQAnswer:      40,
		SimilarityThreshold: 0.7,
		MaxConflicts:        20,
		StopPhrases: []string{
			"step by step",
			"everything you need",
			"need to know",
			"complete guide",
		},
	}
}

const (
	penaltyMissingField   = 20
	penaltyMissingHeading = 15
	penaltyMissingIntro   = 10
	penaltyMissingCTA     = 10
	penaltyShortIntro     = 5
	penaltyLengthBand     = 5
	penaltyNoFAQ          = 5
	penaltyBenefitsBand   = 3
	penaltyNoHowTo        = 3
	penaltyShortAnswer    = 2
)

package quality

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// Validator scores pages and runs catalogue-wide checks. It is stateless
// apart from its rules and safe for concurrent use.
type Validator struct {
	rules Rules
}

// New creates a validator. Zero thresholds fall back to DefaultRules.
func New(rules Rules) *Validator {
	d := DefaultRules()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&rules.TitleMin, d.TitleMin)
	fill(&rules.TitleMax, d.TitleMax)
	fill(&rules.DescriptionMin, d.DescriptionMin)
	fill(&rules.DescriptionMax, d.DescriptionMax)
	fill(&rules.MinBenefits, d.MinBenefits)
	fill(&rules.MaxBenefits, d.MaxBenefits)
	fill(&rules.ShortIntro, d.ShortIntro)
	fill(&rules.ThinIntro, d.ThinIntro)
	fill(&rules.ShortFAQAnswer, d.ShortFAQAnswer)
	fill(&rules.MaxConflicts, d.MaxConflicts)
	if rules.SimilarityThreshold <= 0 {
		rules.SimilarityThreshold = d.SimilarityThreshold
	}
	if rules.StopPhrases == nil {
		rules.StopPhrases = d.StopPhrases
	}
	return &Validator{rules: rules}
}

// Rules returns the effective thresholds.
func (v *Validator) Rules() Rules { return v.rules }

type pageCheck struct {
	result PageResult
	score  int
}

func (c *pageCheck) fail(field, msg, suggestion string, penalty int) {
	c.score -= penalty
	c.result.Errors = append(c.result.Errors, Issue{
		PageID: c.result.PageID, Field: field, Message: msg,
		Severity: SeverityError, Suggestion: suggestion, Penalty: penalty,
	})
}

func (c *pageCheck) warn(field, msg, suggestion string, penalty int) {
	c.score -= penalty
	c.result.Warnings = append(c.result.Warnings, Issue{
		PageID: c.result.PageID, Field: field, Message: msg,
		Severity: SeverityWarning, Suggestion: suggestion, Penalty: penalty,
	})
}

// ValidatePage scores one descriptor starting from 100. The page is valid
// iff no error-level issue was recorded.
func (v *Validator) ValidatePage(d *page.Descriptor) PageResult {
	r := v.rules
	c := &pageCheck{result: PageResult{PageID: d.ID}, score: 100}

	required := []struct {
		field, value string
	}{
		{"id", d.ID},
		{"shortName", d.ShortName},
		{"path", d.Path},
		{"title", d.Title},
		{"description", d.Description},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			c.fail(f.field, fmt.Sprintf("missing %s", f.field), "", penaltyMissingField)
		}
	}
	if strings.TrimSpace(d.Heading) == "" {
		c.fail("heading", "missing heading", "add a primary heading", penaltyMissingHeading)
	}

	intro := strings.TrimSpace(d.Intro)
	switch n := utf8.RuneCountInString(intro); {
	case n == 0:
		c.fail("intro", "missing intro", "add an intro paragraph", penaltyMissingIntro)
	case n < r.ShortIntro:
		c.warn("intro", fmt.Sprintf("intro is %d characters, expected at least %d", n, r.ShortIntro),
			"expand the intro paragraph", penaltyShortIntro)
	}

	if d.Title != "" {
		if msg, ok := outsideBand("title", d.Title, r.TitleMin, r.TitleMax); ok {
			c.warn("title", msg, fmt.Sprintf("keep titles between %d and %d characters", r.TitleMin, r.TitleMax), penaltyLengthBand)
		}
	}
	if d.Description != "" {
		if msg, ok := outsideBand("description", d.Description, r.DescriptionMin, r.DescriptionMax); ok {
			c.warn("description", msg, fmt.Sprintf("keep descriptions between %d and %d characters", r.DescriptionMin, r.DescriptionMax), penaltyLengthBand)
		}
	}

	if n := len(d.Benefits); n < r.MinBenefits || n > r.MaxBenefits {
		c.warn("benefits", fmt.Sprintf("%d benefit bullets, expected %d-%d", n, r.MinBenefits, r.MaxBenefits), "", penaltyBenefitsBand)
	}

	if d.CTA == nil || strings.TrimSpace(d.CTA.Target) == "" {
		c.warn("cta", "missing call-to-action", "link the page to its tool", penaltyMissingCTA)
	}

	if len(d.FAQ) == 0 {
		c.warn("faq", "no FAQ entries", "add at least one question", penaltyNoFAQ)
	}
	for i, f := range d.FAQ {
		if utf8.RuneCountInString(strings.TrimSpace(f.Answer)) < r.ShortFAQAnswer {
			c.warn("faq", fmt.Sprintf("faq[%d] answer shorter than %d characters", i, r.ShortFAQAnswer), "", penaltyShortAnswer)
		}
	}

	if d.HowTo == nil {
		c.warn("howTo", "no how-to block", "", penaltyNoHowTo)
	}

	c.result.Score = max(c.score, 0)
	c.result.Valid = len(c.result.Errors) == 0
	return c.result
}

func outsideBand(field, s string, lo, hi int) (string, bool) {
	n := utf8.RuneCountInString(s)
	switch {
	case n < lo:
		return fmt.Sprintf("%s is %d characters, below %d", field, n, lo), true
	case n > hi:
		return fmt.Sprintf("%s is %d characters, above %d", field, n, hi), true
	default:
		return "", false
	}
}

// isThin reports whether a page has too little content for publishing.
func (v *Validator) isThin(d *page.Descriptor) bool {
	return utf8.RuneCountInString(strings.TrimSpace(d.Intro)) < v.rules.ThinIntro || len(d.Benefits) == 0
}

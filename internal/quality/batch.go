package quality

import (
	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// ValidateAll validates every page and runs the catalogue-wide checks. The
// input is taken as a raw slice so callers can inspect catalogues that would
// fail construction. Repeated calls on the same input give identical results.
func (v *Validator) ValidateAll(pages []page.Descriptor, hubs *page.HubSet) *BatchResult {
	b := v.validatePages(pages)
	b.Similar = SimilarIntros(pages, v.rules.SimilarityThreshold)
	v.crossChecks(b, pages, hubs)
	return b
}

// ValidateAllPartitioned is ValidateAll with intro similarity computed only
// within each category, bounding the pairwise work on large catalogues.
func (v *Validator) ValidateAllPartitioned(pages []page.Descriptor, hubs *page.HubSet) *BatchResult {
	b := v.validatePages(pages)
	buckets := make(map[page.Category][]page.Descriptor)
	for i := range pages {
		buckets[pages[i].Category] = append(buckets[pages[i].Category], pages[i])
	}
	for _, cat := range page.Categories() {
		b.Similar = append(b.Similar, SimilarIntros(buckets[cat], v.rules.SimilarityThreshold)...)
	}
	v.crossChecks(b, pages, hubs)
	return b
}

func (v *Validator) validatePages(pages []page.Descriptor) *BatchResult {
	b := &BatchResult{
		Pages:           make([]PageResult, 0, len(pages)),
		Total:           len(pages),
		ErrorsByField:   make(map[string]int),
		WarningsByField: make(map[string]int),
	}
	total := 0
	for i := range pages {
		r := v.ValidatePage(&pages[i])
		b.Pages = append(b.Pages, r)
		total += r.Score
		if r.Valid {
			b.ValidCount++
		} else {
			b.InvalidCount++
		}
		for _, is := range r.Errors {
			b.ErrorsByField[is.Field]++
		}
		for _, is := range r.Warnings {
			b.WarningsByField[is.Field]++
		}
	}
	if len(pages) > 0 {
		b.AverageScore = float64(total) / float64(len(pages))
	}
	return b
}

func (v *Validator) crossChecks(b *BatchResult, pages []page.Descriptor, hubs *page.HubSet) {
	b.DuplicateTitles = ExactDuplicates(pages, "title", titleOf)
	b.DuplicateDescs = ExactDuplicates(pages, "description", descriptionOf)
	b.Cannibalization = v.Cannibalization(pages)
	b.BrokenLinks, b.Orphans = v.LinkIntegrity(pages, hubs)
}

// ExitCode converts batch findings into a CI exit status.
func ExitCode(b *BatchResult) int {
	if b.InvalidCount > 0 || b.DuplicateCount() > 10 || len(b.BrokenLinks) > 0 {
		return 1
	}
	return 0
}

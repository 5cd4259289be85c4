package quality

import "fmt"

// Grade is the letter grade of a catalogue.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps an average score to a letter grade.
func GradeFor(avg float64) Grade {
	switch {
	case avg >= 90:
		return GradeA
	case avg >= 80:
		return GradeB
	case avg >= 70:
		return GradeC
	case avg >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// Summary holds the headline counts of a batch.
type Summary struct {
	Pages           int `json:"pages"`
	Valid           int `json:"valid"`
	Invalid         int `json:"invalid"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	DuplicateGroups int `json:"duplicateGroups"`
	SimilarPairs    int `json:"similarPairs"`
	Conflicts       int `json:"cannibalization"`
	BrokenLinks     int `json:"brokenLinks"`
	Orphans         int `json:"orphans"`
}

// QualityReport grades a batch and recommends fixes.
type QualityReport struct {
	Grade           Grade    `json:"grade"`
	AverageScore    float64  `json:"averageScore"`
	Summary         Summary  `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Report grades the batch and derives recommendations from failed checks.
func Report(b *BatchResult) QualityReport {
	s := Summary{
		Pages:           b.Total,
		Valid:           b.ValidCount,
		Invalid:         b.InvalidCount,
		Errors:          b.ErrorCount(),
		Warnings:        b.WarningCount(),
		DuplicateGroups: b.DuplicateCount(),
		SimilarPairs:    len(b.Similar),
		Conflicts:       len(b.Cannibalization),
		BrokenLinks:     len(b.BrokenLinks),
		Orphans:         len(b.Orphans),
	}

	var recs []string
	if s.Invalid > 0 {
		recs = append(recs, fmt.Sprintf("Fix %d invalid page(s) missing required fields.", s.Invalid))
	}
	if n := b.WarningsByField["title"] + b.WarningsByField["description"]; n > 0 {
		recs = append(recs, fmt.Sprintf("Adjust %d title/description length(s) to the recommended bands.", n))
	}
	if n := b.WarningsByField["intro"]; n > 0 {
		recs = append(recs, fmt.Sprintf("Expand %d short intro paragraph(s).", n))
	}
	if n := b.WarningsByField["cta"]; n > 0 {
		recs = append(recs, fmt.Sprintf("Add a call-to-action to %d page(s).", n))
	}
	if n := b.WarningsByField["faq"]; n > 0 {
		recs = append(recs, "Add or lengthen FAQ answers to qualify for rich results.")
	}
	if s.DuplicateGroups > 0 {
		recs = append(recs, fmt.Sprintf("Rewrite %d duplicated title/description group(s).", s.DuplicateGroups))
	}
	if s.SimilarPairs > 0 {
		recs = append(recs, fmt.Sprintf("Differentiate %d pair(s) of near-identical intros.", s.SimilarPairs))
	}
	if s.Conflicts > 0 {
		recs = append(recs, fmt.Sprintf("Consolidate or retarget %d key phrase(s) shared across pages.", s.Conflicts))
	}
	if s.BrokenLinks > 0 {
		recs = append(recs, fmt.Sprintf("Repair %d broken internal link(s).", s.BrokenLinks))
	}
	if s.Orphans > 0 {
		recs = append(recs, fmt.Sprintf("Link %d orphan page(s) from related content.", s.Orphans))
	}

	return QualityReport{
		Grade:           GradeFor(b.AverageScore),
		AverageScore:    b.AverageScore,
		Summary:         s,
		Recommendations: recs,
	}
}

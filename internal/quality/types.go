package quality

import "fmt"

// Severity indicates the importance level of a validation issue.
type Severity int

const (
	// SeverityInfo marks observations that never affect the score.
	SeverityInfo Severity = iota
	// SeverityWarning lowers the score but keeps the page valid.
	SeverityWarning
	// SeverityError makes the page invalid.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity name in JSON output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a severity name so saved reports can be read back.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Issue is a single problem found on a page.
type Issue struct {
	PageID     string   `json:"pageId"`
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Suggestion string   `json:"suggestion,omitempty"`
	Penalty    int      `json:"penalty"`
}

// PageResult is the outcome of validating one descriptor.
type PageResult struct {
	PageID   string  `json:"pageId"`
	Valid    bool    `json:"valid"`
	Score    int     `json:"score"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Issues returns errors followed by warnings.
func (r PageResult) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

// DuplicateGroup is a set of pages sharing the same normalized value.
type DuplicateGroup struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	PageIDs []string `json:"pageIds"`
}

// SimilarPair is two pages whose intros overlap above the threshold.
type SimilarPair struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// Conflict is a key phrase targeted by more than one page.
type Conflict struct {
	Phrase  string   `json:"phrase"`
	Count   int      `json:"count"`
	PageIDs []string `json:"pageIds"`
}

// BrokenLink is a declared or inline reference that does not resolve.
type BrokenLink struct {
	SourceID string `json:"sourceId"`
	Field    string `json:"field"`
	Target   string `json:"target"`
}

// BatchResult aggregates validation over a whole catalogue.
type BatchResult struct {
	Pages           []PageResult     `json:"pages"`
	Total           int              `json:"total"`
	ValidCount      int              `json:"valid"`
	InvalidCount    int              `json:"invalid"`
	ErrorsByField   map[string]int   `json:"errorsByField"`
	WarningsByField map[string]int   `json:"warningsByField"`
	AverageScore    float64          `json:"averageScore"`
	DuplicateTitles []DuplicateGroup `json:"duplicateTitles"`
	DuplicateDescs  []DuplicateGroup `json:"duplicateDescriptions"`
	Similar         []SimilarPair    `json:"similarContent"`
	Cannibalization []Conflict       `json:"cannibalization"`
	BrokenLinks     []BrokenLink     `json:"brokenLinks"`
	Orphans         []string         `json:"orphans"`
}

// ErrorCount is the total number of error-level issues.
func (b *BatchResult) ErrorCount() int {
	n := 0
	for _, c := range b.ErrorsByField {
		n += c
	}
	return n
}

// WarningCount is the total number of warning-level issues.
func (b *BatchResult) WarningCount() int {
	n := 0
	for _, c := range b.WarningsByField {
		n += c
	}
	return n
}

// DuplicateCount is the number of exact duplicate groups across titles and
// descriptions.
func (b *BatchResult) DuplicateCount() int {
	return len(b.DuplicateTitles) + len(b.DuplicateDescs)
}

package quality

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// CIReport bundles everything a CI run prints.
type CIReport struct {
	Batch    *BatchResult  `json:"batch"`
	Report   QualityReport `json:"report"`
	Gate     *GateResult   `json:"gate,omitempty"`
	ExitCode int           `json:"exitCode"`
}

// NewCIReport derives the report and exit code for a batch. gate may be nil.
func NewCIReport(b *BatchResult, gate *GateResult) *CIReport {
	code := ExitCode(b)
	if gate != nil && !gate.Passed {
		code = 1
	}
	return &CIReport{Batch: b, Report: Report(b), Gate: gate, ExitCode: code}
}

// Formatter formats validation results for output.
type Formatter interface {
	Format(w io.Writer, r *CIReport) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	// Verbose lists every page issue, not just the summary.
	Verbose bool
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(verbose bool) *TextFormatter {
	return &TextFormatter{Verbose: verbose}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, args...)
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, r *CIReport) error {
	out := &errWriter{w: w}
	b := r.Batch
	rule := strings.Repeat("━", 60)

	out.printf("Validated %d page%s\n", b.Total, pluralize(b.Total))
	out.println(rule)

	if f.Verbose {
		for _, p := range b.Pages {
			for _, is := range p.Issues() {
				f.formatIssue(out, is)
			}
		}
		out.println()
	}

	out.printf("Grade: %s (average score %.1f)\n", r.Report.Grade, b.AverageScore)
	out.printf("  %d valid, %d invalid\n", b.ValidCount, b.InvalidCount)
	if n := b.ErrorCount(); n > 0 {
		out.printf("  %d error%s: %s\n", n, pluralize(n), formatTally(b.ErrorsByField))
	}
	if n := b.WarningCount(); n > 0 {
		out.printf("  %d warning%s: %s\n", n, pluralize(n), formatTally(b.WarningsByField))
	}
	out.println()

	out.println("Catalogue checks:")
	out.printf("  duplicate titles:       %d\n", len(b.DuplicateTitles))
	out.printf("  duplicate descriptions: %d\n", len(b.DuplicateDescs))
	out.printf("  similar intros:         %d\n", len(b.Similar))
	out.printf("  cannibalized phrases:   %d\n", len(b.Cannibalization))
	out.printf("  broken links:           %d\n", len(b.BrokenLinks))
	out.printf("  orphan pages:           %d\n", len(b.Orphans))
	if f.Verbose {
		for _, bl := range b.BrokenLinks {
			out.printf("    ✗ %s -> %s (%s)\n", bl.SourceID, bl.Target, bl.Field)
		}
		for _, c := range b.Cannibalization {
			out.printf("    ⚠ %q shared by %d pages\n", c.Phrase, c.Count)
		}
	}

	if len(r.Report.Recommendations) > 0 {
		out.println()
		out.println("Recommendations:")
		for _, rec := range r.Report.Recommendations {
			out.printf("  - %s\n", rec)
		}
	}

	if r.Gate != nil {
		out.println()
		out.println(rule)
		if r.Gate.Passed {
			out.println("✨ Pre-publish gate passed.")
		} else {
			out.println("❌ Pre-publish gate failed:")
		}
		for _, reason := range r.Gate.Blocking {
			out.printf("  ✗ %s\n", reason)
		}
		for _, warning := range r.Gate.Warnings {
			out.printf("  ⚠ %s\n", warning)
		}
	}
	out.println(rule)
	return out.err
}

func (f *TextFormatter) formatIssue(out *errWriter, is Issue) {
	var icon string
	switch is.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	case SeverityInfo:
		icon = "ℹ"
	}
	out.printf("%s %s\n", icon, is.PageID)
	out.printf("  %s: %s (-%d)\n", is.Field, is.Message, is.Penalty)
	if is.Suggestion != "" {
		out.printf("  Fix: %s\n", is.Suggestion)
	}
}

func formatTally(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, r *CIReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string, verbose bool) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter(verbose)
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

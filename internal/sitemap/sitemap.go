// Package sitemap renders sitemap XML files, splitting into an index when a
// catalogue exceeds the per-file URL limit.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxURLsPerFile is the protocol limit of URLs in one sitemap file.
	MaxURLsPerFile = 50000

	xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

// ChangeFreq is the sitemap change-frequency enum.
type ChangeFreq string

const (
	ChangeAlways  ChangeFreq = "always"
	ChangeHourly  ChangeFreq = "hourly"
	ChangeDaily   ChangeFreq = "daily"
	ChangeWeekly  ChangeFreq = "weekly"
	ChangeMonthly ChangeFreq = "monthly"
	ChangeYearly  ChangeFreq = "yearly"
	ChangeNever   ChangeFreq = "never"
)

// Valid reports whether c is a protocol value.
func (c ChangeFreq) Valid() bool {
	switch c {
	case ChangeAlways, ChangeHourly, ChangeDaily, ChangeWeekly, ChangeMonthly, ChangeYearly, ChangeNever:
		return true
	default:
		return false
	}
}

// URL is one sitemap entry.
type URL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq ChangeFreq
	Priority   float64
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type indexEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []indexEntry `xml:"sitemap"`
}

func (u URL) encode() xmlURL {
	x := xmlURL{Loc: u.Loc}
	if !u.LastMod.IsZero() {
		x.LastMod = u.LastMod.UTC().Format(time.DateOnly)
	}
	if u.ChangeFreq.Valid() {
		x.ChangeFreq = string(u.ChangeFreq)
	}
	x.Priority = formatPriority(u.Priority)
	return x
}

// formatPriority keeps every significant digit of an override such as 0.85,
// with at least one decimal place.
func formatPriority(p float64) string {
	s := strconv.FormatFloat(clamp(p), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// File is one rendered sitemap artifact.
type File struct {
	Name     string
	Content  []byte
	URLCount int
	Index    bool
}

// Options control Generate.
type Options struct {
	// MaxURLs per file; MaxURLsPerFile when not positive.
	MaxURLs int
	// BaseURL prefixes sub-sitemap locations in the index.
	BaseURL string
	// Generated stamps index entries.
	Generated time.Time
}

// Generate renders urls as a single sitemap.xml when they fit, otherwise as
// sitemap-1.xml..sitemap-N.xml followed by sitemap-index.xml.
func Generate(urls []URL, opts Options) ([]File, error) {
	limit := opts.MaxURLs
	if limit <= 0 || limit > MaxURLsPerFile {
		limit = MaxURLsPerFile
	}

	if len(urls) <= limit {
		var buf bytes.Buffer
		if err := WriteURLSet(&buf, urls); err != nil {
			return nil, err
		}
		return []File{{Name: "sitemap.xml", Content: buf.Bytes(), URLCount: len(urls)}}, nil
	}

	var files []File
	idx := sitemapIndex{Xmlns: xmlns}
	base := strings.TrimRight(opts.BaseURL, "/")
	lastmod := ""
	if !opts.Generated.IsZero() {
		lastmod = opts.Generated.UTC().Format(time.DateOnly)
	}
	for start, n := 0, 1; start < len(urls); start, n = start+limit, n+1 {
		end := min(start+limit, len(urls))
		var buf bytes.Buffer
		if err := WriteURLSet(&buf, urls[start:end]); err != nil {
			return nil, err
		}
		name := fmt.Sprintf("sitemap-%d.xml", n)
		files = append(files, File{Name: name, Content: buf.Bytes(), URLCount: end - start})
		idx.Sitemaps = append(idx.Sitemaps, indexEntry{Loc: base + "/" + name, LastMod: lastmod})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return nil, fmt.Errorf("encode sitemap index: %w", err)
	}
	buf.WriteByte('\n')
	files = append(files, File{Name: "sitemap-index.xml", Content: buf.Bytes(), URLCount: len(idx.Sitemaps), Index: true})
	return files, nil
}

// WriteURLSet streams a urlset document to w one entry at a time.
func WriteURLSet(w io.Writer, urls []URL) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	start := xml.StartElement{
		Name: xml.Name{Local: "urlset"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: xmlns}},
	}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode urlset: %w", err)
	}
	for _, u := range urls {
		if err := enc.EncodeElement(u.encode(), xml.StartElement{Name: xml.Name{Local: "url"}}); err != nil {
			return fmt.Errorf("encode url %s: %w", u.Loc, err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode urlset: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Parse reads a urlset document back into entries.
func Parse(data []byte) ([]URL, error) {
	var set urlSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse urlset: %w", err)
	}
	out := make([]URL, 0, len(set.URLs))
	for _, x := range set.URLs {
		u := URL{Loc: x.Loc, ChangeFreq: ChangeFreq(x.ChangeFreq)}
		if x.LastMod != "" {
			t, err := time.Parse(time.DateOnly, x.LastMod)
			if err != nil {
				return nil, fmt.Errorf("parse lastmod %q: %w", x.LastMod, err)
			}
			u.LastMod = t
		}
		if x.Priority != "" {
			p, err := strconv.ParseFloat(x.Priority, 64)
			if err != nil {
				return nil, fmt.Errorf("parse priority %q: %w", x.Priority, err)
			}
			u.Priority = p
		}
		out = append(out, u)
	}
	return out, nil
}

// ParseIndex returns the sub-sitemap locations of an index document.
func ParseIndex(data []byte) ([]string, error) {
	var idx sitemapIndex
	if err := xml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse sitemap index: %w", err)
	}
	out := make([]string, 0, len(idx.Sitemaps))
	for _, s := range idx.Sitemaps {
		out = append(out, s.Loc)
	}
	return out, nil
}

package scale

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// Manifest is the record of one build's outputs.
type Manifest struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Chunks    []ChunkEntry `json:"chunks"`
	Totals    Totals       `json:"totals"`
	Sitemaps  []string     `json:"sitemaps"`
	Status    string       `json:"status"`
	Duration  int64        `json:"duration_ms"`
}

// ChunkEntry describes one written data file.
type ChunkEntry struct {
	ID          string        `json:"id"`
	Path        string        `json:"path"`
	Count       int           `json:"count"`
	Category    page.Category `json:"category,omitempty"`
	Fingerprint string        `json:"fingerprint"`
}

// Totals counts pages overall and per category.
type Totals struct {
	Pages      int            `json:"pages"`
	ByCategory map[string]int `json:"by_category"`
}

// NewManifest starts a manifest with a fresh ID.
func NewManifest(now time.Time) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		Totals:    Totals{ByCategory: make(map[string]int)},
		Status:    "running",
	}
}

// AddChunk records a written chunk and updates the totals.
func (m *Manifest) AddChunk(c Chunk, path string) error {
	fp, err := Fingerprint(c)
	if err != nil {
		return err
	}
	m.Chunks = append(m.Chunks, ChunkEntry{
		ID:          c.ID,
		Path:        path,
		Count:       len(c.Pages),
		Category:    c.Category,
		Fingerprint: fp,
	})
	m.Totals.Pages += len(c.Pages)
	for i := range c.Pages {
		m.Totals.ByCategory[string(c.Pages[i].Category)]++
	}
	return nil
}

// Finish marks the manifest complete.
func (m *Manifest) Finish(status string, d time.Duration) {
	m.Status = status
	m.Duration = d.Milliseconds()
}

// Fingerprint is the content fingerprint of a chunk: the chunk header and its
// pages rendered as canonical YAML.
func Fingerprint(c Chunk) (string, error) {
	header, err := yaml.Marshal(map[string]any{
		"id":       c.ID,
		"category": string(c.Category),
		"count":    len(c.Pages),
	})
	if err != nil {
		return "", fmt.Errorf("marshal chunk header: %w", err)
	}
	body, err := yaml.Marshal(c.Pages)
	if err != nil {
		return "", fmt.Errorf("marshal chunk pages: %w", err)
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(header), "\n"), string(body)), nil
}

// ToJSON serializes the manifest to JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest's content: chunk
// fingerprints and sitemap names. Two builds of the same catalogue hash the
// same regardless of ID, timestamp or duration.
func (m *Manifest) Hash() (string, error) {
	chunks := append([]ChunkEntry(nil), m.Chunks...)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ID < chunks[j].ID })
	sitemaps := append([]string(nil), m.Sitemaps...)
	sort.Strings(sitemaps)

	hashInput := struct {
		Chunks   []ChunkEntry `json:"chunks"`
		Sitemaps []string     `json:"sitemaps"`
		Totals   Totals       `json:"totals"`
	}{Chunks: chunks, Sitemaps: sitemaps, Totals: m.Totals}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

package scale

import (
	"fmt"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// DefaultMaxPerChunk bounds the number of pages written to one data file.
const DefaultMaxPerChunk = 1000

// ChunkOptions control how pages are split into data files.
type ChunkOptions struct {
	MaxPerChunk int
	ByCategory  bool
}

// Chunk is one bounded slice of the catalogue.
type Chunk struct {
	ID       string            `json:"id"`
	Category page.Category     `json:"category,omitempty"`
	Pages    []page.Descriptor `json:"pages"`
}

// Chunks is an ordered list of chunks.
type Chunks []Chunk

// Map returns the chunks keyed by ID.
func (cs Chunks) Map() map[string][]page.Descriptor {
	out := make(map[string][]page.Descriptor, len(cs))
	for _, c := range cs {
		out[c.ID] = c.Pages
	}
	return out
}

// Total is the number of pages across all chunks.
func (cs Chunks) Total() int {
	n := 0
	for _, c := range cs {
		n += len(c.Pages)
	}
	return n
}

// Split divides pages into chunks of at most MaxPerChunk, preserving input
// order. With ByCategory each chunk holds a single category, in canonical
// category order, and IDs are "<category>-<n>"; otherwise "chunk-<n>".
func Split(pages []page.Descriptor, opts ChunkOptions) Chunks {
	size := opts.MaxPerChunk
	if size <= 0 {
		size = DefaultMaxPerChunk
	}

	if !opts.ByCategory {
		return split(pages, size, "", "chunk")
	}

	buckets := make(map[page.Category][]page.Descriptor)
	for i := range pages {
		buckets[pages[i].Category] = append(buckets[pages[i].Category], pages[i])
	}
	var out Chunks
	for _, cat := range page.Categories() {
		out = append(out, split(buckets[cat], size, cat, string(cat))...)
	}
	return out
}

func split(pages []page.Descriptor, size int, cat page.Category, prefix string) Chunks {
	var out Chunks
	for start, n := 0, 1; start < len(pages); start, n = start+size, n+1 {
		end := min(start+size, len(pages))
		out = append(out, Chunk{
			ID:       fmt.Sprintf("%s-%d", prefix, n),
			Category: cat,
			Pages:    pages[start:end:end],
		})
	}
	return out
}

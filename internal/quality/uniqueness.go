package quality

import (
	"github.com/RoaringBitmap/roaring"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// ExactDuplicates groups pages by the normalized value of field. Only groups
// with more than one member are returned, ordered by first appearance.
func ExactDuplicates(pages []page.Descriptor, field string, value func(*page.Descriptor) string) []DuplicateGroup {
	index := make(map[string]int)
	var groups []DuplicateGroup
	for i := range pages {
		key := normalizeValue(value(&pages[i]))
		if key == "" {
			continue
		}
		if gi, ok := index[key]; ok {
			groups[gi].PageIDs = append(groups[gi].PageIDs, pages[i].ID)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, DuplicateGroup{Field: field, Value: key, PageIDs: []string{pages[i].ID}})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.PageIDs) > 1 {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func titleOf(d *page.Descriptor) string       { return d.Title }
func descriptionOf(d *page.Descriptor) string { return d.Description }

// vocabulary assigns dense ids to words so word sets can be bitmaps.
type vocabulary map[string]uint32

func (v vocabulary) bitmap(ws []string) *roaring.Bitmap {
	bm := roaring.New()
	for _, w := range ws {
		id, ok := v[w]
		if !ok {
			id = uint32(len(v))
			v[w] = id
		}
		bm.Add(id)
	}
	return bm
}

// SimilarIntros compares every pair of intros and returns pairs whose
// content-word Jaccard overlap exceeds threshold, in catalogue order.
func SimilarIntros(pages []page.Descriptor, threshold float64) []SimilarPair {
	vocab := make(vocabulary)
	bms := make([]*roaring.Bitmap, len(pages))
	for i := range pages {
		bms[i] = vocab.bitmap(contentWords(pages[i].Intro))
	}

	var out []SimilarPair
	for i := 0; i < len(pages); i++ {
		if bms[i].IsEmpty() {
			continue
		}
		for j := i + 1; j < len(pages); j++ {
			if bms[j].IsEmpty() {
				continue
			}
			union := bms[i].OrCardinality(bms[j])
			sim := float64(bms[i].AndCardinality(bms[j])) / float64(union)
			if sim > threshold {
				out = append(out, SimilarPair{A: pages[i].ID, B: pages[j].ID, Similarity: sim})
			}
		}
	}
	return out
}

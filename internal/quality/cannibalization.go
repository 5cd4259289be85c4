package quality

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/util/sets"
)

// keyPhrases returns the distinct 2- and 3-word phrases of a page's title
// and heading. Phrases that start or end on a stop word, contain a brand
// word, or are listed stop phrases are skipped.
func (v *Validator) keyPhrases(d *page.Descriptor, brand, stop sets.Set[string]) []string {
	seen := sets.New[string]()
	var out []string
	for _, src := range []string{d.Title, d.Heading} {
		ws := words(src)
		for n := 2; n <= 3; n++ {
			for i := 0; i+n <= len(ws); i++ {
				gram := ws[i : i+n]
				if IsStopWord(gram[0]) || IsStopWord(gram[n-1]) {
					continue
				}
				if containsAny(gram, brand) {
					continue
				}
				phrase := strings.Join(gram, " ")
				if stop.Has(phrase) || !seen.Insert(phrase) {
					continue
				}
				out = append(out, phrase)
			}
		}
	}
	return out
}

func containsAny(ws []string, s sets.Set[string]) bool {
	for _, w := range ws {
		if s.Has(w) {
			return true
		}
	}
	return false
}

// Cannibalization finds key phrases targeted by more than one page, sorted
// by page count descending then phrase, capped at MaxConflicts.
func (v *Validator) Cannibalization(pages []page.Descriptor) []Conflict {
	brand := sets.New(words(v.rules.Brand)...)
	stop := sets.New[string]()
	for _, p := range v.rules.StopPhrases {
		stop.Add(strings.Join(words(p), " "))
	}

	index := make(map[string]*roaring.Bitmap)
	for i := range pages {
		for _, phrase := range v.keyPhrases(&pages[i], brand, stop) {
			bm, ok := index[phrase]
			if !ok {
				bm = roaring.New()
				index[phrase] = bm
			}
			bm.Add(uint32(i))
		}
	}

	var conflicts []Conflict
	for phrase, bm := range index {
		n := int(bm.GetCardinality())
		if n < 2 {
			continue
		}
		ids := make([]string, 0, n)
		it := bm.Iterator()
		for it.HasNext() {
			ids = append(ids, pages[it.Next()].ID)
		}
		conflicts = append(conflicts, Conflict{Phrase: phrase, Count: n, PageIDs: ids})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Count != conflicts[j].Count {
			return conflicts[i].Count > conflicts[j].Count
		}
		return conflicts[i].Phrase < conflicts[j].Phrase
	})
	if len(conflicts) > v.rules.MaxConflicts {
		conflicts = conflicts[:v.rules.MaxConflicts]
	}
	return conflicts
}

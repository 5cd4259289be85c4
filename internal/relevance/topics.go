package relevance

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// topicKeywords maps each topic label to the keywords that signal it. A
// keyword matches anywhere in the lower-cased text, so "plans" and
// "climbing" count for their stems.
var topicKeywords = map[string][]string{
	"marathon":      {"marathon", "26.2", "42k", "42.2"},
	"half-marathon": {"half marathon", "half-marathon", "13.1", "21k", "21.1"},
	"10k":           {"10k", "10 km", "10km"},
	"5k":            {"5k", "5 km", "5km", "parkrun"},
	"ultra":         {"ultra", "ultramarathon", "50k", "100k"},
	"pace":          {"pace", "pacing", "split", "splits", "per km", "per mile", "finish time"},
	"training":      {"training", "plan", "workout", "long run", "tempo", "interval", "intervals"},
	"taper":         {"taper", "tapering"},
	"recovery":      {"recovery", "rest day", "recover"},
	"fueling":       {"fuel", "fueling", "gel", "gels", "carb", "carbs", "carbohydrate", "nutrition"},
	"hydration":     {"hydration", "electrolyte", "electrolytes", "sweat", "drink"},
	"elevation":     {"elevation", "hill", "hills", "hilly", "climb", "climbs", "ascent", "descent", "gpx", "course profile"},
	"race-day":      {"race day", "start line", "bib", "corral", "race week"},
	"platform":      {"strava", "garmin", "coros", "apple watch", "polar"},
	"boston":        {"boston"},
	"berlin":        {"berlin"},
	"london":        {"london"},
	"chicago":       {"chicago"},
	"new-york":      {"new york", "nyc"},
	"tokyo":         {"tokyo"},
	"sydney":        {"sydney"},
	"paris":         {"paris"},
}

var (
	topicLabels []string
	topicIndex  map[string]uint32
)

func init() {
	topicLabels = make([]string, 0, len(topicKeywords))
	for label := range topicKeywords {
		topicLabels = append(topicLabels, label)
	}
	sort.Strings(topicLabels)
	topicIndex = make(map[string]uint32, len(topicLabels))
	for i, label := range topicLabels {
		topicIndex[label] = uint32(i)
	}
}

// Topics returns every known topic label in bit-index order.
func Topics() []string {
	return append([]string(nil), topicLabels...)
}

// ExtractTopics returns the sorted topic labels whose keywords appear in the
// descriptor's text fields.
func ExtractTopics(d *page.Descriptor) []string {
	return Labels(TopicSet(d))
}

// TopicSet is ExtractTopics as a bitmap of topic indices.
func TopicSet(d *page.Descriptor) *roaring.Bitmap {
	text := strings.Join(strings.Fields(descriptorText(d)), " ")
	bm := roaring.New()
	for i, label := range topicLabels {
		for _, kw := range topicKeywords[label] {
			if strings.Contains(text, kw) {
				bm.Add(uint32(i))
				break
			}
		}
	}
	return bm
}

// Labels maps a topic bitmap back to labels.
func Labels(bm *roaring.Bitmap) []string {
	out := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, topicLabels[it.Next()])
	}
	return out
}

func descriptorText(d *page.Descriptor) string {
	parts := []string{d.ShortName, d.Title, d.Description, d.Heading, d.Intro}
	parts = append(parts, d.Benefits...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Jaccard is |a∩b| / |a∪b|, or 0 when both are empty.
func Jaccard(a, b *roaring.Bitmap) float64 {
	union := a.OrCardinality(b)
	if union == 0 {
		return 0
	}
	return float64(a.AndCardinality(b)) / float64(union)
}

const (
	categoryBonus = 0.3
	topicWeight   = 0.7
)

// Relevance scores two descriptors in [0, 1]. It is symmetric.
func Relevance(a, b *page.Descriptor) float64 {
	return score(a.Category == b.Category, TopicSet(a), TopicSet(b))
}

func score(sameCategory bool, a, b *roaring.Bitmap) float64 {
	s := topicWeight * Jaccard(a, b)
	if sameCategory {
		s += categoryBonus
	}
	if s > 1 {
		return 1
	}
	return s
}

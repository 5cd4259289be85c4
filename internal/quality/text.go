package quality

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/seobuilder/internal/markdown"
	"git.home.luguber.info/inful/seobuilder/internal/util/sets"
)

var stopWords = sets.New(
	"a", "about", "after", "all", "an", "and", "any", "are", "as", "at",
	"be", "before", "but", "by", "can", "do", "does", "for", "from", "get",
	"has", "have", "how", "if", "in", "into", "is", "it", "its", "just",
	"more", "most", "my", "no", "not", "of", "on", "or", "our", "out",
	"so", "than", "that", "the", "their", "them", "then", "there", "these",
	"this", "to", "up", "us", "very", "was", "we", "what", "when", "where",
	"which", "while", "who", "why", "will", "with", "you", "your",
)

// IsStopWord reports whether w is ignored by similarity and phrase checks.
func IsStopWord(w string) bool { return stopWords.Has(w) }

// words lower-cases s and splits it into tokens of letters and digits.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// contentWords is the set of non-stop words of a Markdown fragment.
func contentWords(md string) []string {
	seen := sets.New[string]()
	var out []string
	for _, w := range words(markdown.PlainText(md)) {
		if IsStopWord(w) || !seen.Insert(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// normalizeValue is the key exact-duplicate detection groups on.
func normalizeValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

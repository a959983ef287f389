// Package text extracts comparison keywords from free-form entity text
// (titles, descriptions) for content-based recommendations.
package text

import "strings"

// Tokens shorter than this carry too little signal to keep.
const minTokenLen = 3

// stopwords are excluded from keyword sets: articles, conjunctions, and
// the common prepositions that dominate directory copy.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "into": {}, "about": {},
}

// Keywords lower-cases s, replaces every non-alphanumeric rune with a
// space, splits on whitespace, and drops short tokens, stop-words, and
// duplicates. Empty input yields an empty slice.
func Keywords(s string) []string {
	if s == "" {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, s)

	fields := strings.Fields(cleaned)
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < minTokenLen {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// KeywordSet returns Keywords(s) as a membership set.
func KeywordSet(s string) map[string]struct{} {
	kws := Keywords(s)
	set := make(map[string]struct{}, len(kws))
	for _, k := range kws {
		set[k] = struct{}{}
	}
	return set
}

// Package tags canonicalizes raw tag strings into a flat, comparable
// token space shared by profiles and catalog entities.
//
// Raw tags arrive either as bare labels ("Music") or in category form
// ("Technology:AI"). Only the subtag participates in matching.
package tags

import "strings"

// Normalize canonicalizes a single raw tag: when colons are present,
// everything after the last colon is taken, then the result is trimmed
// and lower-cased. Splitting at the last colon keeps the function
// idempotent on already-normalized tokens regardless of how many
// category levels the raw tag carried.
func Normalize(raw string) string {
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		raw = raw[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// Set is a normalized, deduplicated tag set.
type Set map[string]struct{}

// NewSet normalizes each raw tag and collects the non-empty results.
func NewSet(raw []string) Set {
	s := make(Set, len(raw))
	for _, r := range raw {
		if t := Normalize(r); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Has reports membership of an already-normalized token.
func (s Set) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Add normalizes raw and inserts it; empty results are dropped.
func (s Set) Add(raw string) {
	if t := Normalize(raw); t != "" {
		s[t] = struct{}{}
	}
}

// Slice returns the members in unspecified order.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}

// Package dupes flags likely duplicate catalog entities before they are
// published, comparing normalized titles and outbound links.
package dupes

import (
	"strings"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// Default detector thresholds.
const (
	defaultTitleThreshold = 0.8
	defaultPathThreshold  = 0.8
)

// Match describes one suspected duplicate of a candidate entity.
type Match struct {
	EntityID        string  `json:"entity_id"`
	Title           string  `json:"title"`
	TitleSimilarity float64 `json:"title_similarity"`
	DuplicateLink   bool    `json:"duplicate_link"`
}

// Detector compares a candidate entity against existing ones.
type Detector struct {
	titleThreshold float64
	pathThreshold  float64
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithTitleThreshold sets the minimum normalized-title similarity that
// counts as a duplicate on its own.
func WithTitleThreshold(t float64) Option {
	return func(d *Detector) {
		if t > 0 && t <= 1 {
			d.titleThreshold = t
		}
	}
}

// WithPathThreshold sets the minimum same-domain path similarity that
// marks two links as pointing at the same content.
func WithPathThreshold(t float64) Option {
	return func(d *Detector) {
		if t > 0 && t <= 1 {
			d.pathThreshold = t
		}
	}
}

// NewDetector creates a detector with configuration options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		titleThreshold: defaultTitleThreshold,
		pathThreshold:  defaultPathThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Check reports existing entities that look like duplicates of candidate.
// A matching link is a definite duplicate; otherwise a near-identical
// normalized title is enough.
func (d *Detector) Check(candidate model.Entity, existing []model.Entity) []Match {
	var matches []Match
	for _, e := range existing {
		if e.ID == candidate.ID {
			continue
		}
		linked := d.relatedLinks(candidate.Link, e.Link)
		titleSim := Similarity(normalizeTitle(candidate.Title), normalizeTitle(e.Title))
		if !linked && titleSim < d.titleThreshold {
			continue
		}
		matches = append(matches, Match{
			EntityID:        e.ID,
			Title:           e.Title,
			TitleSimilarity: titleSim,
			DuplicateLink:   linked,
		})
	}
	return matches
}

// relatedLinks reports whether the two URLs point at the same content:
// either equal after normalization, or same domain with near-identical
// paths (tracking parameters and the like tolerated).
func (d *Detector) relatedLinks(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	na, nb := normalizeLink(a), normalizeLink(b)
	if na == nb {
		return true
	}
	da, db := linkDomain(a), linkDomain(b)
	if da == "" || da != db {
		return false
	}
	pa := strings.TrimPrefix(na, da)
	pb := strings.TrimPrefix(nb, db)
	return Similarity(pa, pb) > d.pathThreshold
}

// normalizeTitle lower-cases and strips everything but letters, digits
// and spaces.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// normalizeLink strips scheme, leading www, and trailing slashes.
func normalizeLink(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimRight(u, "/")
}

// linkDomain returns the host part of a normalized link.
func linkDomain(u string) string {
	n := normalizeLink(u)
	if i := strings.IndexByte(n, '/'); i >= 0 {
		return n[:i]
	}
	return n
}

// Similarity returns 1 - levenshtein(a,b)/max(len), in [0,1]. Two empty
// strings are identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(a, b string) int {
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = minInt(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

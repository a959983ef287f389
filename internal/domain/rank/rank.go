// Package rank orders scored candidates into the final result list.
package rank

import (
	"sort"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// Options control filtering and truncation. The zero value keeps every
// candidate and applies no truncation.
type Options struct {
	// MinScore drops candidates whose total score is below the threshold.
	// Typical values: 20 for personalized mode, 10 for item-based mode.
	MinScore float64

	// TopK truncates the ranked list; 0 or negative means unlimited.
	TopK int
}

// Rank filters results below the minimum score, sorts the rest descending
// by total score, and truncates to top-K. The sort is stable so that ties
// keep their original catalog order and repeated calls over the same
// input produce identical output.
func Rank(results []model.MatchResult, opts Options) []model.MatchResult {
	ranked := make([]model.MatchResult, 0, len(results))
	for _, r := range results {
		if r.TotalScore < opts.MinScore {
			continue
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	if opts.TopK > 0 && len(ranked) > opts.TopK {
		ranked = ranked[:opts.TopK]
	}
	return ranked
}

package smoke

import (
	"context"
	"fmt"

	"github.com/tribe-app/matchd/pkg/logger"
)

// Score bounds enforced by the service.
const (
	scoreMin = 0.0
	scoreMax = 100.0
)

// verifyRanking checks the invariants every ranked response must hold:
// scores inside [0,100], descending order, and at most limit entries.
func verifyRanking(results []Match, limit int) error {
	if limit > 0 && len(results) > limit {
		return fmt.Errorf("got %d results, want at most %d", len(results), limit)
	}
	for i, m := range results {
		if m.TotalScore < scoreMin || m.TotalScore > scoreMax {
			return fmt.Errorf("result %d (%s): score %.3f out of bounds", i, m.EntityID, m.TotalScore)
		}
		if i > 0 && m.TotalScore > results[i-1].TotalScore {
			return fmt.Errorf("result %d (%s): score %.3f above preceding %.3f",
				i, m.EntityID, m.TotalScore, results[i-1].TotalScore)
		}
		for factor, v := range m.Breakdown {
			if v < scoreMin || v > scoreMax {
				return fmt.Errorf("result %d (%s): factor %s score %.3f out of bounds",
					i, m.EntityID, factor, v)
			}
		}
	}
	return nil
}

// verifyDeterminism compares two rankings for the same request; the
// service must return identical orderings and scores.
func verifyDeterminism(first, second []Match) error {
	if len(first) != len(second) {
		return fmt.Errorf("result count changed between identical requests: %d vs %d",
			len(first), len(second))
	}
	for i := range first {
		if first[i].EntityID != second[i].EntityID {
			return fmt.Errorf("position %d changed between identical requests: %s vs %s",
				i, first[i].EntityID, second[i].EntityID)
		}
		if first[i].TotalScore != second[i].TotalScore {
			return fmt.Errorf("score for %s changed between identical requests: %.6f vs %.6f",
				first[i].EntityID, first[i].TotalScore, second[i].TotalScore)
		}
	}
	return nil
}

// displayRanking logs the top entries of a ranked response.
func displayRanking(ctx context.Context, label string, results []Match) {
	top := len(results)
	if top > 5 {
		top = 5
	}
	for i := 0; i < top; i++ {
		logger.Get().Info(ctx, "ranked entry",
			logger.String("mode", label),
			logger.Int("rank", i+1),
			logger.String("entityID", results[i].EntityID),
			logger.Float64("score", results[i].TotalScore),
		)
	}
}

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/domain/dupes"
	"github.com/tribe-app/matchd/internal/domain/model"
)

// duplicateLookback bounds how far back recently-expired entities are
// still compared against; postings often get resubmitted shortly after
// their deadline passes.
const duplicateLookback = 30 * 24 * time.Hour

// CheckDuplicates compares a candidate entity against the existing
// collection and reports suspected duplicates.
func (e *Engine) CheckDuplicates(ctx context.Context, candidate model.Entity) ([]dupes.Match, error) {
	existing, err := e.source.FetchCandidates(ctx, candidate.Collection, catalog.Filter{
		Now: e.now().Add(-duplicateLookback),
	})
	if err != nil {
		return nil, fmt.Errorf("check duplicates %s: %w", candidate.ID, err)
	}
	return e.detector.Check(candidate, existing), nil
}

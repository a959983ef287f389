package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/domain/rank"
	"github.com/tribe-app/matchd/internal/domain/scoring"
	"github.com/tribe-app/matchd/internal/domain/tags"
	"github.com/tribe-app/matchd/internal/domain/text"
	"github.com/tribe-app/matchd/pkg/logger"
	"github.com/tribe-app/matchd/pkg/metrics"
)

// itemKeywords builds the comparison set for item-based mode: extracted
// title/description keywords plus normalized tags, organization, and
// category labels.
func itemKeywords(e model.Entity) map[string]struct{} {
	set := text.KeywordSet(e.Title + " " + e.Description)
	for _, t := range e.Tags {
		if n := tags.Normalize(t); n != "" {
			set[n] = struct{}{}
		}
	}
	if org := tags.Normalize(e.Organization); org != "" {
		set[org] = struct{}{}
	}
	if cat := tags.Normalize(e.Category); cat != "" {
		set[cat] = struct{}{}
	}
	return set
}

// entityGetter is implemented by sources that can look up a stored entity
// by ID. Sources without it cannot serve SimilarItemsByID.
type entityGetter interface {
	GetEntity(ctx context.Context, id string) (model.Entity, error)
}

// SimilarItemsByID loads a stored item and recommends entities similar to
// it. The source must support direct lookup by ID.
func (e *Engine) SimilarItemsByID(ctx context.Context, id string, collection model.CollectionType, topK int) ([]model.MatchResult, error) {
	getter, ok := e.source.(entityGetter)
	if !ok {
		return nil, fmt.Errorf("similar items %s: %w", id, catalog.ErrEntityNotFound)
	}
	ref, err := getter.GetEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("similar items %s: %w", id, err)
	}
	if ref.Collection != collection {
		return nil, fmt.Errorf("similar items %s: %w", id, catalog.ErrEntityNotFound)
	}
	return e.SimilarItems(ctx, ref, collection, topK)
}

// SimilarItems recommends entities similar to a reference item, scored by
// keyword Jaccard similarity only. The reference item is excluded from
// the pool and expired candidates are filtered before scoring.
func (e *Engine) SimilarItems(ctx context.Context, ref model.Entity, collection model.CollectionType, topK int) ([]model.MatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordMatchLatency(modeSimilar, float64(time.Since(start).Milliseconds()))
	}()
	metrics.RecordMatchRequest(modeSimilar)

	pool, err := e.source.FetchCandidates(ctx, collection, catalog.Filter{
		Now:       e.now(),
		ExcludeID: ref.ID,
		Limit:     e.poolLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("similar items %s: %w", ref.ID, err)
	}
	if len(pool) == 0 {
		metrics.RecordEmptyPool(modeSimilar)
		return []model.MatchResult{}, nil
	}

	ranked := e.RankSimilar(ctx, ref, pool, topK)
	e.logger.Debug(ctx, "similar items complete",
		logger.String("refID", ref.ID),
		logger.Int("candidates", len(pool)),
		logger.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// RankSimilar is the pure form of item-based mode over an already-fetched
// candidate pool.
func (e *Engine) RankSimilar(ctx context.Context, ref model.Entity, pool []model.Entity, topK int) []model.MatchResult {
	refKeywords := itemKeywords(ref)

	results := make([]model.MatchResult, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == ref.ID {
			continue
		}
		similarity := scoring.KeywordJaccard(refKeywords, itemKeywords(candidate)) * 100
		results = append(results, model.MatchResult{
			EntityID:   candidate.ID,
			TotalScore: similarity,
			Breakdown:  map[string]float64{model.FactorKeywords: similarity},
		})
	}
	metrics.RecordCandidatesScored(len(results))

	if topK <= 0 {
		topK = e.topK
	}
	return rank.Rank(results, rank.Options{MinScore: similarMinScore, TopK: topK})
}

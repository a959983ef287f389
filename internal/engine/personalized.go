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

// interestProfile is the implicit profile personalized mode derives from
// a user's historical applications and saved items. It is a different
// representation than the quiz-derived Profile: aggregated keywords and
// seen organizations/categories/locations, no ordinal levels.
type interestProfile struct {
	keywords      map[string]struct{}
	organizations map[string]struct{}
	categories    map[string]struct{}
	locations     map[string]struct{}
}

// buildInterestProfile scans the user's history. An empty history yields
// an empty-interest profile, which scores low everywhere but never errors.
func buildInterestProfile(h model.UserHistory) interestProfile {
	p := interestProfile{
		keywords:      make(map[string]struct{}),
		organizations: make(map[string]struct{}),
		categories:    make(map[string]struct{}),
		locations:     make(map[string]struct{}),
	}
	absorb := func(e model.Entity) {
		for _, k := range text.Keywords(e.Title) {
			p.keywords[k] = struct{}{}
		}
		for _, k := range text.Keywords(e.Description) {
			p.keywords[k] = struct{}{}
		}
		for _, t := range e.Tags {
			if n := tags.Normalize(t); n != "" {
				p.keywords[n] = struct{}{}
			}
		}
		if e.Organization != "" {
			p.organizations[e.Organization] = struct{}{}
		}
		if e.Category != "" {
			p.categories[e.Category] = struct{}{}
		}
		if e.Location != "" {
			p.locations[e.Location] = struct{}{}
		}
	}
	for _, e := range h.Applications {
		absorb(e)
	}
	for _, e := range h.SavedItems {
		absorb(e)
	}
	return p
}

// scoreAgainst computes the personalized breakdown for one candidate:
// weighted keyword similarity plus flat bonuses for organizations,
// categories and locations the user has interacted with before.
func (p interestProfile) scoreAgainst(e model.Entity) model.MatchResult {
	candidateKeywords := text.KeywordSet(e.Title + " " + e.Description)
	for _, t := range e.Tags {
		if n := tags.Normalize(t); n != "" {
			candidateKeywords[n] = struct{}{}
		}
	}

	keywordScore := scoring.KeywordJaccard(p.keywords, candidateKeywords) * 100
	breakdown := map[string]float64{
		model.FactorKeywords:     keywordScore,
		model.FactorOrganization: 0,
		model.FactorCategory:     0,
		model.FactorLocation:     0,
	}

	total := keywordScore * keywordWeight
	if _, ok := p.organizations[e.Organization]; ok && e.Organization != "" {
		breakdown[model.FactorOrganization] = organizationBonus
		total += organizationBonus
	}
	if _, ok := p.categories[e.Category]; ok && e.Category != "" {
		breakdown[model.FactorCategory] = categoryBonus
		total += categoryBonus
	}
	if _, ok := p.locations[e.Location]; ok && e.Location != "" {
		breakdown[model.FactorLocation] = locationBonus
		total += locationBonus
	}
	if total > 100 {
		total = 100
	}

	return model.MatchResult{
		EntityID:   e.ID,
		TotalScore: total,
		Breakdown:  breakdown,
	}
}

// Personalized recommends future-dated entities based on the user's
// historical applications and saved items.
func (e *Engine) Personalized(ctx context.Context, userID string, collection model.CollectionType, topK int) ([]model.MatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordMatchLatency(modePersonalized, float64(time.Since(start).Milliseconds()))
	}()
	metrics.RecordMatchRequest(modePersonalized)

	history, err := e.source.FetchUserHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalized %s: %w", userID, err)
	}

	pool, err := e.source.FetchCandidates(ctx, collection, catalog.Filter{
		Now:   e.now(),
		Limit: e.poolLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("personalized %s: %w", userID, err)
	}
	if len(pool) == 0 {
		metrics.RecordEmptyPool(modePersonalized)
		return []model.MatchResult{}, nil
	}

	ranked := e.RankPersonalized(ctx, history, pool, topK)
	e.logger.Debug(ctx, "personalized recommendations complete",
		logger.String("userID", userID),
		logger.Int("candidates", len(pool)),
		logger.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// RankPersonalized is the pure form of personalized mode over an
// already-fetched candidate pool.
func (e *Engine) RankPersonalized(ctx context.Context, history model.UserHistory, pool []model.Entity, topK int) []model.MatchResult {
	interests := buildInterestProfile(history)

	results := make([]model.MatchResult, 0, len(pool))
	for _, candidate := range pool {
		results = append(results, interests.scoreAgainst(candidate))
	}
	metrics.RecordCandidatesScored(len(results))

	if topK <= 0 {
		topK = e.topK
	}
	return rank.Rank(results, rank.Options{MinScore: personalizedMinScore, TopK: topK})
}

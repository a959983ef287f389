// Package engine orchestrates the compatibility scoring pipeline: it
// pulls candidate pools through the catalog source, drives the per-factor
// scorers in parallel, and ranks the results.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/batch"
	"github.com/tribe-app/matchd/internal/domain/dupes"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/domain/rank"
	"github.com/tribe-app/matchd/internal/domain/scoring"
	"github.com/tribe-app/matchd/pkg/logger"
	"github.com/tribe-app/matchd/pkg/metrics"
)

// Default engine configuration constants.
const (
	defaultTopK          = 10
	defaultPoolLimit     = 20 // candidate pool size fetched per request
	defaultMinScore      = 0  // profile mode returns the full ranking
	similarMinScore      = 10 // item-based threshold, 0.1 on the [0,1] scale
	personalizedMinScore = 20 // personalized threshold, 0.2 on the [0,1] scale

	// Flat personalized-mode bonuses on the 0-100 scale.
	keywordWeight     = 0.40
	organizationBonus = 30
	categoryBonus     = 20
	locationBonus     = 10
)

// Mode labels used in logs and metrics.
const (
	modeProfile      = "profile"
	modeSimilar      = "similar"
	modePersonalized = "personalized"
)

// Engine is the top-level entry point for all recommendation modes. It is
// stateless between requests; concurrent calls are independent.
type Engine struct {
	mu sync.Mutex

	source   catalog.Source
	pool     *batch.Pool
	detector *dupes.Detector

	// Configuration
	topK        int
	poolLimit   int
	minScore    float64
	workers     int
	profileW    scoring.Weights
	universityW scoring.Weights
	now         func() time.Time
	started     bool
	ownedPool   bool
	logger      logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSource sets the catalog source. Required.
func WithSource(src catalog.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

// WithTopK sets the default result truncation.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithPoolLimit caps the candidate pool fetched per request.
func WithPoolLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.poolLimit = n
		}
	}
}

// WithMinScore sets the profile-mode relevance threshold.
func WithMinScore(s float64) Option {
	return func(e *Engine) {
		if s >= 0 {
			e.minScore = s
		}
	}
}

// WithWorkers sets the scoring pool size.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithProfileWeights overrides the plain profile-match weight vector.
// Invalid vectors are rejected and the default kept.
func WithProfileWeights(w scoring.Weights) Option {
	return func(e *Engine) {
		if w.Validate() == nil {
			e.profileW = w
		}
	}
}

// WithUniversityWeights overrides the university-aware weight vector.
// Invalid vectors are rejected and the default kept.
func WithUniversityWeights(w scoring.Weights) Option {
	return func(e *Engine) {
		if w.Validate() == nil {
			e.universityW = w
		}
	}
}

// WithPool injects a shared batch pool; the engine will not manage its
// lifecycle.
func WithPool(p *batch.Pool) Option {
	return func(e *Engine) {
		if p != nil {
			e.pool = p
			e.ownedPool = false
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used for expiry filtering.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		topK:        defaultTopK,
		poolLimit:   defaultPoolLimit,
		minScore:    defaultMinScore,
		profileW:    scoring.ProfileMatchWeights(),
		universityW: scoring.UniversityAwareWeights(),
		detector:    dupes.NewDetector(),
		now:         time.Now,
		ownedPool:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}
	return e
}

// Start brings up the scoring pool. Starting twice is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil
	}
	if e.source == nil {
		return fmt.Errorf("engine start: no catalog source configured")
	}
	if e.pool == nil {
		poolOpts := []batch.Option{batch.WithLogger(e.logger.Named("batch"))}
		if e.workers > 0 {
			poolOpts = append(poolOpts, batch.WithWorkers(e.workers))
		}
		e.pool = batch.New(poolOpts...)
		e.ownedPool = true
	}
	if e.ownedPool {
		e.pool.Start(ctx)
	}
	e.started = true
	e.logger.Info(ctx, "recommendation engine started",
		logger.Int("topK", e.topK),
		logger.Int("poolLimit", e.poolLimit),
	)
	return nil
}

// Stop shuts down the scoring pool if the engine owns it.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return
	}
	if e.ownedPool {
		if err := e.pool.Stop(); err != nil {
			e.logger.Warn(context.Background(), "batch pool stop", logger.Error(err))
		}
	}
	e.started = false
}

// ScoreProfile scores a profile against an already-fetched catalog slice
// using an explicit weight vector, and returns the full ranking sorted
// descending. It is pure: no fetching, no threshold, no truncation.
func (e *Engine) ScoreProfile(ctx context.Context, p model.Profile, entities []model.Entity, w scoring.Weights) ([]model.MatchResult, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("score profile: %w", err)
	}
	results, err := e.scoreAll(ctx, p, entities, w)
	if err != nil {
		return nil, err
	}
	return rank.Rank(results, rank.Options{}), nil
}

// scoreAll fans the candidates out across the batch pool and gathers the
// per-candidate results in catalog order.
func (e *Engine) scoreAll(ctx context.Context, p model.Profile, entities []model.Entity, w scoring.Weights) ([]model.MatchResult, error) {
	scorer := scoring.NewProfileScorer(scoring.WithWeights(w))
	results := make([]model.MatchResult, len(entities))
	errs := make([]error, len(entities))

	run := func(i int) {
		results[i], errs[i] = scorer.Score(ctx, p, entities[i])
	}
	if e.pool != nil {
		if err := e.pool.ForEach(ctx, len(entities), run); err != nil {
			return nil, fmt.Errorf("score candidates: %w", err)
		}
	} else {
		for i := range entities {
			run(i)
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("score candidates: %w", err)
		}
	}
	metrics.RecordCandidatesScored(len(entities))
	return results, nil
}

// MatchProfile runs the quiz-derived matching path for a stored user
// profile: fetch future-dated candidates, score with the plain
// profile-match weights, rank, truncate.
func (e *Engine) MatchProfile(ctx context.Context, userID string, collection model.CollectionType, topK int) ([]model.MatchResult, error) {
	return e.matchProfile(ctx, userID, collection, topK, false)
}

// MatchProfileUniversity is the university-aware variant: the candidate
// pool is restricted to the profile's university and scored with the
// university-aware weight vector. The two vectors are not interchangeable.
func (e *Engine) MatchProfileUniversity(ctx context.Context, userID string, collection model.CollectionType, topK int) ([]model.MatchResult, error) {
	return e.matchProfile(ctx, userID, collection, topK, true)
}

func (e *Engine) matchProfile(ctx context.Context, userID string, collection model.CollectionType, topK int, universityAware bool) ([]model.MatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordMatchLatency(modeProfile, float64(time.Since(start).Milliseconds()))
	}()
	metrics.RecordMatchRequest(modeProfile)

	p, err := e.source.FetchProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("match profile %s: %w", userID, err)
	}

	f := catalog.Filter{Now: e.now(), Limit: e.poolLimit}
	w := e.profileW
	if universityAware {
		f.University = p.University
		w = e.universityW
	}
	pool, err := e.source.FetchCandidates(ctx, collection, f)
	if err != nil {
		return nil, fmt.Errorf("match profile %s: %w", userID, err)
	}
	if len(pool) == 0 {
		metrics.RecordEmptyPool(modeProfile)
		return []model.MatchResult{}, nil
	}

	results, err := e.scoreAll(ctx, p, pool, w)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = e.topK
	}
	ranked := rank.Rank(results, rank.Options{MinScore: e.minScore, TopK: topK})
	e.logger.Debug(ctx, "profile match complete",
		logger.String("userID", userID),
		logger.Int("candidates", len(pool)),
		logger.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// Stats returns engine statistics for the /stats endpoint.
func (e *Engine) Stats() map[string]interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return map[string]interface{}{
		"started":   e.started,
		"topK":      e.topK,
		"poolLimit": e.poolLimit,
		"minScore":  e.minScore,
	}
}

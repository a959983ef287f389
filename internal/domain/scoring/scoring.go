// Package scoring computes per-factor compatibility scores and aggregates
// them into a single total in [0,100].
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/domain/schedule"
	"github.com/tribe-app/matchd/internal/domain/tags"
)

// Score scale bounds.
const (
	minScoreValue = 0.0
	maxScoreValue = 100.0

	// commitmentDefault is applied when an entity declares no commitment
	// level: the scale midpoint, so undeclared entities are neither
	// rewarded nor punished.
	commitmentDefault = 3

	// experienceDefault is applied when an entity declares no experience
	// requirement: level 1, no barrier.
	experienceDefault = 1

	// underQualifiedCap limits the experience score when the user does
	// not meet the entity's requirement. Under-qualified candidates never
	// reach full score but are never zeroed outright.
	underQualifiedCap = 70.0
)

// Interest returns the interest-overlap score in [0,100].
//
// A user tag and an entity tag match when either is a substring of the
// other after normalization. The looseness is intentional: it lets short
// labels like "ai" match longer ones like "artificial-intelligence-ml",
// tolerating label drift at the cost of occasional false positives.
// Tightening this to exact match would change recall on existing data.
func Interest(userTags, entityTags tags.Set) float64 {
	if len(entityTags) == 0 || len(userTags) == 0 {
		return 0
	}

	matched := 0
	for u := range userTags {
		for e := range entityTags {
			if strings.Contains(u, e) || strings.Contains(e, u) {
				matched++
				break
			}
		}
	}

	denom := len(entityTags)
	if len(userTags) > denom {
		denom = len(userTags)
	}
	return clamp(float64(matched) / float64(denom) * maxScoreValue)
}

// KeywordJaccard returns |A∩B| / |A∪B| in [0,1]. Two empty sets have no
// signal and score 0, never NaN.
func KeywordJaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Commitment returns the symmetric distance score in [0,100] over the 1..5
// commitment scale. Zero entityLevel means undeclared and defaults to the
// scale midpoint.
func Commitment(userLevel, entityLevel int) float64 {
	if entityLevel == 0 {
		entityLevel = commitmentDefault
	}
	userLevel = clampOrdinal(userLevel, model.CommitmentMin, model.CommitmentMax)
	entityLevel = clampOrdinal(entityLevel, model.CommitmentMin, model.CommitmentMax)

	span := float64(model.CommitmentMax - model.CommitmentMin)
	distance := math.Abs(float64(userLevel - entityLevel))
	return clamp((1 - distance/span) * maxScoreValue)
}

// Experience returns the asymmetric experience score in [0,100] over the
// 1..3 scale. Users meeting or exceeding the requirement score 100;
// under-qualified users score userLevel/entityLevel of the 70-point cap.
// Zero entityLevel means undeclared and defaults to level 1.
func Experience(userLevel, entityLevel int) float64 {
	if entityLevel == 0 {
		entityLevel = experienceDefault
	}
	userLevel = clampOrdinal(userLevel, model.ExperienceMin, model.ExperienceMax)
	entityLevel = clampOrdinal(entityLevel, model.ExperienceMin, model.ExperienceMax)

	if userLevel >= entityLevel {
		return maxScoreValue
	}
	return clamp(float64(userLevel) / float64(entityLevel) * underQualifiedCap)
}

// Scorer computes a full match result for one candidate.
type Scorer interface {
	// Score computes the per-factor breakdown and weighted total for the
	// profile/entity pair, honoring ctx for cancellation.
	Score(ctx context.Context, p model.Profile, e model.Entity) (model.MatchResult, error)
}

// ProfileScorer implements Scorer for profile-to-entity matching.
type ProfileScorer struct {
	weights Weights
}

// Option applies a configuration option to the ProfileScorer.
type Option func(*ProfileScorer)

// WithWeights sets the weight vector. Invalid vectors are ignored and the
// scorer keeps its previous (default) weights.
func WithWeights(w Weights) Option {
	return func(s *ProfileScorer) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// NewProfileScorer creates a profile scorer, defaulting to the
// profile-match weight vector.
func NewProfileScorer(opts ...Option) *ProfileScorer {
	s := &ProfileScorer{
		weights: ProfileMatchWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the scorer's weight vector.
func (s *ProfileScorer) Weights() Weights {
	return s.weights
}

// Score computes the four-factor breakdown and its weighted total.
func (s *ProfileScorer) Score(ctx context.Context, p model.Profile, e model.Entity) (model.MatchResult, error) {
	select {
	case <-ctx.Done():
		return model.MatchResult{}, fmt.Errorf("scoring cancelled: %w", ctx.Err())
	default:
	}

	breakdown := map[string]float64{
		model.FactorInterest:   Interest(tags.NewSet(p.InterestTags), tags.NewSet(e.Tags)),
		model.FactorCommitment: Commitment(p.CommitmentLevel, e.CommitmentLevel),
		model.FactorExperience: Experience(p.ExperienceLevel, e.ExperienceLevel),
		model.FactorSchedule:   schedule.Overlap(p.Availability, e.MeetingTimes),
	}

	return model.MatchResult{
		EntityID:   e.ID,
		TotalScore: s.weights.Total(breakdown),
		Breakdown:  breakdown,
	}, nil
}

// clamp bounds v to [0,100].
func clamp(v float64) float64 {
	return math.Max(minScoreValue, math.Min(maxScoreValue, v))
}

// clampOrdinal bounds an ordinal level to its scale.
func clampOrdinal(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

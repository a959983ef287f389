package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// weightSumEpsilon tolerates float drift when validating that a weight
// vector sums to 1.
const weightSumEpsilon = 1e-6

// Sentinel kinds for weight validation.
var (
	ErrNegativeWeight = errors.New("weight must be non-negative")
	ErrWeightSum      = errors.New("weights must sum to 1")
)

// Weights is the named weight vector consumed by the aggregator. The two
// preset vectors are not interchangeable: callers must pick the one
// matching their candidate pool's shape.
type Weights struct {
	Interest   float64 `json:"interest" koanf:"interest"`
	Commitment float64 `json:"commitment" koanf:"commitment"`
	Experience float64 `json:"experience" koanf:"experience"`
	Schedule   float64 `json:"schedule" koanf:"schedule"`
}

// ProfileMatchWeights is the vector for plain profile-to-entity matching,
// where interest overlap dominates.
func ProfileMatchWeights() Weights {
	return Weights{
		Interest:   0.40,
		Commitment: 0.25,
		Experience: 0.20,
		Schedule:   0.15,
	}
}

// UniversityAwareWeights is the vector for pools pre-filtered to the
// user's university, where schedule fit matters as much as interest.
func UniversityAwareWeights() Weights {
	return Weights{
		Interest:   0.35,
		Schedule:   0.35,
		Commitment: 0.15,
		Experience: 0.15,
	}
}

// Validate checks that every entry is non-negative and the vector sums to
// 1 within epsilon.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		model.FactorInterest:   w.Interest,
		model.FactorCommitment: w.Commitment,
		model.FactorExperience: w.Experience,
		model.FactorSchedule:   w.Schedule,
	} {
		if v < 0 {
			return fmt.Errorf("%s: %w", name, ErrNegativeWeight)
		}
	}
	sum := w.Interest + w.Commitment + w.Experience + w.Schedule
	if math.Abs(sum-1) > weightSumEpsilon {
		return fmt.Errorf("sum %.6f: %w", sum, ErrWeightSum)
	}
	return nil
}

// Total combines a per-factor breakdown into one weighted score, rounded
// to the nearest integer and clamped to [0,100]. Factors missing from the
// breakdown contribute zero.
func (w Weights) Total(breakdown map[string]float64) float64 {
	total := breakdown[model.FactorInterest]*w.Interest +
		breakdown[model.FactorCommitment]*w.Commitment +
		breakdown[model.FactorExperience]*w.Experience +
		breakdown[model.FactorSchedule]*w.Schedule
	return clamp(math.Round(total))
}

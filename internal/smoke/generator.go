package smoke

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// Constants for random generation.
const (
	randomFloatDivisor = 1000000
	maxTagsPerEntity   = 4
	deadlineSpreadDays = 45
)

// Vocabulary the generator draws from. Overlapping titles and links make
// a portion of the generated candidates near-duplicates of one another,
// which gives the duplicate check something to flag.
var (
	tagVocabulary = []string{
		"interest: technology",
		"interest: design",
		"interest: music",
		"interest: volunteering",
		"interest: robotics",
		"interest: entrepreneurship",
		"interest: photography",
		"interest: debate",
	}

	titleStems = []string{
		"Software Engineering Internship",
		"Product Design Workshop",
		"Community Volunteering Day",
		"Robotics Competition",
		"Startup Pitch Night",
		"Photography Walk",
	}

	organizations = []string{
		"TechCorp",
		"Design Guild",
		"City Outreach",
		"Maker Society",
	}
)

// randomFloat returns a random float64 in [0,1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIndex returns a random index in [0,n).
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateCandidates builds synthetic opportunity entities for duplicate
// checking. Titles reuse a small stem pool with numeric suffixes so that
// some pairs land above the similarity threshold.
func generateCandidates(n int, now time.Time) []model.Entity {
	out := make([]model.Entity, n)
	for i := range out {
		stem := titleStems[randomIndex(len(titleStems))]
		title := stem
		if randomFloat() < 0.5 {
			title = stem + " " + strconv.Itoa(i%10)
		}

		tags := make([]string, 0, maxTagsPerEntity)
		for len(tags) < 1+randomIndex(maxTagsPerEntity) {
			tags = append(tags, tagVocabulary[randomIndex(len(tagVocabulary))])
		}

		org := organizations[randomIndex(len(organizations))]
		out[i] = model.Entity{
			ID:           uuid.New().String(),
			Collection:   model.Opportunities,
			Title:        title,
			Description:  "Generated smoke candidate for " + stem,
			Organization: org,
			Category:     "smoke",
			Link:         "https://example.org/postings/" + strconv.Itoa(i%20),
			Tags:         tags,
			Deadline:     now.AddDate(0, 0, 1+randomIndex(deadlineSpreadDays)),
		}
	}
	return out
}

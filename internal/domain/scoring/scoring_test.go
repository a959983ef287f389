package scoring_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/domain/scoring"
	"github.com/tribe-app/matchd/internal/domain/tags"
)

func TestInterest(t *testing.T) {
	Convey("Given user and entity tag sets", t, func() {
		Convey("When the sets match fully after normalization", func() {
			user := tags.NewSet([]string{"ai", "web development"})
			entity := tags.NewSet([]string{"Technology:AI", "Technology:Web Development"})

			Convey("Then the interest score is 100", func() {
				So(scoring.Interest(user, entity), ShouldEqual, 100)
			})
		})

		Convey("When a user tag is a substring of an entity tag", func() {
			user := tags.NewSet([]string{"ai"})
			entity := tags.NewSet([]string{"artificial-intelligence-ml:ai research"})

			Convey("Then containment in either direction counts as a match", func() {
				So(scoring.Interest(user, entity), ShouldEqual, 100)
			})
		})

		Convey("When only part of the user tags match", func() {
			user := tags.NewSet([]string{"music", "chess", "rowing", "debate"})
			entity := tags.NewSet([]string{"music", "chess"})

			Convey("Then the larger set size is the denominator", func() {
				So(scoring.Interest(user, entity), ShouldEqual, 50)
			})
		})

		Convey("When the entity has more tags than the user", func() {
			user := tags.NewSet([]string{"music"})
			entity := tags.NewSet([]string{"music", "jazz", "theory", "performance"})

			Convey("Then the entity set size dominates the denominator", func() {
				So(scoring.Interest(user, entity), ShouldEqual, 25)
			})
		})

		Convey("When either set is empty", func() {
			some := tags.NewSet([]string{"music"})

			Convey("Then the score is 0, not a divide-by-zero fallback", func() {
				So(scoring.Interest(tags.NewSet(nil), some), ShouldEqual, 0)
				So(scoring.Interest(some, tags.NewSet(nil)), ShouldEqual, 0)
				So(scoring.Interest(tags.NewSet(nil), tags.NewSet(nil)), ShouldEqual, 0)
			})
		})

		Convey("When no tags overlap at all", func() {
			user := tags.NewSet([]string{"pottery"})
			entity := tags.NewSet([]string{"finance"})

			Convey("Then the score is 0", func() {
				So(scoring.Interest(user, entity), ShouldEqual, 0)
			})
		})
	})
}

func TestKeywordJaccard(t *testing.T) {
	Convey("Given two keyword sets", t, func() {
		set := func(words ...string) map[string]struct{} {
			s := make(map[string]struct{}, len(words))
			for _, w := range words {
				s[w] = struct{}{}
			}
			return s
		}

		Convey("When both sets are empty", func() {
			Convey("Then the similarity is 0, never NaN", func() {
				So(scoring.KeywordJaccard(nil, nil), ShouldEqual, 0)
				So(scoring.KeywordJaccard(set(), set()), ShouldEqual, 0)
			})
		})

		Convey("When the sets are identical", func() {
			a := set("robotics", "club")

			Convey("Then the similarity is 1", func() {
				So(scoring.KeywordJaccard(a, set("robotics", "club")), ShouldEqual, 1)
			})
		})

		Convey("When the sets partially overlap", func() {
			a := set("robotics", "club", "weekly")
			b := set("robotics", "society")

			Convey("Then intersection over union is returned", func() {
				So(scoring.KeywordJaccard(a, b), ShouldAlmostEqual, 0.25, 1e-9)
			})
		})

		Convey("When the sets are disjoint", func() {
			Convey("Then the similarity is 0", func() {
				So(scoring.KeywordJaccard(set("alpha"), set("beta")), ShouldEqual, 0)
			})
		})
	})
}

func TestCommitment(t *testing.T) {
	Convey("Given commitment levels on the 1..5 scale", t, func() {
		Convey("When the levels are maximally apart", func() {
			Convey("Then the score is 0", func() {
				So(scoring.Commitment(5, 1), ShouldEqual, 0)
				So(scoring.Commitment(1, 5), ShouldEqual, 0)
			})
		})

		Convey("When the levels match", func() {
			Convey("Then the score is 100", func() {
				So(scoring.Commitment(3, 3), ShouldEqual, 100)
			})
		})

		Convey("When the levels are one apart", func() {
			Convey("Then a quarter of the score is lost", func() {
				So(scoring.Commitment(3, 4), ShouldEqual, 75)
				So(scoring.Commitment(4, 3), ShouldEqual, 75)
			})
		})

		Convey("When the entity declares no commitment level", func() {
			Convey("Then the scale midpoint is assumed", func() {
				So(scoring.Commitment(3, 0), ShouldEqual, 100)
				So(scoring.Commitment(5, 0), ShouldEqual, 50)
			})
		})

		Convey("When a level is outside the scale", func() {
			Convey("Then it clamps to the scale bounds", func() {
				So(scoring.Commitment(9, 5), ShouldEqual, 100)
				So(scoring.Commitment(-2, 1), ShouldEqual, 100)
			})
		})
	})
}

func TestExperience(t *testing.T) {
	Convey("Given experience levels on the 1..3 scale", t, func() {
		Convey("When the user meets or exceeds the requirement", func() {
			Convey("Then the score is 100", func() {
				So(scoring.Experience(3, 3), ShouldEqual, 100)
				So(scoring.Experience(3, 1), ShouldEqual, 100)
				So(scoring.Experience(2, 2), ShouldEqual, 100)
			})
		})

		Convey("When a beginner faces an advanced requirement", func() {
			Convey("Then the score is capped well below full", func() {
				So(scoring.Experience(1, 3), ShouldAlmostEqual, 70.0/3, 1e-9)
			})
		})

		Convey("When the user is one level under-qualified", func() {
			Convey("Then the score scales within the cap", func() {
				So(scoring.Experience(2, 3), ShouldAlmostEqual, 2.0/3*70, 1e-9)
				So(scoring.Experience(1, 2), ShouldEqual, 35)
			})
		})

		Convey("When the entity declares no experience requirement", func() {
			Convey("Then level 1 is assumed and nobody is under-qualified", func() {
				So(scoring.Experience(1, 0), ShouldEqual, 100)
				So(scoring.Experience(3, 0), ShouldEqual, 100)
			})
		})
	})
}

func TestProfileScorer(t *testing.T) {
	Convey("Given a profile scorer", t, func() {
		profile := model.Profile{
			UserID:          "user-1",
			InterestTags:    []string{"ai", "robotics"},
			CommitmentLevel: 3,
			ExperienceLevel: 2,
			Availability: model.WeeklySchedule{
				model.Monday: {{Start: 18 * 60, End: 20 * 60}},
			},
		}
		entity := model.Entity{
			ID:              "club-1",
			Collection:      model.Clubs,
			Tags:            []string{"Technology:AI", "Technology:Robotics"},
			CommitmentLevel: 3,
			ExperienceLevel: 1,
			MeetingTimes: model.WeeklySchedule{
				model.Monday: {{Start: 18 * 60, End: 20 * 60}},
			},
		}

		Convey("When scoring a fully compatible pair", func() {
			s := scoring.NewProfileScorer()
			res, err := s.Score(context.Background(), profile, entity)

			Convey("Then every factor and the total max out", func() {
				So(err, ShouldBeNil)
				So(res.EntityID, ShouldEqual, "club-1")
				So(res.TotalScore, ShouldEqual, 100)
				So(res.Breakdown[model.FactorInterest], ShouldEqual, 100)
				So(res.Breakdown[model.FactorCommitment], ShouldEqual, 100)
				So(res.Breakdown[model.FactorExperience], ShouldEqual, 100)
				So(res.Breakdown[model.FactorSchedule], ShouldEqual, 100)
			})
		})

		Convey("When scoring arbitrary pairs", func() {
			s := scoring.NewProfileScorer()
			hostile := model.Entity{
				ID:              "club-2",
				Tags:            []string{"finance"},
				CommitmentLevel: 5,
				ExperienceLevel: 3,
				MeetingTimes: model.WeeklySchedule{
					model.Sunday: {{Start: 6 * 60, End: 7 * 60}},
				},
			}
			res, err := s.Score(context.Background(), profile, hostile)

			Convey("Then every factor score and the total stay in [0,100]", func() {
				So(err, ShouldBeNil)
				So(res.TotalScore, ShouldBeBetweenOrEqual, 0, 100)
				for _, v := range res.Breakdown {
					So(v, ShouldBeBetweenOrEqual, 0, 100)
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			s := scoring.NewProfileScorer()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := s.Score(ctx, profile, entity)

			Convey("Then scoring aborts with the context error", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When an invalid weight vector is supplied", func() {
			s := scoring.NewProfileScorer(scoring.WithWeights(scoring.Weights{Interest: 2}))

			Convey("Then the default vector is kept", func() {
				So(s.Weights(), ShouldResemble, scoring.ProfileMatchWeights())
			})
		})
	})
}

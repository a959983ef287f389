package rank_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/domain/rank"
)

func result(id string, score float64) model.MatchResult {
	return model.MatchResult{EntityID: id, TotalScore: score}
}

func TestRank(t *testing.T) {
	Convey("Given a batch of scored candidates", t, func() {
		Convey("When only a few candidates clear the threshold", func() {
			scored := []model.MatchResult{
				result("a", 5), result("b", 45), result("c", 12),
				result("d", 19), result("e", 88), result("f", 3),
				result("g", 15), result("h", 31), result("i", 8),
				result("j", 11),
			}

			ranked := rank.Rank(scored, rank.Options{MinScore: 20})

			Convey("Then exactly those candidates come back, sorted descending", func() {
				So(ranked, ShouldHaveLength, 3)
				So(ranked[0].EntityID, ShouldEqual, "e")
				So(ranked[1].EntityID, ShouldEqual, "b")
				So(ranked[2].EntityID, ShouldEqual, "h")
			})
		})

		Convey("When candidates tie on total score", func() {
			scored := []model.MatchResult{
				result("first", 50), result("second", 50),
				result("third", 50), result("top", 90),
			}

			ranked := rank.Rank(scored, rank.Options{})

			Convey("Then ties keep their original catalog order", func() {
				So(ranked, ShouldHaveLength, 4)
				So(ranked[0].EntityID, ShouldEqual, "top")
				So(ranked[1].EntityID, ShouldEqual, "first")
				So(ranked[2].EntityID, ShouldEqual, "second")
				So(ranked[3].EntityID, ShouldEqual, "third")
			})
		})

		Convey("When a top-K limit applies", func() {
			scored := []model.MatchResult{
				result("a", 10), result("b", 20), result("c", 30),
				result("d", 40), result("e", 50),
			}

			ranked := rank.Rank(scored, rank.Options{TopK: 2})

			Convey("Then only the best K survive", func() {
				So(ranked, ShouldHaveLength, 2)
				So(ranked[0].EntityID, ShouldEqual, "e")
				So(ranked[1].EntityID, ShouldEqual, "d")
			})
		})

		Convey("When the input is empty", func() {
			ranked := rank.Rank(nil, rank.Options{MinScore: 20, TopK: 5})

			Convey("Then an empty, non-nil list is returned", func() {
				So(ranked, ShouldNotBeNil)
				So(ranked, ShouldBeEmpty)
			})
		})

		Convey("When a candidate sits exactly on the threshold", func() {
			ranked := rank.Rank([]model.MatchResult{result("edge", 20)}, rank.Options{MinScore: 20})

			Convey("Then it is kept", func() {
				So(ranked, ShouldHaveLength, 1)
			})
		})

		Convey("When ranking the same input repeatedly", func() {
			scored := []model.MatchResult{
				result("x", 70), result("y", 70), result("z", 70),
			}

			first := rank.Rank(scored, rank.Options{})
			second := rank.Rank(scored, rank.Options{})

			Convey("Then the output ordering is identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the input slice is shared", func() {
			scored := []model.MatchResult{result("a", 1), result("b", 2)}
			_ = rank.Rank(scored, rank.Options{})

			Convey("Then the caller's slice is left untouched", func() {
				So(scored[0].EntityID, ShouldEqual, "a")
				So(scored[1].EntityID, ShouldEqual, "b")
			})
		})
	})
}

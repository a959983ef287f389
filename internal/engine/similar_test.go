package engine_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/domain/model"
)

func similarFixture() *catalog.MemStore {
	ctx := context.Background()
	store := catalog.NewMemStore()

	events := []model.Entity{
		{
			ID:          "evt-ref",
			Collection:  model.Events,
			Title:       "Machine Learning Workshop",
			Description: "Hands-on neural network training session",
			Tags:        []string{"Technology:AI"},
		},
		{
			ID:          "evt-twin",
			Collection:  model.Events,
			Title:       "Machine Learning Workshop Part Two",
			Description: "More neural network training",
			Tags:        []string{"Technology:AI"},
		},
		{
			ID:          "evt-unrelated",
			Collection:  model.Events,
			Title:       "Pottery Evening",
			Description: "Relaxed ceramics session",
			Tags:        []string{"Arts:Crafts"},
		},
	}
	for _, e := range events {
		if err := store.PutEntity(ctx, e); err != nil {
			panic(err)
		}
	}
	return store
}

func TestSimilarItems(t *testing.T) {
	Convey("Given a catalog with a reference event", t, func() {
		ctx := context.Background()
		store := similarFixture()
		eng := newEngine(store)

		ref, err := store.GetEntity(ctx, "evt-ref")
		So(err, ShouldBeNil)

		Convey("When ranking similar items", func() {
			results, err := eng.SimilarItems(ctx, ref, model.Events, 10)

			Convey("Then the near-twin ranks and the reference is excluded", func() {
				So(err, ShouldBeNil)
				So(results, ShouldNotBeEmpty)
				So(results[0].EntityID, ShouldEqual, "evt-twin")
				for _, r := range results {
					So(r.EntityID, ShouldNotEqual, "evt-ref")
				}
			})

			Convey("And each result carries a keyword breakdown", func() {
				So(err, ShouldBeNil)
				for _, r := range results {
					So(r.Breakdown, ShouldContainKey, model.FactorKeywords)
					So(r.TotalScore, ShouldBeBetweenOrEqual, 0, 100)
				}
			})
		})

		Convey("When ranking against an unrelated-only pool", func() {
			pool := []model.Entity{
				{ID: "evt-unrelated", Title: "Pottery Evening", Description: "Relaxed ceramics session"},
			}
			results := eng.RankSimilar(ctx, ref, pool, 10)

			Convey("Then low-similarity candidates fall under the threshold", func() {
				So(results, ShouldBeEmpty)
			})
		})

		Convey("When looking up the reference by ID", func() {
			results, err := eng.SimilarItemsByID(ctx, "evt-ref", model.Events, 10)

			Convey("Then it behaves like the direct call", func() {
				So(err, ShouldBeNil)
				So(results, ShouldNotBeEmpty)
				So(results[0].EntityID, ShouldEqual, "evt-twin")
			})
		})

		Convey("When the ID belongs to a different collection", func() {
			_, err := eng.SimilarItemsByID(ctx, "evt-ref", model.Clubs, 10)

			Convey("Then a not-found error returns", func() {
				So(err, ShouldWrap, catalog.ErrEntityNotFound)
			})
		})

		Convey("When the ID does not exist", func() {
			_, err := eng.SimilarItemsByID(ctx, "ghost", model.Events, 10)

			Convey("Then a not-found error returns", func() {
				So(err, ShouldWrap, catalog.ErrEntityNotFound)
			})
		})

		Convey("When the pool is otherwise empty", func() {
			results, err := eng.SimilarItems(ctx, ref, model.Opportunities, 10)

			Convey("Then an empty non-nil list returns", func() {
				So(err, ShouldBeNil)
				So(results, ShouldNotBeNil)
				So(results, ShouldBeEmpty)
			})
		})
	})
}

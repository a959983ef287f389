package text_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tribe-app/matchd/internal/domain/text"
)

func TestKeywords(t *testing.T) {
	Convey("Given free-form text", t, func() {
		Convey("When extracting keywords from a title", func() {
			kws := text.Keywords("Intro to Machine Learning, with Python!")

			Convey("Then stop-words and short tokens are dropped", func() {
				So(kws, ShouldResemble, []string{"intro", "machine", "learning", "python"})
			})
		})

		Convey("When the text contains duplicates", func() {
			kws := text.Keywords("design Design DESIGN workshop")

			Convey("Then the keyword set is deduplicated", func() {
				So(kws, ShouldResemble, []string{"design", "workshop"})
			})
		})

		Convey("When the text is only punctuation and stop-words", func() {
			kws := text.Keywords("... and, or - the !!")

			Convey("Then no keywords survive", func() {
				So(kws, ShouldBeEmpty)
			})
		})

		Convey("When the text is empty", func() {
			Convey("Then the result is empty, not an error", func() {
				So(text.Keywords(""), ShouldBeEmpty)
				So(text.KeywordSet(""), ShouldBeEmpty)
			})
		})

		Convey("When tokens are two characters or shorter", func() {
			kws := text.Keywords("ai ml go club")

			Convey("Then they are dropped as too short", func() {
				So(kws, ShouldResemble, []string{"club"})
			})
		})

		Convey("When building a keyword set", func() {
			set := text.KeywordSet("robotics club robotics")

			Convey("Then membership lookups work", func() {
				So(set, ShouldHaveLength, 2)
				_, ok := set["robotics"]
				So(ok, ShouldBeTrue)
				_, ok = set["club"]
				So(ok, ShouldBeTrue)
			})
		})
	})
}

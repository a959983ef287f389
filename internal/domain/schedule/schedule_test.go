package schedule_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/domain/schedule"
)

func interval(start, end int) model.TimeInterval {
	return model.TimeInterval{Start: start, End: end}
}

func TestOverlap(t *testing.T) {
	Convey("Given a user availability and entity meeting times", t, func() {
		availability := model.WeeklySchedule{
			model.Monday:    {interval(9*60, 11*60)},
			model.Wednesday: {interval(14*60, 16*60)},
		}

		Convey("When the entity has no meeting times at all", func() {
			Convey("Then the entity is schedule-agnostic and scores 100", func() {
				So(schedule.Overlap(availability, nil), ShouldEqual, 100)
				So(schedule.Overlap(availability, model.WeeklySchedule{}), ShouldEqual, 100)
				So(schedule.Overlap(nil, nil), ShouldEqual, 100)
			})
		})

		Convey("When the entity meets on a day the user is free but at a different hour", func() {
			meetings := model.WeeklySchedule{
				model.Monday: {interval(13*60, 15*60)},
			}

			Convey("Then only the day-level credit is awarded", func() {
				So(schedule.Overlap(availability, meetings), ShouldEqual, 50)
			})
		})

		Convey("When a meeting slot exactly matches a user slot", func() {
			meetings := model.WeeklySchedule{
				model.Monday: {interval(9*60, 11*60)},
			}

			Convey("Then both credit tiers are awarded", func() {
				So(schedule.Overlap(availability, meetings), ShouldEqual, 100)
			})
		})

		Convey("When the entity meets only on days the user never declared", func() {
			meetings := model.WeeklySchedule{
				model.Saturday: {interval(10*60, 12*60)},
			}

			Convey("Then the score is 0", func() {
				So(schedule.Overlap(availability, meetings), ShouldEqual, 0)
			})
		})

		Convey("When slots mix exact matches, day matches, and misses", func() {
			meetings := model.WeeklySchedule{
				model.Monday:    {interval(9*60, 11*60)},  // exact: 1.0
				model.Wednesday: {interval(9*60, 10*60)},  // day only: 0.5
				model.Sunday:    {interval(10*60, 11*60)}, // miss: 0
			}

			Convey("Then credits average across all slots", func() {
				So(schedule.Overlap(availability, meetings), ShouldEqual, 50)
			})
		})

		Convey("When an entity interval is malformed", func() {
			meetings := model.WeeklySchedule{
				model.Monday: {
					interval(11*60, 9*60), // start >= end, skipped
					interval(9*60, 11*60),
				},
			}

			Convey("Then the bad interval is skipped, not fatal", func() {
				So(schedule.Overlap(availability, meetings), ShouldEqual, 100)
			})
		})

		Convey("When every entity interval is malformed", func() {
			meetings := model.WeeklySchedule{
				model.Monday: {interval(600, 600)},
			}

			Convey("Then there is nothing to be incompatible with", func() {
				So(schedule.Overlap(availability, meetings), ShouldEqual, 100)
			})
		})

		Convey("When a user interval is malformed", func() {
			broken := model.WeeklySchedule{
				model.Monday: {interval(25*60, 20*60)},
			}
			meetings := model.WeeklySchedule{
				model.Monday: {interval(9*60, 11*60)},
			}

			Convey("Then it counts as no availability on that day", func() {
				So(schedule.Overlap(broken, meetings), ShouldEqual, 0)
			})
		})
	})
}

func TestParseInterval(t *testing.T) {
	Convey("Given slot strings in storage format", t, func() {
		Convey("When the string is well-formed", func() {
			iv, err := schedule.ParseInterval("09:00-11:30")

			Convey("Then minutes-since-midnight are produced", func() {
				So(err, ShouldBeNil)
				So(iv.Start, ShouldEqual, 9*60)
				So(iv.End, ShouldEqual, 11*60+30)
			})
		})

		Convey("When surrounding whitespace is present", func() {
			iv, err := schedule.ParseInterval(" 14:00 - 16:00 ")

			Convey("Then it still parses", func() {
				So(err, ShouldBeNil)
				So(iv.Start, ShouldEqual, 14*60)
				So(iv.End, ShouldEqual, 16*60)
			})
		})

		Convey("When the string is malformed", func() {
			cases := []string{"", "09:00", "0900-1100", "11:00-09:00", "xx:00-10:00", "09:99-10:00"}

			Convey("Then parsing fails", func() {
				for _, c := range cases {
					_, err := schedule.ParseInterval(c)
					So(err, ShouldNotBeNil)
				}
			})
		})
	})
}

func TestParseWeekday(t *testing.T) {
	Convey("Given day labels", t, func() {
		Convey("When the label is a known day in any casing", func() {
			Convey("Then the canonical weekday is returned", func() {
				d, ok := schedule.ParseWeekday("Monday")
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, model.Monday)

				d, ok = schedule.ParseWeekday("THU")
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, model.Thursday)

				d, ok = schedule.ParseWeekday(" sun ")
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, model.Sunday)
			})
		})

		Convey("When the label is unknown", func() {
			_, ok := schedule.ParseWeekday("someday")

			Convey("Then it reports false", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

// Package schedule scores weekly-time compatibility between a user's
// declared availability and an entity's meeting slots.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// Credit split for the two-tier scheme: day-level credit is awarded when
// the user has any availability on the slot's weekday, and the remainder
// only on an exact slot match. Rough day alignment is rewarded before
// exact hour alignment on purpose; users mostly pick days, not hours.
const (
	sameDayCredit   = 0.5
	exactSlotCredit = 0.5
	maxScore        = 100.0
)

// Overlap returns the schedule compatibility score in [0,100].
//
// Entities with no meeting slots at all are schedule-agnostic and score
// 100 regardless of availability. Malformed intervals (start >= end or
// outside the day) are skipped individually; they contribute nothing and
// never abort the pass.
func Overlap(availability, meetingTimes model.WeeklySchedule) float64 {
	if meetingTimes.Empty() {
		return maxScore
	}

	var credits float64
	var totalSlots int
	for day, slots := range meetingTimes {
		userSlots := wellFormed(availability[day])
		for _, slot := range slots {
			if !slot.Valid() {
				continue
			}
			totalSlots++
			if len(userSlots) == 0 {
				continue
			}
			credits += sameDayCredit
			for _, u := range userSlots {
				if u.Equal(slot) {
					credits += exactSlotCredit
					break
				}
			}
		}
	}

	// All slots malformed: nothing to be incompatible with.
	if totalSlots == 0 {
		return maxScore
	}

	score := credits / float64(totalSlots) * maxScore
	if score > maxScore {
		score = maxScore
	}
	return score
}

// wellFormed filters out invalid intervals.
func wellFormed(slots []model.TimeInterval) []model.TimeInterval {
	out := slots[:0:0]
	for _, s := range slots {
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// ParseInterval converts a "HH:MM-HH:MM" slot string, the storage format
// used by club records, into a TimeInterval.
func ParseInterval(s string) (model.TimeInterval, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return model.TimeInterval{}, fmt.Errorf("parse interval %q: missing '-'", s)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return model.TimeInterval{}, fmt.Errorf("parse interval %q: %w", s, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return model.TimeInterval{}, fmt.Errorf("parse interval %q: %w", s, err)
	}
	iv := model.TimeInterval{Start: start, End: end}
	if !iv.Valid() {
		return model.TimeInterval{}, fmt.Errorf("parse interval %q: start must precede end", s)
	}
	return iv, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour %q", parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute %q", parts[1])
	}
	return h*60 + m, nil
}

// ParseWeekday normalizes a day label ("Monday", "mon", "MON") to the
// canonical Weekday, reporting false for unknown labels.
func ParseWeekday(s string) (model.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mon", "monday":
		return model.Monday, true
	case "tue", "tues", "tuesday":
		return model.Tuesday, true
	case "wed", "wednesday":
		return model.Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return model.Thursday, true
	case "fri", "friday":
		return model.Friday, true
	case "sat", "saturday":
		return model.Saturday, true
	case "sun", "sunday":
		return model.Sunday, true
	}
	return "", false
}

// Package model contains the domain records exchanged between the catalog
// adapter, the scoring components, and the recommendation engine.
package model

import "time"

// CollectionType names a candidate pool in the directory.
type CollectionType string

// Known collection types.
const (
	Clubs         CollectionType = "clubs"
	Events        CollectionType = "events"
	Opportunities CollectionType = "opportunities"
)

// Collections lists all known collection types.
func Collections() []CollectionType {
	return []CollectionType{Clubs, Events, Opportunities}
}

// Valid reports whether t names a known collection.
func (t CollectionType) Valid() bool {
	switch t {
	case Clubs, Events, Opportunities:
		return true
	}
	return false
}

// Weekday identifies a day of the week in lower-case short form.
type Weekday string

// Weekday values, Monday first to match the quiz UI ordering.
const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays lists all weekdays in canonical order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// TimeInterval is a half-open [Start,End) range in minutes since midnight.
type TimeInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the interval is well-formed: inside a single day
// and with a positive duration.
func (i TimeInterval) Valid() bool {
	const minutesPerDay = 24 * 60
	return i.Start >= 0 && i.End <= minutesPerDay && i.Start < i.End
}

// Equal reports exact start/end equality with o.
func (i TimeInterval) Equal(o TimeInterval) bool {
	return i.Start == o.Start && i.End == o.End
}

// Overlaps reports whether the two half-open intervals share any minute.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	return i.Start < o.End && o.Start < i.End
}

// WeeklySchedule maps weekdays to time intervals. A nil or empty map means
// no declared times for any day.
type WeeklySchedule map[Weekday][]TimeInterval

// Empty reports whether the schedule carries no intervals at all.
func (s WeeklySchedule) Empty() bool {
	for _, slots := range s {
		if len(slots) > 0 {
			return false
		}
	}
	return true
}

// Ordinal scale bounds for commitment and experience levels.
const (
	CommitmentMin = 1 // Light
	CommitmentMax = 5 // Intensive
	ExperienceMin = 1 // Beginner
	ExperienceMax = 3 // Advanced
)

// Profile is the querying side of a match: a student's quiz answers.
type Profile struct {
	UserID          string         `json:"user_id"`
	University      string         `json:"university,omitempty"`
	InterestTags    []string       `json:"interest_tags"`
	Availability    WeeklySchedule `json:"availability"`
	CommitmentLevel int            `json:"commitment_level"` // 1..5
	ExperienceLevel int            `json:"experience_level"` // 1..3
}

// Entity is the matched side: a club, event, or opportunity. Zero ordinal
// levels mean "not declared"; the scorers apply documented defaults.
type Entity struct {
	ID              string         `json:"id"`
	Collection      CollectionType `json:"collection"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Organization    string         `json:"organization,omitempty"`
	Category        string         `json:"category,omitempty"`
	Location        string         `json:"location,omitempty"`
	University      string         `json:"university,omitempty"`
	Link            string         `json:"link,omitempty"`
	Tags            []string       `json:"tags"`
	MeetingTimes    WeeklySchedule `json:"meeting_times,omitempty"`
	CommitmentLevel int            `json:"commitment_level,omitempty"`
	ExperienceLevel int            `json:"experience_level,omitempty"`

	// Deadline applies to opportunities, Date to events. The orchestrator
	// filters expired entities before scoring; the scorers never look at
	// either field.
	Deadline time.Time `json:"deadline,omitempty"`
	Date     time.Time `json:"date,omitempty"`
}

// Expired reports whether the entity is past its deadline or date at now.
// Entities without either field never expire.
func (e Entity) Expired(now time.Time) bool {
	if !e.Deadline.IsZero() {
		return e.Deadline.Before(now)
	}
	if !e.Date.IsZero() {
		return e.Date.Before(now)
	}
	return false
}

// Factor names used as breakdown keys.
const (
	FactorInterest   = "interest"
	FactorCommitment = "commitment"
	FactorExperience = "experience"
	FactorSchedule   = "schedule"
	FactorKeywords   = "keywords"

	// Personalized-mode factors.
	FactorOrganization = "organization"
	FactorCategory     = "category"
	FactorLocation     = "location"
)

// MatchResult is one ranked row of engine output. Breakdown holds the
// per-factor scores, each in [0,100], keyed by the Factor* names.
type MatchResult struct {
	EntityID   string             `json:"entity_id"`
	TotalScore float64            `json:"total_score"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// UserHistory aggregates a user's past interactions, used by the
// personalized recommendation mode only.
type UserHistory struct {
	UserID       string
	Applications []Entity
	SavedItems   []Entity
}

// Empty reports whether the history carries no interactions.
func (h UserHistory) Empty() bool {
	return len(h.Applications) == 0 && len(h.SavedItems) == 0
}

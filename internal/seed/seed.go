// Package seed populates an in-memory catalog with realistic sample
// clubs, events, and opportunities for the demo server, the smoke
// harness, and tests.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/domain/model"
)

// day returns now shifted by n days.
func day(now time.Time, n int) time.Time {
	return now.Add(time.Duration(n) * 24 * time.Hour)
}

// Clubs returns the sample club catalog.
func Clubs() []model.Entity {
	return []model.Entity{
		{
			ID:          "club-webdev",
			Collection:  model.Clubs,
			Title:       "Web Development Club",
			Description: "Weekly workshops on modern frontend and backend stacks, from first webpage to production deployment.",
			Tags:        []string{"Technology:Web Development", "Technology:Software Development"},
			University:  "State University",
			MeetingTimes: model.WeeklySchedule{
				model.Monday:    {{Start: 18 * 60, End: 20 * 60}},
				model.Wednesday: {{Start: 18 * 60, End: 19 * 60}},
			},
			CommitmentLevel: 3,
			ExperienceLevel: 2,
		},
		{
			ID:          "club-mobile",
			Collection:  model.Clubs,
			Title:       "Mobile App Developers",
			Description: "Ship real iOS and Android apps with a team. Code reviews, release trains, and app store launches.",
			Tags:        []string{"Technology:Mobile Development", "Technology:Software Development"},
			University:  "State University",
			MeetingTimes: model.WeeklySchedule{
				model.Tuesday: {{Start: 19 * 60, End: 21 * 60}},
			},
			CommitmentLevel: 4,
			ExperienceLevel: 3,
		},
		{
			ID:          "club-uiux",
			Collection:  model.Clubs,
			Title:       "UI/UX Design Club",
			Description: "Design critiques, figma jams, and portfolio nights for anyone curious about interfaces.",
			Tags:        []string{"Technology:Web Development", "Arts:Design"},
			University:  "State University",
			MeetingTimes: model.WeeklySchedule{
				model.Thursday: {{Start: 17 * 60, End: 18*60 + 30}},
			},
			CommitmentLevel: 2,
			ExperienceLevel: 1,
		},
		{
			ID:          "club-datasci",
			Collection:  model.Clubs,
			Title:       "Data Science Society",
			Description: "Kaggle nights, paper readings, and guest lectures on machine learning in production.",
			Tags:        []string{"Technology:Data Science", "Technology:AI"},
			University:  "Tech Institute",
			MeetingTimes: model.WeeklySchedule{
				model.Monday: {{Start: 9 * 60, End: 11 * 60}},
				model.Friday: {{Start: 16 * 60, End: 18 * 60}},
			},
			CommitmentLevel: 3,
			ExperienceLevel: 2,
		},
		{
			ID:          "club-gamedev",
			Collection:  model.Clubs,
			Title:       "Game Development Club",
			Description: "Build games in semester-long teams; engine deep dives and an end-of-term showcase.",
			Tags:        []string{"Technology:Game Development", "Technology:Software Development"},
			University:  "Tech Institute",
			MeetingTimes: model.WeeklySchedule{
				model.Saturday: {{Start: 14 * 60, End: 17 * 60}},
			},
			CommitmentLevel: 5,
			ExperienceLevel: 2,
		},
	}
}

// Opportunities returns the sample opportunity catalog, with deadlines
// relative to now.
func Opportunities(now time.Time) []model.Entity {
	return []model.Entity{
		{
			ID:           "opp-ai-ethics",
			Collection:   model.Opportunities,
			Title:        "Summer Research Program in AI Ethics",
			Organization: "Tech Ethics Institute",
			Category:     "Research",
			Description:  "Ten-week summer research program exploring ethical implications of AI development alongside leading researchers.",
			Tags:         []string{"Research", "AI", "Ethics"},
			Location:     "Cambridge, MA",
			Link:         "https://techethics.example.org/opportunities/ai-ethics",
			Deadline:     day(now, 30),
		},
		{
			ID:           "opp-innovation",
			Collection:   model.Opportunities,
			Title:        "Global Student Innovation Challenge",
			Organization: "World Innovation Network",
			Category:     "Competitions",
			Description:  "Present innovative solutions to global challenges. Winners receive mentorship, funding, and networking with industry leaders.",
			Tags:         []string{"Competitions", "Innovation", "Technology"},
			Location:     "Virtual",
			Link:         "https://win.example.org/opportunities/innovation-challenge",
			Deadline:     day(now, 45),
		},
		{
			ID:           "opp-frontend-intern",
			Collection:   model.Opportunities,
			Title:        "Frontend Developer Intern",
			Organization: "TechStart Inc.",
			Category:     "Internships",
			Description:  "Build React features for a growing product team. Mentored, paid, and remote-friendly.",
			Tags:         []string{"Technology", "Web Development", "React", "Frontend"},
			Location:     "San Francisco, CA",
			Link:         "https://techstart.example.com/careers/frontend-intern",
			Deadline:     day(now, 20),
		},
		{
			ID:           "opp-data-volunteer",
			Collection:   model.Opportunities,
			Title:        "Data Analysis Volunteer",
			Organization: "Non-Profit Analytics",
			Category:     "Volunteering",
			Description:  "Help analyze data for local non-profit organizations. Make a real impact while building your data science portfolio.",
			Tags:         []string{"Data Science", "Analytics", "Social Impact"},
			Location:     "Boston, MA",
			Link:         "https://npanalytics.example.org/volunteer",
			Deadline:     day(now, 60),
		},
	}
}

// Events returns the sample event catalog, with dates relative to now.
func Events(now time.Time) []model.Entity {
	return []model.Entity{
		{
			ID:           "evt-hacknight",
			Collection:   model.Events,
			Title:        "Campus Hack Night",
			Organization: "Web Development Club",
			Category:     "Technology",
			Description:  "An evening of rapid prototyping, pizza, and lightning talks. All skill levels welcome.",
			Tags:         []string{"Technology", "Hackathon", "Web Development"},
			Location:     "Engineering Hall 120",
			Date:         day(now, 7),
		},
		{
			ID:           "evt-design-jam",
			Collection:   model.Events,
			Title:        "Design Jam: Accessibility First",
			Organization: "UI/UX Design Club",
			Category:     "Design",
			Description:  "A hands-on workshop redesigning campus services with accessibility as the starting constraint.",
			Tags:         []string{"Design", "Accessibility", "Workshop"},
			Location:     "Art Building Studio 2",
			Date:         day(now, 14),
		},
		{
			ID:           "evt-ml-lecture",
			Collection:   model.Events,
			Title:        "Guest Lecture: Machine Learning in Production",
			Organization: "Data Science Society",
			Category:     "Technology",
			Description:  "An industry speaker on the realities of deploying machine learning systems at scale.",
			Tags:         []string{"AI", "Data Science", "Machine Learning"},
			Location:     "Science Center Auditorium",
			Date:         day(now, 21),
		},
	}
}

// Profiles returns sample quiz-derived user profiles.
func Profiles() []model.Profile {
	return []model.Profile{
		{
			UserID:       "user-ada",
			University:   "State University",
			InterestTags: []string{"Technology:Web Development", "Technology:AI"},
			Availability: model.WeeklySchedule{
				model.Monday:    {{Start: 18 * 60, End: 20 * 60}},
				model.Wednesday: {{Start: 17 * 60, End: 21 * 60}},
			},
			CommitmentLevel: 3,
			ExperienceLevel: 2,
		},
		{
			UserID:       "user-grace",
			University:   "Tech Institute",
			InterestTags: []string{"Technology:Data Science", "Science:Mathematics"},
			Availability: model.WeeklySchedule{
				model.Friday:   {{Start: 16 * 60, End: 18 * 60}},
				model.Saturday: {{Start: 10 * 60, End: 14 * 60}},
			},
			CommitmentLevel: 4,
			ExperienceLevel: 3,
		},
	}
}

// Apply loads the full sample data set into the store and records a small
// interaction history so personalized mode has signal out of the box.
func Apply(ctx context.Context, store *catalog.MemStore, now time.Time) error {
	all := Clubs()
	all = append(all, Opportunities(now)...)
	all = append(all, Events(now)...)
	for _, e := range all {
		if err := store.PutEntity(ctx, e); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	for _, p := range Profiles() {
		store.PutProfile(ctx, p)
	}

	// user-ada applied to the frontend internship and saved the hack night.
	opps := Opportunities(now)
	events := Events(now)
	store.RecordApplication(ctx, "user-ada", opps[2])
	store.RecordSavedItem(ctx, "user-ada", events[0])
	return nil
}

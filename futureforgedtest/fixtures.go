package futureforgedtest

import "github.com/nextgen-2026/futureforged"

// AlexRoadmapJSON is a minimal well-formed provider payload.
const AlexRoadmapJSON = `{"motivationalQuote":"Alex, your future starts now!","steps":[{"title":"Learn Python","description":"...","duration":"1 month","resources":[]}],"weeklySchedule":[{"day":"Monday","tasks":["Study 1hr"]}],"securityNote":"Your data is safe."}`

// AlexProfile is the profile that pairs with AlexRoadmapJSON.
func AlexProfile() futureforged.StudentProfile {
	return futureforged.StudentProfile{
		Name:        "Alex Johnson",
		YearOrGrade: "10th Grade",
		Goals:       "become a software engineer",
		Category:    futureforged.CategorySchool,
	}
}

// AlexRoadmap is the decoded form of AlexRoadmapJSON.
func AlexRoadmap() *futureforged.Roadmap {
	return &futureforged.Roadmap{
		MotivationalQuote: "Alex, your future starts now!",
		Steps: []futureforged.RoadmapStep{
			{
				Title:       "Learn Python",
				Description: "...",
				Duration:    "1 month",
				Resources:   []futureforged.ResourceLink{},
			},
		},
		WeeklySchedule: []futureforged.WeeklyScheduleEntry{
			{Day: "Monday", Tasks: []string{"Study 1hr"}},
		},
		SecurityNote: "Your data is safe.",
	}
}

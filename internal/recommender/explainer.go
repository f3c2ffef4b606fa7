package recommender

import (
	"fmt"
	"math"
	"strings"

	"lasko/fitness-api/internal/domain"
)

// Tags that mark an exercise as too demanding for a beginner.
var advancedTags = []string{"olympic", "advanced", "complex"}

const longSessionMinutes = 90

// Explain builds the structured justification for an assembled plan against
// normalized preferences. Every list may come back empty; the structure never
// does.
func Explain(view *domain.PlanDetailView, prefs domain.UserPreferences) domain.Explanation {
	expl := domain.Explanation{
		BasicMatch:               []string{},
		AdvancedMatch:            []string{},
		PotentialIssues:          []string{},
		CustomizationSuggestions: []string{},
	}

	// Basic match: only fields that match exactly.
	if prefs.Goal != domain.GoalUnknown && view.GoalType == prefs.Goal {
		expl.BasicMatch = append(expl.BasicMatch, fmt.Sprintf("Matches your goal: %s", prefs.Goal))
	}
	if prefs.Level != domain.LevelUnknown && view.DifficultyLevel == prefs.Level {
		expl.BasicMatch = append(expl.BasicMatch, fmt.Sprintf("Matches your experience level: %s", prefs.Level))
	}
	if view.TrainingDaysPerWeek == prefs.TrainingDaysPerWeek {
		expl.BasicMatch = append(expl.BasicMatch, fmt.Sprintf("Matches your schedule: %d training days per week", prefs.TrainingDaysPerWeek))
	}

	totalExercises := 0
	for _, day := range view.Days {
		totalExercises += len(day.Exercises)
	}
	avgDuration := averageSessionMinutes(view.Days)
	expl.AdvancedMatch = append(expl.AdvancedMatch,
		fmt.Sprintf("%d exercises across %d training days", totalExercises, len(view.Days)),
		fmt.Sprintf("Average estimated session duration: %d minutes", avgDuration),
	)

	if avgDuration > longSessionMinutes {
		expl.PotentialIssues = append(expl.PotentialIssues,
			fmt.Sprintf("Sessions are long (about %d minutes on average)", avgDuration))
	}
	if prefs.Level == domain.LevelBeginner {
		if name, tag, found := firstAdvancedExercise(view.Days); found {
			expl.PotentialIssues = append(expl.PotentialIssues,
				fmt.Sprintf("Contains advanced movements (%s is tagged %q) which may be demanding for a beginner", name, tag))
		}
		expl.CustomizationSuggestions = append(expl.CustomizationSuggestions,
			"Start with reduced loads and focus on technique for the first weeks")
	}
	if prefs.SessionDurationMinutes > 0 && avgDuration > prefs.SessionDurationMinutes+15 {
		expl.CustomizationSuggestions = append(expl.CustomizationSuggestions,
			fmt.Sprintf("Shorten rest periods to fit sessions into your preferred %d minutes", prefs.SessionDurationMinutes))
	}

	return expl
}

// averageSessionMinutes is the mean of the per-day duration estimates,
// rounded to the nearest minute. Zero when the plan has no days.
func averageSessionMinutes(days []domain.DayView) int {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d.EstimatedDurationMinutes
	}
	return int(math.Round(float64(sum) / float64(len(days))))
}

// firstAdvancedExercise scans days in order for the first exercise carrying a
// beginner-unfriendly tag.
func firstAdvancedExercise(days []domain.DayView) (name, tag string, found bool) {
	for _, day := range days {
		for _, ex := range day.Exercises {
			for _, risky := range advancedTags {
				for _, t := range ex.Tags {
					if strings.EqualFold(t, risky) {
						return ex.Name, risky, true
					}
				}
			}
		}
	}
	return "", "", false
}

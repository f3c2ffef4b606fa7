package recommender

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"lasko/fitness-api/internal/domain"
)

// defaultSets is assumed when a slot's target sets cannot be parsed as a
// positive integer (authors enter ranges like "3-5" or "AMRAP").
const defaultSets = 3

// BuildDetailView denormalizes a plan and its joined exercise definitions
// into the nested view the frontend and the explanation generator consume.
// Days come out ordered by dayOrder, exercises in their slot order. Slots
// referencing an exercise missing from the library are skipped.
func BuildDetailView(plan *domain.Plan, exercises map[string]domain.Exercise) domain.PlanDetailView {
	view := domain.PlanDetailView{
		ID:                      plan.ID,
		Name:                    plan.Name,
		Description:             plan.Description,
		GoalType:                plan.GoalType,
		DifficultyLevel:         plan.DifficultyLevel,
		TrainingDaysPerWeek:     plan.TrainingDaysPerWeek,
		EquipmentRequired:       plan.EquipmentRequired,
		SessionDurationEstimate: plan.SessionDurationEstimate,
		Days:                    make([]domain.DayView, 0, len(plan.Days)),
	}

	days := make([]domain.PlanDay, len(plan.Days))
	copy(days, plan.Days)
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayOrder < days[j].DayOrder })

	for _, day := range days {
		dv := domain.DayView{
			DayOrder:           day.DayOrder,
			Name:               day.Name,
			Exercises:          make([]domain.ExerciseView, 0, len(day.Exercises)),
			TargetMuscleGroups: []string{},
		}
		seenGroups := make(map[string]bool)
		minutes := 0.0
		for _, slot := range day.Exercises {
			ex, ok := exercises[slot.ExerciseID.Hex()]
			if !ok {
				continue
			}
			dv.Exercises = append(dv.Exercises, domain.ExerciseView{
				ExerciseID:    ex.ID,
				Name:          ex.Name,
				MuscleGroup:   ex.MuscleGroup,
				Type:          ex.Type,
				Tags:          ex.Tags,
				TargetSets:    slot.TargetSets,
				TargetReps:    slot.TargetReps,
				RestSeconds:   slot.RestSeconds,
				SupersetGroup: slot.SupersetGroup,
			})
			minutes += exerciseMinutes(slot)
			if ex.MuscleGroup != "" && !seenGroups[ex.MuscleGroup] {
				seenGroups[ex.MuscleGroup] = true
				dv.TargetMuscleGroups = append(dv.TargetMuscleGroups, ex.MuscleGroup)
			}
		}
		dv.EstimatedDurationMinutes = int(math.Round(minutes))
		view.Days = append(view.Days, dv)
	}
	return view
}

// exerciseMinutes estimates one slot's time cost: two minutes of work per set
// plus one inter-set rest block. Unparseable set targets assume defaultSets.
func exerciseMinutes(slot domain.PlanExercise) float64 {
	sets := defaultSets
	if n, err := strconv.Atoi(strings.TrimSpace(slot.TargetSets)); err == nil && n > 0 {
		sets = n
	}
	return float64(sets)*2 + float64(slot.RestSeconds)/60
}

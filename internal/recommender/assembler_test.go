package recommender

import (
	"reflect"
	"testing"

	"lasko/fitness-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildDetailViewDurationEstimate(t *testing.T) {
	squatID := primitive.NewObjectID()
	rowID := primitive.NewObjectID()

	plan := &domain.Plan{
		ID:   primitive.NewObjectID(),
		Name: "Full Body A",
		Days: []domain.PlanDay{
			{
				DayOrder: 1,
				Name:     "Day 1",
				Exercises: []domain.PlanExercise{
					// 4 sets * 2 min + 60s rest = 9 minutes
					{ExerciseID: squatID, TargetSets: "4", RestSeconds: 60},
					// unparseable sets fall back to 3: 3*2 + 90s = 7.5 minutes
					{ExerciseID: rowID, TargetSets: "3-5", RestSeconds: 90},
				},
			},
		},
	}
	exercises := map[string]domain.Exercise{
		squatID.Hex(): {ID: squatID, Name: "Squat", MuscleGroup: "Legs"},
		rowID.Hex():   {ID: rowID, Name: "Row", MuscleGroup: "Back"},
	}

	view := BuildDetailView(plan, exercises)

	if len(view.Days) != 1 {
		t.Fatalf("Days = %d, want 1", len(view.Days))
	}
	// 9 + 7.5 = 16.5, rounded to 17.
	if got := view.Days[0].EstimatedDurationMinutes; got != 17 {
		t.Errorf("EstimatedDurationMinutes = %d, want 17", got)
	}
}

func TestBuildDetailViewDayOrdering(t *testing.T) {
	exID := primitive.NewObjectID()
	plan := &domain.Plan{
		Days: []domain.PlanDay{
			{DayOrder: 3, Name: "Pull"},
			{DayOrder: 1, Name: "Push"},
			{DayOrder: 2, Name: "Legs"},
		},
	}
	exercises := map[string]domain.Exercise{exID.Hex(): {ID: exID, Name: "Anything"}}

	view := BuildDetailView(plan, exercises)

	var names []string
	for _, d := range view.Days {
		names = append(names, d.Name)
	}
	want := []string{"Push", "Legs", "Pull"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("day order = %v, want %v", names, want)
	}
}

func TestBuildDetailViewSkipsMissingExercises(t *testing.T) {
	knownID := primitive.NewObjectID()
	ghostID := primitive.NewObjectID()

	plan := &domain.Plan{
		Days: []domain.PlanDay{
			{
				DayOrder: 1,
				Exercises: []domain.PlanExercise{
					{ExerciseID: ghostID, TargetSets: "3", RestSeconds: 60},
					{ExerciseID: knownID, TargetSets: "3", RestSeconds: 60},
				},
			},
		},
	}
	exercises := map[string]domain.Exercise{
		knownID.Hex(): {ID: knownID, Name: "Push Up", MuscleGroup: "Chest"},
	}

	view := BuildDetailView(plan, exercises)

	if len(view.Days[0].Exercises) != 1 {
		t.Fatalf("Exercises = %d, want 1 (library miss skipped)", len(view.Days[0].Exercises))
	}
	if view.Days[0].Exercises[0].Name != "Push Up" {
		t.Errorf("surviving exercise = %q, want %q", view.Days[0].Exercises[0].Name, "Push Up")
	}
	// The skipped slot contributes no time.
	if got := view.Days[0].EstimatedDurationMinutes; got != 7 {
		t.Errorf("EstimatedDurationMinutes = %d, want 7", got)
	}
}

func TestBuildDetailViewTargetMuscleGroups(t *testing.T) {
	benchID := primitive.NewObjectID()
	flyID := primitive.NewObjectID()
	rowID := primitive.NewObjectID()

	plan := &domain.Plan{
		Days: []domain.PlanDay{
			{
				DayOrder: 1,
				Exercises: []domain.PlanExercise{
					{ExerciseID: benchID},
					{ExerciseID: flyID},
					{ExerciseID: rowID},
				},
			},
		},
	}
	exercises := map[string]domain.Exercise{
		benchID.Hex(): {ID: benchID, Name: "Bench Press", MuscleGroup: "Chest"},
		flyID.Hex():   {ID: flyID, Name: "Cable Fly", MuscleGroup: "Chest"},
		rowID.Hex():   {ID: rowID, Name: "Barbell Row", MuscleGroup: "Back"},
	}

	view := BuildDetailView(plan, exercises)

	want := []string{"Chest", "Back"}
	if !reflect.DeepEqual(view.Days[0].TargetMuscleGroups, want) {
		t.Errorf("TargetMuscleGroups = %v, want distinct first-seen order %v", view.Days[0].TargetMuscleGroups, want)
	}
}

func TestBuildDetailViewCopiesPlanHeader(t *testing.T) {
	plan := &domain.Plan{
		ID:                      primitive.NewObjectID(),
		Name:                    "Hypertrophy Block",
		Description:             "12 week block",
		GoalType:                domain.GoalMass,
		DifficultyLevel:         domain.LevelIntermediate,
		TrainingDaysPerWeek:     4,
		EquipmentRequired:       domain.EquipmentGym,
		SessionDurationEstimate: 75,
	}

	view := BuildDetailView(plan, nil)

	if view.ID != plan.ID || view.Name != plan.Name || view.GoalType != plan.GoalType ||
		view.DifficultyLevel != plan.DifficultyLevel || view.TrainingDaysPerWeek != plan.TrainingDaysPerWeek ||
		view.EquipmentRequired != plan.EquipmentRequired || view.SessionDurationEstimate != plan.SessionDurationEstimate {
		t.Errorf("view header = %+v does not mirror plan %+v", view, plan)
	}
	if view.Days == nil || len(view.Days) != 0 {
		t.Errorf("Days = %v, want empty non-nil slice for a plan without days", view.Days)
	}
}

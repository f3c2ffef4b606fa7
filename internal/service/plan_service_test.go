package service

import (
	"context"
	"errors"
	"testing"

	"lasko/fitness-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validPlan(exerciseID primitive.ObjectID) *domain.Plan {
	return &domain.Plan{
		Name:                "Upper Lower Split",
		GoalType:            domain.GoalMass,
		DifficultyLevel:     domain.LevelIntermediate,
		TrainingDaysPerWeek: 2,
		EquipmentRequired:   domain.EquipmentHomeBasic,
		Days: []domain.PlanDay{
			{DayOrder: 2, Name: "Lower", Exercises: []domain.PlanExercise{{ExerciseID: exerciseID, TargetSets: "3"}}},
			{DayOrder: 1, Name: "Upper", Exercises: []domain.PlanExercise{{ExerciseID: exerciseID, TargetSets: "4"}}},
		},
	}
}

func planServiceWithExercise(t *testing.T) (PlanService, primitive.ObjectID) {
	t.Helper()
	exerciseID := primitive.NewObjectID()
	exerciseRepo := &mockExerciseRepo{exercises: map[primitive.ObjectID]domain.Exercise{
		exerciseID: {ID: exerciseID, Name: "Goblet Squat"},
	}}
	return NewPlanService(&mockPlanRepo{}, exerciseRepo), exerciseID
}

func TestCreatePlanSortsDays(t *testing.T) {
	svc, exerciseID := planServiceWithExercise(t)
	plan := validPlan(exerciseID)

	created, err := svc.CreatePlan(context.Background(), plan)
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("created plan has no ID")
	}
	if created.Days[0].DayOrder != 1 || created.Days[1].DayOrder != 2 {
		t.Errorf("days not sorted by order: %v, %v", created.Days[0].DayOrder, created.Days[1].DayOrder)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	svc, exerciseID := planServiceWithExercise(t)

	tests := []struct {
		name   string
		mutate func(*domain.Plan)
	}{
		{
			name:   "missing name",
			mutate: func(p *domain.Plan) { p.Name = "" },
		},
		{
			name:   "too few days per week",
			mutate: func(p *domain.Plan) { p.TrainingDaysPerWeek = 1 },
		},
		{
			name:   "too many days per week",
			mutate: func(p *domain.Plan) { p.TrainingDaysPerWeek = 7 },
		},
		{
			name:   "day count does not match declared schedule",
			mutate: func(p *domain.Plan) { p.TrainingDaysPerWeek = 4 },
		},
		{
			name:   "duplicate day order",
			mutate: func(p *domain.Plan) { p.Days[1].DayOrder = p.Days[0].DayOrder },
		},
		{
			name: "unknown exercise reference",
			mutate: func(p *domain.Plan) {
				p.Days[0].Exercises[0].ExerciseID = primitive.NewObjectID()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan(exerciseID)
			tt.mutate(plan)
			if _, err := svc.CreatePlan(context.Background(), plan); !errors.Is(err, ErrPlanValidationFailed) {
				t.Errorf("CreatePlan() error = %v, want ErrPlanValidationFailed", err)
			}
		})
	}
}

func TestUpdatePlanRequiresID(t *testing.T) {
	svc, exerciseID := planServiceWithExercise(t)

	plan := validPlan(exerciseID)
	if _, err := svc.UpdatePlan(context.Background(), plan); err == nil {
		t.Error("UpdatePlan() without an ID should fail")
	}
}

// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a published training plan from the catalog. Days and their exercise
// slots are embedded; the exercise definitions themselves live in the
// exercise library and are joined in by the assembler.
type Plan struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                    string             `bson:"name" json:"name"`
	Description             string             `bson:"description,omitempty" json:"description,omitempty"`
	GoalType                Goal               `bson:"goalType" json:"goalType"`
	DifficultyLevel         Level              `bson:"difficultyLevel" json:"difficultyLevel"`
	TrainingDaysPerWeek     int                `bson:"trainingDaysPerWeek" json:"trainingDaysPerWeek"`
	EquipmentRequired       Equipment          `bson:"equipmentRequired" json:"equipmentRequired"`
	SessionDurationEstimate int                `bson:"sessionDurationEstimate,omitempty" json:"sessionDurationEstimate,omitempty"`
	Days                    []PlanDay          `bson:"days,omitempty" json:"days,omitempty"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlanDay is one training day within a plan. DayOrder is unique within the
// plan and drives presentation order.
type PlanDay struct {
	DayOrder  int            `bson:"dayOrder" json:"dayOrder"`
	Name      string         `bson:"name,omitempty" json:"name,omitempty"`
	Exercises []PlanExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// PlanExercise is an exercise slot within a day. TargetSets is stored as a
// string because plan authors enter ranges and shorthand ("4", "3-5", "AMRAP");
// the assembler parses it and falls back to a default when it cannot.
type PlanExercise struct {
	ExerciseID    primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	TargetSets    string             `bson:"targetSets,omitempty" json:"targetSets,omitempty"`
	TargetReps    string             `bson:"targetReps,omitempty" json:"targetReps,omitempty"`
	RestSeconds   int                `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	SupersetGroup string             `bson:"supersetGroup,omitempty" json:"supersetGroup,omitempty"`
}

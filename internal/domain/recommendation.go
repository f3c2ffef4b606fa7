// internal/domain/recommendation.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreComponents holds the per-factor scores behind a final score. Every
// value is in [0,1]. Popularity is only meaningful in hybrid and popularity
// modes and stays 0 otherwise.
type ScoreComponents struct {
	Goal       float64 `json:"goalScore"`
	Level      float64 `json:"levelScore"`
	Schedule   float64 `json:"scheduleScore"`
	Equipment  float64 `json:"equipmentScore"`
	Popularity float64 `json:"popularityScore,omitempty"`
}

// ScoredCandidate is the ephemeral result of one scoring pass over one plan.
// It lives for the duration of a request and is never persisted.
type ScoredCandidate struct {
	Plan           *Plan           `json:"plan"`
	Score          float64         `json:"score"` // final blended score, [0,1]
	Components     ScoreComponents `json:"components"`
	WhyRecommended []string        `json:"whyRecommended"`
}

// Explanation is the structured justification shown to the end user for a
// recommended plan. All four lists may be empty; the structure is always
// present.
type Explanation struct {
	BasicMatch               []string `json:"basicMatch"`
	AdvancedMatch            []string `json:"advancedMatch"`
	PotentialIssues          []string `json:"potentialIssues"`
	CustomizationSuggestions []string `json:"customizationSuggestions"`
}

// ExerciseView is a fully joined exercise slot inside a PlanDetailView day.
type ExerciseView struct {
	ExerciseID    primitive.ObjectID `json:"exerciseId"`
	Name          string             `json:"name"`
	MuscleGroup   string             `json:"muscleGroup,omitempty"`
	Type          string             `json:"type,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
	TargetSets    string             `json:"targetSets,omitempty"`
	TargetReps    string             `json:"targetReps,omitempty"`
	RestSeconds   int                `json:"restSeconds,omitempty"`
	SupersetGroup string             `json:"supersetGroup,omitempty"`
}

// DayView is one assembled training day: exercises joined with the library
// plus derived fields.
type DayView struct {
	DayOrder                 int            `json:"dayOrder"`
	Name                     string         `json:"name,omitempty"`
	Exercises                []ExerciseView `json:"exercises"`
	EstimatedDurationMinutes int            `json:"estimatedDurationMinutes"`
	TargetMuscleGroups       []string       `json:"targetMuscleGroups"` // distinct, first-seen order
}

// PlanDetailView is the denormalized plan structure (plan -> days ->
// exercises -> tags) handed to the frontend and to the explanation generator.
// Days are ordered by DayOrder, exercises by their slot order within the day.
type PlanDetailView struct {
	ID                      primitive.ObjectID `json:"id"`
	Name                    string             `json:"name"`
	Description             string             `json:"description,omitempty"`
	GoalType                Goal               `json:"goalType"`
	DifficultyLevel         Level              `json:"difficultyLevel"`
	TrainingDaysPerWeek     int                `json:"trainingDaysPerWeek"`
	EquipmentRequired       Equipment          `json:"equipmentRequired"`
	SessionDurationEstimate int                `json:"sessionDurationEstimate,omitempty"`
	Days                    []DayView          `json:"days"`
}

// PlanActivation records that a user started training on a plan. Goal and
// level are snapshotted at activation time so popularity cohorts survive later
// profile edits.
type PlanActivation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	Goal        Goal               `bson:"goal,omitempty" json:"goal,omitempty"`
	Level       Level              `bson:"level,omitempty" json:"level,omitempty"`
	ActivatedAt time.Time          `bson:"activatedAt" json:"activatedAt"`
}

// RecommendationLogEntry is the best-effort audit record written after a
// recommendation response. Writes are fire-and-forget; failures never reach
// the caller.
type RecommendationLogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	RequestID  string             `bson:"requestId,omitempty"`
	UserID     primitive.ObjectID `bson:"userId"`
	PlanID     primitive.ObjectID `bson:"planId"`
	Score      float64            `bson:"score"`
	SurveyData UserProfile        `bson:"surveyData"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

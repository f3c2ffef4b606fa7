package repository

import (
	"lasko/fitness-api/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.UserProfile) error
}

// PlanRepository defines the interface for interacting with the plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetAll(ctx context.Context) ([]domain.Plan, error)
	// FindEligible fetches plans matching the recommender's hard constraints:
	// equipment requirement within the allowed tiers (no constraint when the
	// slice is empty) and day count within [minDays, maxDays].
	FindEligible(ctx context.Context, allowedEquipment []domain.Equipment, minDays, maxDays int) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByIDs fetches a batch of exercises in one round trip; missing ids are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetMediaObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// ActivationRepository records which users train on which plans. Activation
// counts per goal+level cohort are the popularity signal for hybrid scoring.
type ActivationRepository interface {
	Create(ctx context.Context, activation *domain.PlanActivation) (primitive.ObjectID, error)
	// CohortStats returns per-plan activation counts (keyed by plan id hex)
	// and the cohort's total activation count for users sharing goal+level.
	CohortStats(ctx context.Context, goal domain.Goal, level domain.Level) (map[string]int, int, error)
}

// RecommendationLogRepository is the best-effort, append-only audit sink for
// recommendation outcomes.
type RecommendationLogRepository interface {
	Create(ctx context.Context, entry *domain.RecommendationLogEntry) error
}

// internal/repository/mongo/recommendation_log_repo.go
package mongo

import (
	"context"
	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recommendationLogCollectionName = "recommendation_logs"

// mongoRecommendationLogRepository implements repository.RecommendationLogRepository.
// Writes are best-effort: the service layer calls Create from a detached
// goroutine and only logs failures, never surfaces them.
type mongoRecommendationLogRepository struct {
	collection *mongo.Collection
}

// NewMongoRecommendationLogRepository creates a new recommendation log repository.
func NewMongoRecommendationLogRepository(db *mongo.Database) repository.RecommendationLogRepository {
	return &mongoRecommendationLogRepository{
		collection: db.Collection(recommendationLogCollectionName),
	}
}

// Create appends one log entry.
func (r *mongoRecommendationLogRepository) Create(ctx context.Context, entry *domain.RecommendationLogEntry) error {
	entry.ID = primitive.NewObjectID()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// EnsureRecommendationLogIndexes creates necessary indexes. Call during startup.
func EnsureRecommendationLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal.
	}
}

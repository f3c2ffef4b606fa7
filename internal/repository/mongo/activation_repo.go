// internal/repository/mongo/activation_repo.go
package mongo

import (
	"context"
	"errors"
	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activationCollectionName = "plan_activations"

// mongoActivationRepository implements repository.ActivationRepository
type mongoActivationRepository struct {
	collection *mongo.Collection
}

// NewMongoActivationRepository creates a new activation repository.
func NewMongoActivationRepository(db *mongo.Database) repository.ActivationRepository {
	return &mongoActivationRepository{
		collection: db.Collection(activationCollectionName),
	}
}

// Create records a plan activation.
func (r *mongoActivationRepository) Create(ctx context.Context, activation *domain.PlanActivation) (primitive.ObjectID, error) {
	if activation.UserID == primitive.NilObjectID || activation.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("activation requires userId and planId")
	}
	activation.ID = primitive.NewObjectID()
	if activation.ActivatedAt.IsZero() {
		activation.ActivatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, activation)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted activation ID")
	}
	return insertedID, nil
}

// CohortStats aggregates activation counts per plan for users sharing the
// given goal and level. One batched aggregation per scoring pass; the
// recommender scales the counts into popularity scores.
func (r *mongoActivationRepository) CohortStats(ctx context.Context, goal domain.Goal, level domain.Level) (map[string]int, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"goal": goal, "level": level}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$planId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PlanID primitive.ObjectID `bson:"_id"`
		Count  int                `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int, len(rows))
	total := 0
	for _, row := range rows {
		counts[row.PlanID.Hex()] = row.Count
		total += row.Count
	}
	return counts, total, nil
}

// EnsureActivationIndexes creates necessary indexes. Call during startup.
func EnsureActivationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Cohort aggregation path.
			Keys:    bson.D{{Key: "goal", Value: 1}, {Key: "level", Value: 1}, {Key: "planId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal.
	}
}

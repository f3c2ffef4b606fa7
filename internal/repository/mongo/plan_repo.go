// internal/repository/mongo/plan_repo.go
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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan catalog repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan with its embedded days.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires a name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetAll retrieves the full plan catalog, name-sorted for stable listings.
func (r *mongoPlanRepository) GetAll(ctx context.Context) ([]domain.Plan, error) {
	return r.find(ctx, bson.M{})
}

// FindEligible fetches plans matching the recommender's hard constraints in a
// single batched query: equipment requirement within the allowed tiers (no
// constraint when the slice is empty) and day count within [minDays, maxDays].
func (r *mongoPlanRepository) FindEligible(ctx context.Context, allowedEquipment []domain.Equipment, minDays, maxDays int) ([]domain.Plan, error) {
	filter := bson.M{
		"trainingDaysPerWeek": bson.M{"$gte": minDays, "$lte": maxDays},
	}
	if len(allowedEquipment) > 0 {
		filter["equipmentRequired"] = bson.M{"$in": allowedEquipment}
	}
	return r.find(ctx, filter)
}

func (r *mongoPlanRepository) find(ctx context.Context, filter bson.M) ([]domain.Plan, error) {
	var plans []domain.Plan
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice when nothing matches; an empty candidate set is not an error.
	return plans, nil
}

// Update replaces the mutable fields of a plan, including its day structure.
func (r *mongoPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("plan ID is required for update")
	}

	filter := bson.M{"_id": plan.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":                    plan.Name,
			"description":             plan.Description,
			"goalType":                plan.GoalType,
			"difficultyLevel":         plan.DifficultyLevel,
			"trainingDaysPerWeek":     plan.TrainingDaysPerWeek,
			"equipmentRequired":       plan.EquipmentRequired,
			"sessionDurationEstimate": plan.SessionDurationEstimate,
			"days":                    plan.Days,
			"updatedAt":               time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan from the catalog.
func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Compound index for the retrieval query: equipment tier + day band.
			Keys:    bson.D{{Key: "equipmentRequired", Value: 1}, {Key: "trainingDaysPerWeek", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "goalType", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; retrieval still works without indexes.
	}
}

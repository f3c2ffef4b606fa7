package service

import (
	"context"
	"errors"
	"fmt"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/repository"
	"lasko/fitness-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, name, description, muscleGroup, exerciseType string, tags []string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, name, description, muscleGroup, exerciseType string, tags []string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error

	// RequestMediaUpload returns a presigned PUT URL for a demo video or image
	// and records the target object key on the exercise.
	RequestMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	// GetMediaDownloadURL returns a presigned GET URL for the exercise's media.
	GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// CreateExercise handles the creation of a new library exercise.
func (s *exerciseService) CreateExercise(ctx context.Context, name, description, muscleGroup, exerciseType string, tags []string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.Exercise{
		Name:        name,
		Description: description,
		MuscleGroup: muscleGroup,
		Type:        exerciseType,
		Tags:        tags,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	// Fetch again so CreatedAt/UpdatedAt come back populated.
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// UpdateExercise handles updating an existing exercise.
func (s *exerciseService) UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, name, description, muscleGroup, exerciseType string, tags []string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	existing.Name = name
	existing.Description = description
	existing.MuscleGroup = muscleGroup
	existing.Type = exerciseType
	existing.Tags = tags

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes an exercise and its media object, if any.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if existing.MediaObjectKey != "" {
		// Best effort; a dangling object is cheaper than a failed delete.
		_ = s.fileStorage.DeleteObject(ctx, existing.MediaObjectKey)
	}
	return nil
}

// RequestMediaUpload issues a presigned PUT URL for the exercise's demo media.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (string, string, error) {
	if contentType == "" {
		return "", "", ErrValidationFailed
	}
	if _, err := s.GetExerciseByID(ctx, exerciseID); err != nil {
		return "", "", err
	}

	objectKey := fmt.Sprintf("exercises/%s/%s", exerciseID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}

	if err := s.exerciseRepo.SetMediaObjectKey(ctx, exerciseID, objectKey); err != nil {
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

// GetMediaDownloadURL issues a presigned GET URL for the exercise's media.
func (s *exerciseService) GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaObjectKey == "" {
		return "", ErrExerciseNotFound
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaObjectKey, storage.DefaultPresignedURLExpiry)
}

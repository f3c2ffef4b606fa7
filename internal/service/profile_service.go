package service

import (
	"context"
	"errors"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/recommender"
	"lasko/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileView pairs the raw stored answers with their normalized reading so
// the dashboard can show both what the user said and what the recommender
// understood.
type ProfileView struct {
	Profile     domain.UserProfile     `json:"profile"`
	Preferences domain.UserPreferences `json:"preferences"`
}

// --- Service Interface ---
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile domain.UserProfile) (*ProfileView, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &ProfileView{
		Profile:     user.Profile,
		Preferences: recommender.Normalize(domain.UserProfile{}, user.Profile),
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile domain.UserProfile) (*ProfileView, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &ProfileView{
		Profile:     profile,
		Preferences: recommender.Normalize(domain.UserProfile{}, profile),
	}, nil
}

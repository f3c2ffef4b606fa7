package service

import (
	"context"
	"errors"
	"sort"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanValidationFailed = errors.New("plan validation failed")
)

// --- Service Interface ---
type PlanService interface {
	CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	UpdatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	DeletePlan(ctx context.Context, planID primitive.ObjectID) error
}

type planService struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, exerciseRepo repository.ExerciseRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreatePlan validates and stores a new catalog plan.
func (s *planService) CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if err := s.validate(ctx, plan); err != nil {
		return nil, err
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID)
}

func (s *planService) GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.GetAll(ctx)
}

func (s *planService) UpdatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if plan.ID == primitive.NilObjectID {
		return nil, errors.New("plan ID is required")
	}
	if err := s.validate(ctx, plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planRepo.GetByID(ctx, plan.ID)
}

func (s *planService) DeletePlan(ctx context.Context, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// validate enforces the structural invariants the recommender relies on:
// day orders unique, referenced exercises existing, day count matching the
// declared weekly schedule.
func (s *planService) validate(ctx context.Context, plan *domain.Plan) error {
	if plan.Name == "" {
		return ErrPlanValidationFailed
	}
	if plan.TrainingDaysPerWeek < 2 || plan.TrainingDaysPerWeek > 6 {
		return ErrPlanValidationFailed
	}
	if len(plan.Days) > 0 && len(plan.Days) != plan.TrainingDaysPerWeek {
		return ErrPlanValidationFailed
	}

	seenOrders := make(map[int]bool, len(plan.Days))
	var ids []primitive.ObjectID
	for _, day := range plan.Days {
		if seenOrders[day.DayOrder] {
			return ErrPlanValidationFailed
		}
		seenOrders[day.DayOrder] = true
		for _, slot := range day.Exercises {
			ids = append(ids, slot.ExerciseID)
		}
	}

	if len(ids) > 0 {
		found, err := s.exerciseRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		known := make(map[primitive.ObjectID]bool, len(found))
		for _, ex := range found {
			known[ex.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				return ErrPlanValidationFailed
			}
		}
	}

	// Store days sorted so readers never depend on insertion order.
	sort.SliceStable(plan.Days, func(i, j int) bool { return plan.Days[i].DayOrder < plan.Days[j].DayOrder })
	return nil
}

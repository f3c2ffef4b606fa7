package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/recommender"
	"lasko/fitness-api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	// ErrNoMatchingPlans is the explicit empty-result marker: retrieval or
	// ranking produced zero candidates. Not an infrastructure failure; the
	// API layer maps it to a 404 with a fallback suggestion.
	ErrNoMatchingPlans = errors.New("no plans match the given preferences")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrProfileNotFound = errors.New("user profile not found")
)

// InvalidSurveyError rejects a request whose survey and stored profile are
// both missing structurally required fields. It names the fields so the API
// layer can surface a specific 400 message.
type InvalidSurveyError struct {
	Missing []string
}

func (e *InvalidSurveyError) Error() string {
	return "survey is missing required fields: " + strings.Join(e.Missing, ", ")
}

// FallbackSuggestion accompanies every empty recommendation result.
const FallbackSuggestion = "No plans match your constraints. Try relaxing your equipment requirement or adjusting your weekly day count."

// RecommendationResult is the full outcome of one generate pass.
type RecommendationResult struct {
	RequestID    string
	Mode         recommender.Mode
	Preferences  domain.UserPreferences
	Best         domain.ScoredCandidate
	Alternatives []domain.ScoredCandidate
	GeneratedAt  time.Time
}

// AlternativeSummary is the lightweight projection used by the alternatives
// listing: score, identity, and only the top reasons.
type AlternativeSummary struct {
	PlanID              primitive.ObjectID `json:"planId"`
	Name                string             `json:"name"`
	Description         string             `json:"description,omitempty"`
	Score               float64            `json:"score"`
	TopReasons          []string           `json:"topReasons"`
	SessionDuration     int                `json:"sessionDurationEstimate,omitempty"`
	DifficultyLevel     domain.Level       `json:"difficultyLevel"`
	TrainingDaysPerWeek int                `json:"trainingDaysPerWeek"`
}

// PlanExplanation bundles everything the explanation screen needs.
type PlanExplanation struct {
	Plan        domain.PlanDetailView  `json:"plan"`
	Explanation domain.Explanation     `json:"explanation"`
	Preferences domain.UserPreferences `json:"userPreferences"`
}

// --- Service Interface ---
type RecommendationService interface {
	// GeneratePlan ranks the eligible catalog against the user's profile plus
	// the request survey and returns the best plan with alternatives.
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, survey domain.UserProfile, mode string, planCount int) (*RecommendationResult, error)
	// GetAlternatives is the same ranking with a different count and reduced
	// explanation depth (top three reasons only).
	GetAlternatives(ctx context.Context, userID primitive.ObjectID, survey domain.UserProfile, limit int) ([]AlternativeSummary, error)
	// ExplainPlan assembles a plan and explains its fit for the user.
	ExplainPlan(ctx context.Context, planID, userID primitive.ObjectID) (*PlanExplanation, error)
	// AssemblePlan returns the denormalized plan view (days -> exercises -> tags).
	AssemblePlan(ctx context.Context, planID primitive.ObjectID) (*domain.PlanDetailView, error)
	// ActivatePlan records that the user started training on a plan; the
	// activation feeds the popularity signal.
	ActivatePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// --- Service Implementation ---

type recommendationService struct {
	userRepo       repository.UserRepository
	planRepo       repository.PlanRepository
	exerciseRepo   repository.ExerciseRepository
	activationRepo repository.ActivationRepository
	logRepo        repository.RecommendationLogRepository
	defaultMode    recommender.Mode
	logger         *zap.Logger
}

// NewRecommendationService creates a new instance of recommendationService.
func NewRecommendationService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	exerciseRepo repository.ExerciseRepository,
	activationRepo repository.ActivationRepository,
	logRepo repository.RecommendationLogRepository,
	defaultMode string,
	logger *zap.Logger,
) RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recommendationService{
		userRepo:       userRepo,
		planRepo:       planRepo,
		exerciseRepo:   exerciseRepo,
		activationRepo: activationRepo,
		logRepo:        logRepo,
		defaultMode:    recommender.ParseMode(defaultMode),
		logger:         logger,
	}
}

func (s *recommendationService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, survey domain.UserProfile, mode string, planCount int) (*RecommendationResult, error) {
	scored, prefs, scoringMode, err := s.scoreCandidates(ctx, userID, survey, mode)
	if err != nil {
		return nil, err
	}

	if planCount < 1 {
		planCount = 3
	}
	ranking, err := recommender.Rank(scored, planCount)
	if err != nil {
		if errors.Is(err, recommender.ErrNoCandidates) {
			return nil, ErrNoMatchingPlans
		}
		return nil, err
	}

	result := &RecommendationResult{
		RequestID:    uuid.NewString(),
		Mode:         scoringMode,
		Preferences:  prefs,
		Best:         ranking.Best,
		Alternatives: ranking.Alternatives,
		GeneratedAt:  time.Now().UTC(),
	}

	s.logRecommendation(result.RequestID, userID, ranking.Best, survey)

	return result, nil
}

func (s *recommendationService) GetAlternatives(ctx context.Context, userID primitive.ObjectID, survey domain.UserProfile, limit int) ([]AlternativeSummary, error) {
	scored, _, _, err := s.scoreCandidates(ctx, userID, survey, "")
	if err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = 5
	}
	ranking, err := recommender.Rank(scored, limit)
	if err != nil {
		if errors.Is(err, recommender.ErrNoCandidates) {
			return nil, ErrNoMatchingPlans
		}
		return nil, err
	}

	all := append([]domain.ScoredCandidate{ranking.Best}, ranking.Alternatives...)
	summaries := make([]AlternativeSummary, 0, len(all))
	for _, c := range all {
		reasons := c.WhyRecommended
		if len(reasons) > 3 {
			reasons = reasons[:3]
		}
		summaries = append(summaries, AlternativeSummary{
			PlanID:              c.Plan.ID,
			Name:                c.Plan.Name,
			Description:         c.Plan.Description,
			Score:               c.Score,
			TopReasons:          reasons,
			SessionDuration:     c.Plan.SessionDurationEstimate,
			DifficultyLevel:     c.Plan.DifficultyLevel,
			TrainingDaysPerWeek: c.Plan.TrainingDaysPerWeek,
		})
	}
	return summaries, nil
}

func (s *recommendationService) ExplainPlan(ctx context.Context, planID, userID primitive.ObjectID) (*PlanExplanation, error) {
	// Profile-not-found and plan-not-found stay distinct outcomes.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	view, err := s.AssemblePlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	prefs := recommender.Normalize(domain.UserProfile{}, user.Profile)
	explanation := recommender.Explain(view, prefs)

	return &PlanExplanation{
		Plan:        *view,
		Explanation: explanation,
		Preferences: prefs,
	}, nil
}

func (s *recommendationService) AssemblePlan(ctx context.Context, planID primitive.ObjectID) (*domain.PlanDetailView, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	// One batched exercise fetch for the whole plan.
	idSet := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, day := range plan.Days {
		for _, slot := range day.Exercises {
			if !idSet[slot.ExerciseID] {
				idSet[slot.ExerciseID] = true
				ids = append(ids, slot.ExerciseID)
			}
		}
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID.Hex()] = ex
	}

	view := recommender.BuildDetailView(plan, byID)
	return &view, nil
}

func (s *recommendationService) ActivatePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	// Snapshot the cohort so later profile edits do not rewrite history.
	prefs := recommender.Normalize(domain.UserProfile{}, user.Profile)
	_, err = s.activationRepo.Create(ctx, &domain.PlanActivation{
		UserID: userID,
		PlanID: planID,
		Goal:   prefs.Goal,
		Level:  prefs.Level,
	})
	return err
}

// scoreCandidates runs the shared front half of the pipeline: validate,
// normalize, retrieve, score. Both GeneratePlan and GetAlternatives build on
// the same ranking input, as required for consistent projections.
func (s *recommendationService) scoreCandidates(ctx context.Context, userID primitive.ObjectID, survey domain.UserProfile, mode string) ([]domain.ScoredCandidate, domain.UserPreferences, recommender.Mode, error) {
	var prefs domain.UserPreferences

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, prefs, "", ErrProfileNotFound
		}
		return nil, prefs, "", err
	}

	if missing := recommender.MissingRequired(survey, user.Profile); len(missing) > 0 {
		return nil, prefs, "", &InvalidSurveyError{Missing: missing}
	}

	prefs = recommender.Normalize(survey, user.Profile)
	scoringMode := s.defaultMode
	if mode != "" {
		scoringMode = recommender.ParseMode(mode)
	}

	filter := recommender.BuildCandidateFilter(prefs)
	plans, err := s.planRepo.FindEligible(ctx, filter.AllowedEquipment, filter.MinDays, filter.MaxDays)
	if err != nil {
		return nil, prefs, scoringMode, fmt.Errorf("fetching candidate plans: %w", err)
	}
	candidates := recommender.FilterCandidates(plans, filter)

	var stats *recommender.CommunityStats
	if scoringMode != recommender.ModeContent {
		counts, total, err := s.activationRepo.CohortStats(ctx, prefs.Goal, prefs.Level)
		if err != nil {
			return nil, prefs, scoringMode, fmt.Errorf("fetching cohort stats: %w", err)
		}
		stats = &recommender.CommunityStats{ActivationsByPlan: counts, SampleSize: total}
	}

	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, recommender.Score(&candidates[i], prefs, scoringMode, stats))
	}
	return scored, prefs, scoringMode, nil
}

// logRecommendation appends the outcome to the audit log, fire-and-forget.
// The write runs detached from the request: its failure is visible only to
// operators and never to the caller.
func (s *recommendationService) logRecommendation(requestID string, userID primitive.ObjectID, best domain.ScoredCandidate, survey domain.UserProfile) {
	entry := &domain.RecommendationLogEntry{
		RequestID:  requestID,
		UserID:     userID,
		PlanID:     best.Plan.ID,
		Score:      best.Score,
		SurveyData: survey,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.logRepo.Create(ctx, entry); err != nil {
			s.logger.Warn("recommendation log write failed",
				zap.String("requestId", requestID),
				zap.String("userId", userID.Hex()),
				zap.Error(err),
			)
		}
	}()
}

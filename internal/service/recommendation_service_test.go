package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- hand-rolled repository mocks ---

type mockUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.UserProfile) error {
	return nil
}

type mockPlanRepo struct {
	plans   []domain.Plan
	findErr error
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	stored := *plan
	stored.ID = primitive.NewObjectID()
	m.plans = append(m.plans, stored)
	return stored.ID, nil
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	for i := range m.plans {
		if m.plans[i].ID == id {
			return &m.plans[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockPlanRepo) GetAll(ctx context.Context) ([]domain.Plan, error) {
	return m.plans, nil
}

func (m *mockPlanRepo) FindEligible(ctx context.Context, allowedEquipment []domain.Equipment, minDays, maxDays int) ([]domain.Plan, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	// Return everything; the service re-filters in process.
	return m.plans, nil
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *domain.Plan) error { return nil }

func (m *mockPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type mockExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func (m *mockExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (m *mockExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if ex, ok := m.exercises[id]; ok {
		return &ex, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockExerciseRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, id := range ids {
		if ex, ok := m.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (m *mockExerciseRepo) GetAll(ctx context.Context) ([]domain.Exercise, error) { return nil, nil }

func (m *mockExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error { return nil }

func (m *mockExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (m *mockExerciseRepo) SetMediaObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	return nil
}

type mockActivationRepo struct {
	mu          sync.Mutex
	activations []domain.PlanActivation
	counts      map[string]int
	total       int
}

func (m *mockActivationRepo) Create(ctx context.Context, activation *domain.PlanActivation) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activations = append(m.activations, *activation)
	return primitive.NewObjectID(), nil
}

func (m *mockActivationRepo) CohortStats(ctx context.Context, goal domain.Goal, level domain.Level) (map[string]int, int, error) {
	return m.counts, m.total, nil
}

type mockLogRepo struct {
	mu      sync.Mutex
	entries []domain.RecommendationLogEntry
	err     error
	created chan struct{}
}

func (m *mockLogRepo) Create(ctx context.Context, entry *domain.RecommendationLogEntry) error {
	m.mu.Lock()
	m.entries = append(m.entries, *entry)
	m.mu.Unlock()
	if m.created != nil {
		close(m.created)
	}
	return m.err
}

// --- fixtures ---

func seededService(t *testing.T) (RecommendationService, primitive.ObjectID, *mockPlanRepo, *mockActivationRepo, *mockLogRepo) {
	t.Helper()

	userID := primitive.NewObjectID()
	userRepo := &mockUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {
			ID: userID,
			Profile: domain.UserProfile{
				Goal:                "mass",
				Level:               "beginner",
				Equipment:           "gym",
				TrainingDaysPerWeek: "4",
			},
		},
	}}

	planRepo := &mockPlanRepo{plans: []domain.Plan{
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Gym Mass Builder",
			GoalType:            domain.GoalMass,
			DifficultyLevel:     domain.LevelBeginner,
			TrainingDaysPerWeek: 4,
			EquipmentRequired:   domain.EquipmentGym,
		},
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Home Conditioning",
			GoalType:            domain.GoalEndurance,
			DifficultyLevel:     domain.LevelIntermediate,
			TrainingDaysPerWeek: 3,
			EquipmentRequired:   domain.EquipmentHomeBasic,
		},
	}}

	activationRepo := &mockActivationRepo{}
	logRepo := &mockLogRepo{}
	svc := NewRecommendationService(userRepo, planRepo, &mockExerciseRepo{}, activationRepo, logRepo, "content", nil)
	return svc, userID, planRepo, activationRepo, logRepo
}

// --- tests ---

func TestGeneratePlanPicksBestMatch(t *testing.T) {
	svc, userID, _, _, logRepo := seededService(t)
	logRepo.created = make(chan struct{})

	result, err := svc.GeneratePlan(context.Background(), userID, domain.UserProfile{}, "content", 3)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	if result.Best.Plan.Name != "Gym Mass Builder" {
		t.Errorf("Best = %q, want the exact-match plan", result.Best.Plan.Name)
	}
	if result.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if len(result.Alternatives) != 1 {
		t.Errorf("Alternatives = %d, want 1", len(result.Alternatives))
	}

	// The audit write is detached; wait for it.
	select {
	case <-logRepo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("recommendation log write never happened")
	}
	logRepo.mu.Lock()
	defer logRepo.mu.Unlock()
	if len(logRepo.entries) != 1 || logRepo.entries[0].PlanID != result.Best.Plan.ID {
		t.Errorf("log entries = %+v, want one entry for the best plan", logRepo.entries)
	}
}

func TestGeneratePlanSurveyOverridesProfile(t *testing.T) {
	svc, userID, _, _, _ := seededService(t)

	// The stored profile says gym/mass; the survey switches to home endurance.
	survey := domain.UserProfile{
		Goal:                "endurance",
		Level:               "intermediate",
		Equipment:           "home",
		TrainingDaysPerWeek: "3",
	}
	result, err := svc.GeneratePlan(context.Background(), userID, survey, "content", 3)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}
	if result.Best.Plan.Name != "Home Conditioning" {
		t.Errorf("Best = %q, want the plan matching the survey override", result.Best.Plan.Name)
	}
	// The gym plan requires more equipment than "home" and must not appear.
	for _, alt := range result.Alternatives {
		if alt.Plan.Name == "Gym Mass Builder" {
			t.Error("gym plan leaked past the equipment hard filter")
		}
	}
}

func TestGeneratePlanNoMatches(t *testing.T) {
	svc, userID, planRepo, _, logRepo := seededService(t)
	planRepo.plans = nil

	// The empty-result marker must be stable across repeated calls.
	for i := 0; i < 2; i++ {
		_, err := svc.GeneratePlan(context.Background(), userID, domain.UserProfile{}, "content", 3)
		if !errors.Is(err, ErrNoMatchingPlans) {
			t.Fatalf("call %d: error = %v, want ErrNoMatchingPlans", i+1, err)
		}
	}

	// An empty result writes nothing anywhere.
	logRepo.mu.Lock()
	defer logRepo.mu.Unlock()
	if len(logRepo.entries) != 0 {
		t.Errorf("log entries = %d, want none for an empty result", len(logRepo.entries))
	}
}

func TestGeneratePlanMissingRequiredFields(t *testing.T) {
	svc, _, _, _, _ := seededService(t)

	// A user with an empty profile and an empty survey.
	userID := primitive.NewObjectID()
	userRepo := &mockUserRepo{users: map[primitive.ObjectID]*domain.User{userID: {ID: userID}}}
	svc = NewRecommendationService(userRepo, &mockPlanRepo{}, &mockExerciseRepo{}, &mockActivationRepo{}, &mockLogRepo{}, "content", nil)

	_, err := svc.GeneratePlan(context.Background(), userID, domain.UserProfile{}, "content", 3)

	var invalid *InvalidSurveyError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidSurveyError", err)
	}
	if len(invalid.Missing) != 2 || invalid.Missing[0] != "goal" || invalid.Missing[1] != "level" {
		t.Errorf("Missing = %v, want [goal level]", invalid.Missing)
	}
}

func TestGeneratePlanUnknownUser(t *testing.T) {
	svc, _, _, _, _ := seededService(t)

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), domain.UserProfile{}, "content", 3)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestGeneratePlanLogFailureDoesNotSurface(t *testing.T) {
	svc, userID, _, _, logRepo := seededService(t)
	logRepo.err = errors.New("sink unavailable")
	logRepo.created = make(chan struct{})

	result, err := svc.GeneratePlan(context.Background(), userID, domain.UserProfile{}, "content", 3)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v, audit failure must not surface", err)
	}
	if result == nil || result.Best.Plan == nil {
		t.Fatal("result missing despite successful ranking")
	}

	select {
	case <-logRepo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("recommendation log write never attempted")
	}
}

func TestGetAlternativesTruncatesReasons(t *testing.T) {
	svc, userID, _, _, _ := seededService(t)

	summaries, err := svc.GetAlternatives(context.Background(), userID, domain.UserProfile{}, 5)
	if err != nil {
		t.Fatalf("GetAlternatives() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].Name != "Gym Mass Builder" {
		t.Errorf("summaries[0] = %q, want the best plan first", summaries[0].Name)
	}
	for _, s := range summaries {
		if len(s.TopReasons) > 3 {
			t.Errorf("plan %q carries %d reasons, want at most 3", s.Name, len(s.TopReasons))
		}
	}
}

func TestAssemblePlanJoinsExercises(t *testing.T) {
	userID := primitive.NewObjectID()
	userRepo := &mockUserRepo{users: map[primitive.ObjectID]*domain.User{userID: {ID: userID}}}

	benchID := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	planRepo := &mockPlanRepo{plans: []domain.Plan{{
		ID:   planID,
		Name: "Push Day Plan",
		Days: []domain.PlanDay{{
			DayOrder: 1,
			Exercises: []domain.PlanExercise{
				{ExerciseID: benchID, TargetSets: "3", RestSeconds: 120},
			},
		}},
	}}}
	exerciseRepo := &mockExerciseRepo{exercises: map[primitive.ObjectID]domain.Exercise{
		benchID: {ID: benchID, Name: "Bench Press", MuscleGroup: "Chest"},
	}}

	svc := NewRecommendationService(userRepo, planRepo, exerciseRepo, &mockActivationRepo{}, &mockLogRepo{}, "content", nil)

	view, err := svc.AssemblePlan(context.Background(), planID)
	if err != nil {
		t.Fatalf("AssemblePlan() error = %v", err)
	}
	if len(view.Days) != 1 || len(view.Days[0].Exercises) != 1 {
		t.Fatalf("view = %+v, want one day with one joined exercise", view)
	}
	if view.Days[0].Exercises[0].Name != "Bench Press" {
		t.Errorf("joined exercise = %q, want %q", view.Days[0].Exercises[0].Name, "Bench Press")
	}
	// 3 sets * 2 min + 120s rest = 8 minutes
	if view.Days[0].EstimatedDurationMinutes != 8 {
		t.Errorf("EstimatedDurationMinutes = %d, want 8", view.Days[0].EstimatedDurationMinutes)
	}
}

func TestAssemblePlanNotFound(t *testing.T) {
	svc, _, _, _, _ := seededService(t)

	_, err := svc.AssemblePlan(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestExplainPlanDistinctNotFoundErrors(t *testing.T) {
	svc, userID, planRepo, _, _ := seededService(t)

	// Unknown user, known plan.
	if _, err := svc.ExplainPlan(context.Background(), planRepo.plans[0].ID, primitive.NewObjectID()); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("unknown user: error = %v, want ErrProfileNotFound", err)
	}
	// Known user, unknown plan.
	if _, err := svc.ExplainPlan(context.Background(), primitive.NewObjectID(), userID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("unknown plan: error = %v, want ErrPlanNotFound", err)
	}
}

func TestExplainPlanUsesStoredProfile(t *testing.T) {
	svc, userID, planRepo, _, _ := seededService(t)

	expl, err := svc.ExplainPlan(context.Background(), planRepo.plans[0].ID, userID)
	if err != nil {
		t.Fatalf("ExplainPlan() error = %v", err)
	}
	if expl.Preferences.Goal != domain.GoalMass || expl.Preferences.Level != domain.LevelBeginner {
		t.Errorf("Preferences = %+v, want the normalized stored profile", expl.Preferences)
	}
	// Gym Mass Builder matches goal, level and schedule exactly.
	if len(expl.Explanation.BasicMatch) != 3 {
		t.Errorf("BasicMatch = %v, want 3 entries", expl.Explanation.BasicMatch)
	}
}

func TestActivatePlanSnapshotsCohort(t *testing.T) {
	svc, userID, planRepo, activationRepo, _ := seededService(t)

	if err := svc.ActivatePlan(context.Background(), userID, planRepo.plans[0].ID); err != nil {
		t.Fatalf("ActivatePlan() error = %v", err)
	}

	activationRepo.mu.Lock()
	defer activationRepo.mu.Unlock()
	if len(activationRepo.activations) != 1 {
		t.Fatalf("activations = %d, want 1", len(activationRepo.activations))
	}
	a := activationRepo.activations[0]
	if a.UserID != userID || a.PlanID != planRepo.plans[0].ID {
		t.Errorf("activation = %+v, wrong identity", a)
	}
	if a.Goal != domain.GoalMass || a.Level != domain.LevelBeginner {
		t.Errorf("cohort snapshot = goal %q level %q, want normalized profile values", a.Goal, a.Level)
	}
}

func TestActivatePlanUnknownPlan(t *testing.T) {
	svc, userID, _, _, _ := seededService(t)

	if err := svc.ActivatePlan(context.Background(), userID, primitive.NewObjectID()); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestGeneratePlanBodyweightUserAgainstMixedCatalog(t *testing.T) {
	userID := primitive.NewObjectID()
	userRepo := &mockUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {
			ID: userID,
			Profile: domain.UserProfile{
				Goal:                "mass",
				Level:               "beginner",
				Equipment:           "bodyweight",
				TrainingDaysPerWeek: "3",
			},
		},
	}}
	planRepo := &mockPlanRepo{plans: []domain.Plan{
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Calisthenics Foundations",
			GoalType:            domain.GoalMass,
			DifficultyLevel:     domain.LevelBeginner,
			TrainingDaysPerWeek: 3,
			EquipmentRequired:   domain.EquipmentBodyweight,
		},
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Barbell Mass Program",
			GoalType:            domain.GoalMass,
			DifficultyLevel:     domain.LevelBeginner,
			TrainingDaysPerWeek: 3,
			EquipmentRequired:   domain.EquipmentGym,
		},
	}}
	svc := NewRecommendationService(userRepo, planRepo, &mockExerciseRepo{}, &mockActivationRepo{}, &mockLogRepo{}, "content", nil)

	result, err := svc.GeneratePlan(context.Background(), userID, domain.UserProfile{}, "content", 3)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	if result.Best.Plan.Name != "Calisthenics Foundations" {
		t.Errorf("Best = %q, want the bodyweight plan", result.Best.Plan.Name)
	}
	if len(result.Alternatives) != 0 {
		t.Errorf("Alternatives = %v, the gym plan must be filtered out entirely", result.Alternatives)
	}
	c := result.Best.Components
	if c.Goal != 1.0 || c.Level != 1.0 || c.Schedule != 1.0 || c.Equipment != 1.0 {
		t.Errorf("Components = %+v, want all 1.0", c)
	}
	if len(result.Best.WhyRecommended) != 4 {
		t.Errorf("WhyRecommended = %v, want 4 clauses", result.Best.WhyRecommended)
	}
}

func TestGeneratePlanHybridUsesCohortStats(t *testing.T) {
	svc, userID, planRepo, activationRepo, _ := seededService(t)

	// Make both plans content-equal by the equipment filter, then let the
	// community signal separate them. Only the second plan has activations.
	planRepo.plans[1] = domain.Plan{
		ID:                  planRepo.plans[1].ID,
		Name:                "Gym Mass Builder II",
		GoalType:            domain.GoalMass,
		DifficultyLevel:     domain.LevelBeginner,
		TrainingDaysPerWeek: 4,
		EquipmentRequired:   domain.EquipmentGym,
	}
	activationRepo.counts = map[string]int{planRepo.plans[1].ID.Hex(): 50}
	activationRepo.total = 50

	result, err := svc.GeneratePlan(context.Background(), userID, domain.UserProfile{}, "hybrid", 2)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}
	if result.Best.Plan.Name != "Gym Mass Builder II" {
		t.Errorf("Best = %q, want the popular plan to win the hybrid blend", result.Best.Plan.Name)
	}
	if result.Best.Components.Popularity != 1.0 {
		t.Errorf("Popularity = %v, want 1.0", result.Best.Components.Popularity)
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationHandler holds the recommendation service dependency.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// --- DTOs ---

type GenerateRequest struct {
	Survey    ProfilePayload `json:"survey"`
	Mode      string         `json:"mode" binding:"omitempty,oneof=content popularity hybrid"`
	PlanCount int            `json:"planCount" binding:"omitempty,min=1,max=10"`
}

// ScoredPlanResponse is one ranked entry with its plan data and score
// breakdown.
type ScoredPlanResponse struct {
	Plan           domain.Plan            `json:"plan"`
	Score          float64                `json:"score"`
	Components     domain.ScoreComponents `json:"components"`
	WhyRecommended []string               `json:"whyRecommended"`
}

type GenerateResponse struct {
	Best         ScoredPlanResponse   `json:"best"`
	Alternatives []ScoredPlanResponse `json:"alternatives"`
	Metadata     GenerateMetadata     `json:"metadata"`
}

type GenerateMetadata struct {
	RequestID   string                 `json:"requestId"`
	Mode        string                 `json:"mode"`
	Preferences domain.UserPreferences `json:"preferences"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// noMatchBody is the explicit empty-result payload: a 404 with a fallback
// suggestion, distinct from plan/profile not-found errors.
func noMatchBody() gin.H {
	return gin.H{
		"error":      "no plans match",
		"suggestion": service.FallbackSuggestion,
	}
}

// --- Handler Methods ---

// Generate godoc
// @Summary Generate training plan recommendations
// @Description Ranks the plan catalog against the user's profile plus the request survey.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateRequest true "Survey answers and options"
// @Success 200 {object} GenerateResponse "Ranked recommendations"
// @Failure 400 {object} gin.H "Missing required survey fields"
// @Failure 404 {object} gin.H "No matching plans, or profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /recommendations [post]
func (h *RecommendationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.recommendationService.GeneratePlan(c.Request.Context(), userID, req.Survey.toDomain(), req.Mode, req.PlanCount)
	if err != nil {
		h.mapPipelineError(c, err)
		return
	}

	resp := GenerateResponse{
		Best:         mapScoredCandidate(result.Best),
		Alternatives: make([]ScoredPlanResponse, 0, len(result.Alternatives)),
		Metadata: GenerateMetadata{
			RequestID:   result.RequestID,
			Mode:        string(result.Mode),
			Preferences: result.Preferences,
			GeneratedAt: result.GeneratedAt,
		},
	}
	for _, alt := range result.Alternatives {
		resp.Alternatives = append(resp.Alternatives, mapScoredCandidate(alt))
	}
	c.JSON(http.StatusOK, resp)
}

// Alternatives godoc
// @Summary List alternative plan suggestions
// @Description Lightweight projection of the same ranking with top-3 reasons only.
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of results" default(5)
// @Success 200 {array} service.AlternativeSummary
// @Failure 404 {object} gin.H "No matching plans, or profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /recommendations/alternatives [get]
func (h *RecommendationHandler) Alternatives(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	// Alternatives reuse the stored profile as the survey.
	summaries, err := h.recommendationService.GetAlternatives(c.Request.Context(), userID, domain.UserProfile{}, limit)
	if err != nil {
		h.mapPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// PlanDetail godoc
// @Summary Get the assembled plan view
// @Description Denormalized plan structure: days, joined exercises, derived durations and muscle groups.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.PlanDetailView
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{planId} [get]
func (h *RecommendationHandler) PlanDetail(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	view, err := h.recommendationService.AssemblePlan(c.Request.Context(), planID)
	if err != nil {
		h.mapPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ExplainPlan godoc
// @Summary Explain a plan's fit for the current user
// @Description Structured match breakdown, potential issues and customization suggestions.
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} service.PlanExplanation
// @Failure 404 {object} gin.H "Plan or profile not found (distinct messages)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{planId}/explanation [get]
func (h *RecommendationHandler) ExplainPlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	explanation, err := h.recommendationService.ExplainPlan(c.Request.Context(), planID, userID)
	if err != nil {
		h.mapPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

// ActivatePlan godoc
// @Summary Start training on a plan
// @Description Records an activation; activations feed the popularity signal for similar users.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 201 {object} gin.H
// @Failure 404 {object} gin.H "Plan or profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{planId}/activate [post]
func (h *RecommendationHandler) ActivatePlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recommendationService.ActivatePlan(c.Request.Context(), userID, planID); err != nil {
		h.mapPipelineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "activated"})
}

// mapPipelineError translates the service error taxonomy into HTTP outcomes:
// invalid input -> 400 naming the missing fields; no match -> 404 with a
// fallback suggestion; plan/profile not found -> distinct 404s; everything
// else -> generic 500.
func (h *RecommendationHandler) mapPipelineError(c *gin.Context, err error) {
	var invalid *service.InvalidSurveyError
	switch {
	case errors.As(err, &invalid):
		abortWithError(c, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, service.ErrNoMatchingPlans):
		c.AbortWithStatusJSON(http.StatusNotFound, noMatchBody())
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, "Plan not found.")
	case errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, "User profile not found.")
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process recommendation request.")
	}
}

func mapScoredCandidate(c domain.ScoredCandidate) ScoredPlanResponse {
	return ScoredPlanResponse{
		Plan:           *c.Plan,
		Score:          c.Score,
		Components:     c.Components,
		WhyRecommended: c.WhyRecommended,
	}
}

// currentUserID pulls the authenticated user's ObjectID out of the JWT
// context, aborting with the right status when it cannot.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}

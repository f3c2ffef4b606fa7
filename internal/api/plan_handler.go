package api

import (
	"errors"
	"fmt"
	"net/http"

	"lasko/fitness-api/internal/domain"
	"lasko/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan authoring service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type PlanExercisePayload struct {
	ExerciseID    string `json:"exerciseId" binding:"required"`
	TargetSets    string `json:"targetSets"`
	TargetReps    string `json:"targetReps"`
	RestSeconds   int    `json:"restSeconds" binding:"omitempty,min=0"`
	SupersetGroup string `json:"supersetGroup"`
}

type PlanDayPayload struct {
	DayOrder  int                   `json:"dayOrder" binding:"required,min=1"`
	Name      string                `json:"name"`
	Exercises []PlanExercisePayload `json:"exercises"`
}

type PlanPayload struct {
	Name                    string           `json:"name" binding:"required"`
	Description             string           `json:"description"`
	GoalType                string           `json:"goalType" binding:"required"`
	DifficultyLevel         string           `json:"difficultyLevel" binding:"required"`
	TrainingDaysPerWeek     int              `json:"trainingDaysPerWeek" binding:"required,min=2,max=6"`
	EquipmentRequired       string           `json:"equipmentRequired" binding:"required"`
	SessionDurationEstimate int              `json:"sessionDurationEstimate" binding:"omitempty,min=0"`
	Days                    []PlanDayPayload `json:"days"`
}

func (p PlanPayload) toDomain() (*domain.Plan, error) {
	plan := &domain.Plan{
		Name:                    p.Name,
		Description:             p.Description,
		GoalType:                domain.Goal(p.GoalType),
		DifficultyLevel:         domain.Level(p.DifficultyLevel),
		TrainingDaysPerWeek:     p.TrainingDaysPerWeek,
		EquipmentRequired:       domain.Equipment(p.EquipmentRequired),
		SessionDurationEstimate: p.SessionDurationEstimate,
		Days:                    make([]domain.PlanDay, 0, len(p.Days)),
	}
	for _, d := range p.Days {
		day := domain.PlanDay{
			DayOrder:  d.DayOrder,
			Name:      d.Name,
			Exercises: make([]domain.PlanExercise, 0, len(d.Exercises)),
		}
		for _, e := range d.Exercises {
			exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
			if err != nil {
				return nil, fmt.Errorf("invalid exercise ID %q", e.ExerciseID)
			}
			day.Exercises = append(day.Exercises, domain.PlanExercise{
				ExerciseID:    exerciseID,
				TargetSets:    e.TargetSets,
				TargetReps:    e.TargetReps,
				RestSeconds:   e.RestSeconds,
				SupersetGroup: e.SupersetGroup,
			})
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a catalog plan
// @Description Creates a plan with its embedded days and exercise slots. Admin only.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body PlanPayload true "Plan definition"
// @Success 201 {object} domain.Plan
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.planService.CreatePlan(c.Request.Context(), plan)
	if err != nil {
		if errors.Is(err, service.ErrPlanValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPlans godoc
// @Summary List the plan catalog
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Plan
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans.")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// UpdatePlan godoc
// @Summary Update a catalog plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body PlanPayload true "Plan definition"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{planId} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	var req PlanPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	plan.ID = planID

	updated, err := h.planService.UpdatePlan(c.Request.Context(), plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Plan not found.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update plan.")
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePlan godoc
// @Summary Delete a catalog plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

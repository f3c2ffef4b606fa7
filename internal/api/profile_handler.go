package api

import (
	"errors"
	"fmt"
	"net/http"

	"lasko/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// @Summary Get the current user's training profile
// @Description Returns the raw survey answers plus their normalized reading.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProfileView
// @Failure 404 {object} gin.H "Profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "User profile not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile godoc
// @Summary Update the current user's training profile
// @Description Replaces the stored survey answers with the wizard's payload.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfilePayload true "Survey answers"
// @Success 200 {object} service.ProfileView
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 404 {object} gin.H "Profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProfilePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	view, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "User profile not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

package api

import (
	"lasko/fitness-api/internal/domain" // Needed for RoleMiddleware
	"lasko/fitness-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	recommendationService service.RecommendationService,
	planService service.PlanService,
	exerciseService service.ExerciseService,
) {

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	recommendationHandler := NewRecommendationHandler(recommendationService)
	planHandler := NewPlanHandler(planService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Profile ---
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		// --- Recommendations ---
		recommendationGroup := protected.Group("/recommendations")
		{
			// POST /api/v1/recommendations - run the full pipeline
			recommendationGroup.POST("", recommendationHandler.Generate)
			// GET /api/v1/recommendations/alternatives - lightweight ranking
			recommendationGroup.GET("/alternatives", recommendationHandler.Alternatives)
		}

		// --- Plan catalog (read + member actions) ---
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:planId", recommendationHandler.PlanDetail)
			planGroup.GET("/:planId/explanation", recommendationHandler.ExplainPlan)
			planGroup.POST("/:planId/activate", recommendationHandler.ActivatePlan)

			// Authoring requires the admin role.
			planGroup.POST("", RoleMiddleware(domain.RoleAdmin), planHandler.CreatePlan)
			planGroup.PUT("/:planId", RoleMiddleware(domain.RoleAdmin), planHandler.UpdatePlan)
			planGroup.DELETE("/:planId", RoleMiddleware(domain.RoleAdmin), planHandler.DeletePlan)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId/media", exerciseHandler.GetMediaURL)

			exerciseGroup.POST("", RoleMiddleware(domain.RoleAdmin), exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:exerciseId", RoleMiddleware(domain.RoleAdmin), exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", RoleMiddleware(domain.RoleAdmin), exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:exerciseId/media", RoleMiddleware(domain.RoleAdmin), exerciseHandler.RequestMediaUpload)
		}
	}
}

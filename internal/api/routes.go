package api

import (
	"net/http"

	"gymbuddy/app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	rankService service.RankService,
	achievementService service.AchievementService,
	exerciseService service.ExerciseService,
	notificationService service.NotificationService,
	photoService service.PhotoService,
) {

	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService, photoService)
	rankHandler := NewRankHandler(rankService)
	achievementHandler := NewAchievementHandler(achievementService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	notificationHandler := NewNotificationHandler(notificationService)

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
		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.SubmitWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:workoutId", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:workoutId", workoutHandler.EditWorkout)
			workoutGroup.DELETE("/:workoutId", workoutHandler.DeleteWorkout)

			// Progress photos ride on the workout they document.
			workoutGroup.POST("/:workoutId/photo", workoutHandler.RequestPhotoUpload)
			workoutGroup.GET("/:workoutId/photo", workoutHandler.GetPhotoDownload)
		}

		// POST /api/v1/stats/recompute - full history replay, the recovery
		// path after any partial failure.
		protected.POST("/stats/recompute", workoutHandler.RecomputeStats)

		// --- Rank & Leaderboard Routes ---
		protected.GET("/ranks/me", rankHandler.GetMyRank)
		protected.GET("/leaderboards/friends/season", rankHandler.GetFriendsSeasonLeaderboard)

		// --- Achievement Routes ---
		achievementGroup := protected.Group("/achievements")
		{
			achievementGroup.GET("/catalog", achievementHandler.GetCatalog)
			achievementGroup.GET("/me", achievementHandler.GetMine)
		}

		// --- Exercise Catalog Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetCatalog)
			exerciseGroup.POST("/custom", exerciseHandler.CreateCustomExercise)
		}

		// --- Notification Routes ---
		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.List)
			notificationGroup.POST("/:notificationId/read", notificationHandler.MarkRead)
		}
	}
}

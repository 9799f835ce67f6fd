package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymbuddy/app/internal/domain"
	"gymbuddy/app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout and photo service dependencies.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	photoService   service.PhotoService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, photoService service.PhotoService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, photoService: photoService}
}

// --- Request/Response Structs ---

// TotalsResponse is the user's cumulative XP state after a mutation.
type TotalsResponse struct {
	LifetimeXP   int    `json:"lifetimeXp"`
	SeasonID     string `json:"seasonId"`
	SeasonXP     int    `json:"seasonXp"`
	WorkoutCount int    `json:"workoutCount"`
	StreakDays   int    `json:"streakDays"`
	PRTotal      int    `json:"prTotal"`
}

type WorkoutMutationResponse struct {
	Workout *domain.Workout `json:"workout"`
	XPDelta int             `json:"xpDelta"`
	Totals  TotalsResponse  `json:"totals"`
}

type WorkoutListResponse struct {
	Workouts []*domain.Workout `json:"workouts"`
	Totals   TotalsResponse    `json:"totals"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type PhotoURLResponse struct {
	URL string `json:"url"`
}

func mapTotals(t service.Totals) TotalsResponse {
	resp := TotalsResponse{
		LifetimeXP:   t.LifetimeXP,
		SeasonID:     t.SeasonID,
		SeasonXP:     t.SeasonXP,
		WorkoutCount: t.WorkoutCount,
	}
	if t.Stats != nil {
		resp.StreakDays = t.Stats.StreakDays
		resp.PRTotal = t.Stats.PRTotal
	}
	return resp
}

// mapWorkoutError translates service errors to HTTP status codes shared by
// the mutation endpoints.
func mapWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidNotes),
		errors.Is(err, service.ErrInvalidExercises),
		errors.Is(err, service.ErrUnsafeInput),
		errors.Is(err, service.ErrUnknownExercise),
		errors.Is(err, service.ErrUnknownBuddy):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func workoutIDFromPath(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// SubmitWorkout logs a new workout for the authenticated user.
func (h *WorkoutHandler) SubmitWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	var req service.WorkoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.workoutService.SubmitWorkout(c.Request.Context(), userID, req)
	if err != nil {
		mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, WorkoutMutationResponse{
		Workout: result.Workout,
		XPDelta: result.XPDelta,
		Totals:  mapTotals(result.Totals),
	})
}

// EditWorkout replaces a workout's content and re-scores it.
func (h *WorkoutHandler) EditWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}
	workoutID, ok := workoutIDFromPath(c)
	if !ok {
		return
	}

	var req service.WorkoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.workoutService.EditWorkout(c.Request.Context(), userID, workoutID, req)
	if err != nil {
		mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, WorkoutMutationResponse{
		Workout: result.Workout,
		XPDelta: result.XPDelta,
		Totals:  mapTotals(result.Totals),
	})
}

// DeleteWorkout removes a workout and reverses its XP contribution.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}
	workoutID, ok := workoutIDFromPath(c)
	if !ok {
		return
	}

	totals, err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totals": mapTotals(*totals)})
}

// GetWorkout returns one workout owned by the caller.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}
	workoutID, ok := workoutIDFromPath(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

// ListWorkouts returns the caller's workout history, newest first.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	workouts, totals, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		mapWorkoutError(c, err)
		return
	}
	if workouts == nil {
		workouts = []*domain.Workout{}
	}

	c.JSON(http.StatusOK, WorkoutListResponse{
		Workouts: workouts,
		Totals:   mapTotals(*totals),
	})
}

// RecomputeStats replays the caller's full history into the derived aggregate.
func (h *WorkoutHandler) RecomputeStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	stats, err := h.workoutService.RecomputeAggregates(c.Request.Context(), userID)
	if err != nil {
		mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RequestPhotoUpload issues a presigned PUT URL for a progress photo.
func (h *WorkoutHandler) RequestPhotoUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}
	workoutID, ok := workoutIDFromPath(c)
	if !ok {
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	url, err := h.photoService.RequestUploadURL(c.Request.Context(), userID, workoutID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, PhotoURLResponse{URL: url})
}

// GetPhotoDownload issues a presigned GET URL for the workout's photo.
func (h *WorkoutHandler) GetPhotoDownload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}
	workoutID, ok := workoutIDFromPath(c)
	if !ok {
		return
	}

	url, err := h.photoService.GetDownloadURL(c.Request.Context(), userID, workoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoPhoto):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not generate download URL")
		}
		return
	}

	c.JSON(http.StatusOK, PhotoURLResponse{URL: url})
}

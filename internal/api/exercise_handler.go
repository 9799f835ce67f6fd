package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymbuddy/app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request Structs ---

type CreateExerciseRequest struct {
	Key          string `json:"key" binding:"required"`
	Name         string `json:"name" binding:"required"`
	MuscleGroup  string `json:"muscleGroup"`
	Equipment    string `json:"equipment"`
	IsBodyweight bool   `json:"isBodyweight"`
}

// --- Handler Methods ---

// GetCatalog returns the caller's combined built-in + custom catalog.
func (h *ExerciseHandler) GetCatalog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	cat, err := h.exerciseService.GetCatalog(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"builtIn": cat.BuiltInEntries(),
		"custom":  cat.CustomEntries(),
	})
}

// CreateCustomExercise adds a user-defined catalog entry.
func (h *ExerciseHandler) CreateCustomExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateCustomExercise(c.Request.Context(), userID, req.Key, req.Name, req.MuscleGroup, req.Equipment, req.IsBodyweight)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidExercise), errors.Is(err, service.ErrUnsafeInput):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateExercise):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrCatalogFull):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

package api

import (
	"net/http"

	"gymbuddy/app/internal/service"

	"github.com/gin-gonic/gin"
)

// AchievementHandler holds the achievement service dependency.
type AchievementHandler struct {
	achievementService service.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementService service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// --- Handler Methods ---

// GetCatalog returns the full achievement catalog.
func (h *AchievementHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": h.achievementService.Catalog()})
}

// GetMine returns the catalog plus the caller's unlocked achievements.
func (h *AchievementHandler) GetMine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	catalog, unlocked, err := h.achievementService.GetForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	if unlocked == nil {
		unlocked = []service.UnlockedAchievement{}
	}

	c.JSON(http.StatusOK, gin.H{
		"achievements": catalog,
		"unlocked":     unlocked,
	})
}

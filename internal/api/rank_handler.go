package api

import (
	"errors"
	"net/http"

	"gymbuddy/app/internal/gamification"
	"gymbuddy/app/internal/service"

	"github.com/gin-gonic/gin"
)

// RankHandler holds the rank service dependency.
type RankHandler struct {
	rankService service.RankService
}

// NewRankHandler creates a new RankHandler.
func NewRankHandler(rankService service.RankService) *RankHandler {
	return &RankHandler{rankService: rankService}
}

// --- Response Structs ---

type RankResponse struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	Threshold     int     `json:"threshold"`
	NextThreshold int     `json:"nextThreshold,omitempty"`
	NextName      string  `json:"nextName,omitempty"`
	Progress      float64 `json:"progress"`
	LifetimeXP    int     `json:"lifetimeXp"`
	Stars         int     `json:"stars"`
}

type RankStatusResponse struct {
	Rank     RankResponse `json:"rank"`
	SeasonID string       `json:"seasonId"`
	SeasonXP int          `json:"seasonXp"`
}

type LeaderboardEntryResponse struct {
	UserID     string       `json:"userId"`
	Name       string       `json:"name"`
	SeasonXP   int          `json:"seasonXp"`
	LifetimeXP int          `json:"lifetimeXp"`
	Rank       RankResponse `json:"rank"`
}

type LeaderboardResponse struct {
	SeasonID string                     `json:"seasonId"`
	Entries  []LeaderboardEntryResponse `json:"entries"`
}

func mapRank(r gamification.RankInfo) RankResponse {
	return RankResponse{
		Key:           r.Key,
		Name:          r.Name,
		Threshold:     r.Threshold,
		NextThreshold: r.NextThreshold,
		NextName:      r.NextName,
		Progress:      r.Progress,
		LifetimeXP:    r.LifetimeXP,
		Stars:         r.Stars,
	}
}

// --- Handler Methods ---

// GetMyRank returns the caller's rank ladder position and season window.
func (h *RankHandler) GetMyRank(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	status, err := h.rankService.GetRank(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusOK, RankStatusResponse{
		Rank:     mapRank(status.Rank),
		SeasonID: status.SeasonID,
		SeasonXP: status.SeasonXP,
	})
}

// GetFriendsSeasonLeaderboard returns the caller plus friends ranked by
// season XP.
func (h *RankHandler) GetFriendsSeasonLeaderboard(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identifier in token")
		return
	}

	seasonID, entries, err := h.rankService.FriendsSeasonLeaderboard(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	resp := LeaderboardResponse{SeasonID: seasonID, Entries: make([]LeaderboardEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, LeaderboardEntryResponse{
			UserID:     e.UserID.Hex(),
			Name:       e.Name,
			SeasonXP:   e.SeasonXP,
			LifetimeXP: e.LifetimeXP,
			Rank:       mapRank(e.Rank),
		})
	}

	c.JSON(http.StatusOK, resp)
}

package controllers

import (
	"net/http"
	"strconv"

	"fanhub/services"

	"github.com/gin-gonic/gin"
)

// LeaderboardController exposes the fan ranking.
type LeaderboardController struct {
	users *services.UserService
}

func NewLeaderboardController(users *services.UserService) *LeaderboardController {
	return &LeaderboardController{users: users}
}

// FanEntry is one leaderboard row.
type FanEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

// Get returns the top fans sorted by level then experience.
func (ctl *LeaderboardController) Get(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	users, err := ctl.users.TopUsers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	entries := make([]FanEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, FanEntry{
			Rank:     i + 1,
			Username: user.Username,
			Level:    user.Level,
			XP:       user.XP,
		})
	}
	c.JSON(http.StatusOK, entries)
}

package handlers

import (
	"context"
	"goatedvips/api/dto"
	"goatedvips/api/filters"
	leaderboardservice "goatedvips/api/services/leaderboard"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatsProvider is the service surface the leaderboard handler needs.
type StatsProvider interface {
	GetStats(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
}

// LeaderboardHandler is the handler for the affiliate stats endpoints.
type LeaderboardHandler struct {
	leaderboardService StatsProvider
}

// NewLeaderboardHandler creates a new instance of the leaderboard handler.
func NewLeaderboardHandler(service *leaderboardservice.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: service,
	}
}

// GetAffiliateStats handles requests for the full ranked leaderboard.
func (h *LeaderboardHandler) GetAffiliateStats(c *gin.Context) {
	var qp filters.LeaderboardQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.leaderboardService.GetStats(c.Request.Context(), qp.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"goatedvips/api/dto"
	"goatedvips/fetcher/repositories"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/messages"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OverrideHandler is the handler for the admin override endpoints.
type OverrideHandler struct {
	overrideRepository repositories.OverrideRepository
}

// NewOverrideHandler creates a new instance of the override handler.
func NewOverrideHandler(repo repositories.OverrideRepository) *OverrideHandler {
	return &OverrideHandler{
		overrideRepository: repo,
	}
}

// CreateOverride handles requests to pin a user's wager figures.
func (h *OverrideHandler) CreateOverride(c *gin.Context) {
	var payload dto.CreateOverridePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	override := &models.WagerOverride{
		Username:          payload.Username,
		GoatedID:          payload.GoatedID,
		TodayOverride:     payload.Today,
		ThisWeekOverride:  payload.ThisWeek,
		ThisMonthOverride: payload.ThisMonth,
		AllTimeOverride:   payload.AllTime,
		ExpiresAt:         payload.ExpiresAt,
		CreatedBy:         payload.CreatedBy,
		Notes:             payload.Notes,
	}

	if err := h.overrideRepository.CreateOverride(c.Request.Context(), override); err != nil {
		if err.Error() == messages.OverrideAlreadyThere {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, override)
}

// GetActiveOverrides handles requests to list every active override.
func (h *OverrideHandler) GetActiveOverrides(c *gin.Context) {
	overrides, err := h.overrideRepository.GetActiveOverrides(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": overrides})
}

// DeactivateOverride handles requests to turn one override off.
func (h *OverrideHandler) DeactivateOverride(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid override id"})
		return
	}

	if err := h.overrideRepository.DeactivateOverrides(c.Request.Context(), []uint{uint(id)}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

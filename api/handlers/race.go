package handlers

import (
	"context"
	"errors"
	"goatedvips/api/dto"
	"goatedvips/api/filters"
	raceservice "goatedvips/api/services/race"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RaceProvider is the service surface the race handler needs.
type RaceProvider interface {
	GetCurrentRace(ctx context.Context) (*dto.RaceResponse, error)
	GetPreviousRace(ctx context.Context) (*dto.RaceResponse, error)
	GetPosition(ctx context.Context, uid string) (*dto.RacePositionResponse, error)
}

// RaceHandler is the handler for the wager race endpoints.
type RaceHandler struct {
	raceService RaceProvider
}

// NewRaceHandler creates a new instance of the race handler.
func NewRaceHandler(service *raceservice.RaceService) *RaceHandler {
	return &RaceHandler{
		raceService: service,
	}
}

// GetCurrentRace handles requests for the live race standings.
func (h *RaceHandler) GetCurrentRace(c *gin.Context) {
	result, err := h.raceService.GetCurrentRace(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPreviousRace handles requests for the last completed race.
func (h *RaceHandler) GetPreviousRace(c *gin.Context) {
	result, err := h.raceService.GetPreviousRace(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRacePosition handles requests for one user's live race standing.
func (h *RaceHandler) GetRacePosition(c *gin.Context) {
	var qp filters.RacePositionParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.raceService.GetPosition(c.Request.Context(), qp.UID)
	if err != nil {
		if errors.Is(err, raceservice.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

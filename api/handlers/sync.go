package handlers

import (
	"context"
	"errors"
	syncservice "goatedvips/fetcher/services/sync"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SyncRunner is the sync surface the trigger endpoint needs.
type SyncRunner interface {
	Run(ctx context.Context, forceFresh bool) (*syncservice.CycleResult, error)
}

// CacheInvalidator drops the served leaderboard caches after a cycle wrote
// fresh data, so clients don't keep reading the pre-sync payload.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SyncHandler exposes the manual sync trigger.
type SyncHandler struct {
	syncService SyncRunner
	leaderboard CacheInvalidator
}

// NewSyncHandler creates a new instance of the sync handler.
func NewSyncHandler(service SyncRunner, leaderboard CacheInvalidator) *SyncHandler {
	return &SyncHandler{
		syncService: service,
		leaderboard: leaderboard,
	}
}

// TriggerSync kicks off one sync cycle in the background and returns
// immediately. A cycle already in flight makes the trigger a no-op.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	go func() {
		// Detached from the request so a client disconnect can't abort it.
		ctx := context.Background()

		result, err := h.syncService.Run(ctx, true)
		if err != nil {
			if !errors.Is(err, syncservice.ErrSyncInProgress) {
				log.Printf("Triggered sync failed: %v", err)
			}
			return
		}

		if result.Upserts.Writes() == 0 {
			return
		}
		if err := h.leaderboard.Invalidate(ctx); err != nil {
			log.Printf("Couldn't invalidate the leaderboard caches: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

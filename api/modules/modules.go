package modules

import (
	"goatedvips/api/handlers"
	"goatedvips/pkg/config"
	"goatedvips/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module containing the necessary handlers.
type Module struct {
	Router             *gin.Engine
	LeaderboardHandler *handlers.LeaderboardHandler
	OverrideHandler    *handlers.OverrideHandler
	RaceHandler        *handlers.RaceHandler
	SyncHandler        *handlers.SyncHandler
}

// ModuleDependencies are the shared resources each handler builds on.
type ModuleDependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.RedisClient
}

// NewModule creates a module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.Default()

	// The sync trigger drops the leaderboard caches after writing, so both
	// handlers share the same service instance.
	leaderboardService := initializeLeaderboardService(deps)

	return &Module{
		Router:             router,
		LeaderboardHandler: handlers.NewLeaderboardHandler(leaderboardService),
		OverrideHandler:    initializeOverrideHandler(deps),
		RaceHandler:        initializeRaceHandler(deps),
		SyncHandler:        initializeSyncHandler(deps, leaderboardService),
	}
}

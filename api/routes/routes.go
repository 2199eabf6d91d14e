package routes

import (
	"goatedvips/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.LeaderboardHandler:
			r.registerLeaderboardHandler(handler)
		case *handlers.OverrideHandler:
			r.registerOverrideHandler(handler)
		case *handlers.RaceHandler:
			r.registerRaceHandler(handler)
		case *handlers.SyncHandler:
			r.registerSyncHandler(handler)
		}
	}
}

// Register the leaderboard handler.
func (r *Router) registerLeaderboardHandler(handler *handlers.LeaderboardHandler) {
	affiliate := r.api.Group("/affiliate")
	{
		affiliate.GET("/stats", handler.GetAffiliateStats)
	}
}

// Register the override handler.
func (r *Router) registerOverrideHandler(handler *handlers.OverrideHandler) {
	overrides := r.api.Group("/admin/overrides")
	{
		overrides.POST("", handler.CreateOverride)
		overrides.GET("", handler.GetActiveOverrides)
		overrides.DELETE("/:id", handler.DeactivateOverride)
	}
}

// Register the race handler.
func (r *Router) registerRaceHandler(handler *handlers.RaceHandler) {
	races := r.api.Group("/wager-races")
	{
		races.GET("/current", handler.GetCurrentRace)
		races.GET("/previous", handler.GetPreviousRace)
	}

	r.api.GET("/wager-race/position", handler.GetRacePosition)
}

// Register the sync handler.
func (r *Router) registerSyncHandler(handler *handlers.SyncHandler) {
	sync := r.api.Group("/sync")
	{
		sync.POST("/trigger", handler.TriggerSync)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}

package routes

import (
	"testing"

	"goatedvips/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return NewRouter(engine)
}

func TestNewRouter(t *testing.T) {
	router := setupTestRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.Engine)
	assert.NotNil(t, router.api)
}

func TestSetupRoutes(t *testing.T) {
	router := setupTestRouter()

	leaderboardHandler := &handlers.LeaderboardHandler{}
	overrideHandler := &handlers.OverrideHandler{}
	raceHandler := &handlers.RaceHandler{}
	syncHandler := &handlers.SyncHandler{}

	router.SetupRoutes(leaderboardHandler, overrideHandler, raceHandler, syncHandler)

	routes := router.Engine.Routes()
	assert.Len(t, routes, 8)

	paths := make(map[string]bool, len(routes))
	for _, route := range routes {
		paths[route.Method+" "+route.Path] = true
	}

	assert.True(t, paths["GET /api/affiliate/stats"])
	assert.True(t, paths["GET /api/wager-races/current"])
	assert.True(t, paths["GET /api/wager-races/previous"])
	assert.True(t, paths["GET /api/wager-race/position"])
	assert.True(t, paths["POST /api/sync/trigger"])
	assert.True(t, paths["POST /api/admin/overrides"])
	assert.True(t, paths["GET /api/admin/overrides"])
	assert.True(t, paths["DELETE /api/admin/overrides/:id"])
}

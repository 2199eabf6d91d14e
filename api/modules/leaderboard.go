package modules

import (
	"goatedvips/api/cache"
	"goatedvips/api/repositories"
	leaderboardservice "goatedvips/api/services/leaderboard"
)

func initializeLeaderboardService(deps *ModuleDependencies) *leaderboardservice.LeaderboardService {
	serviceDeps := &leaderboardservice.LeaderboardServiceDeps{
		MemCache: cache.NewMemCache(),
		Cache:    cache.NewLeaderboardCache(deps.Redis),
		Repo:     repositories.NewLeaderboardRepository(deps.DB),
	}

	return leaderboardservice.NewLeaderboardService(serviceDeps)
}

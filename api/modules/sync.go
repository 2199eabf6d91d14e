package modules

import (
	"goatedvips/api/handlers"
	leaderboardservice "goatedvips/api/services/leaderboard"
	"goatedvips/fetcher/adjust"
	"goatedvips/fetcher/goated"
	fetcherrepos "goatedvips/fetcher/repositories"
	profileservice "goatedvips/fetcher/services/profile"
	syncservice "goatedvips/fetcher/services/sync"
	"goatedvips/pkg/events"
)

func initializeSyncHandler(deps *ModuleDependencies, leaderboardService *leaderboardservice.LeaderboardService) *handlers.SyncHandler {
	client := goated.NewClient(deps.Config.Goated)
	overrideRepo := fetcherrepos.NewOverrideRepository(deps.DB)
	adjuster := adjust.NewAdjuster(overrideRepo, deps.Config.Boost)

	profileService := profileservice.NewProfileService(
		fetcherrepos.NewUserRepository(deps.DB),
	)

	syncService := syncservice.NewSyncService(
		client,
		adjuster,
		profileService,
		events.NewPublisher(deps.Redis),
		fetcherrepos.NewLeaderboardRepository(deps.DB),
		fetcherrepos.NewSyncLogRepository(deps.DB),
	)

	return handlers.NewSyncHandler(syncService, leaderboardService)
}

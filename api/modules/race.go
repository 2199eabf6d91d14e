package modules

import (
	"goatedvips/api/handlers"
	"goatedvips/api/repositories"
	raceservice "goatedvips/api/services/race"
)

func initializeRaceHandler(deps *ModuleDependencies) *handlers.RaceHandler {
	serviceDeps := &raceservice.RaceServiceDeps{
		RaceRepo:        repositories.NewRaceRepository(deps.DB),
		LeaderboardRepo: repositories.NewLeaderboardRepository(deps.DB),
		RaceConfig:      deps.Config.Race,
	}

	raceService := raceservice.NewRaceService(serviceDeps)

	return handlers.NewRaceHandler(raceService)
}

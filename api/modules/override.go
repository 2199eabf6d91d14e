package modules

import (
	"goatedvips/api/handlers"
	fetcherrepos "goatedvips/fetcher/repositories"
)

func initializeOverrideHandler(deps *ModuleDependencies) *handlers.OverrideHandler {
	return handlers.NewOverrideHandler(
		fetcherrepos.NewOverrideRepository(deps.DB),
	)
}

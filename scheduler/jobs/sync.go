package jobs

import (
	"context"
	"errors"
	"fmt"
	"goatedvips/fetcher/adjust"
	"goatedvips/fetcher/goated"
	"goatedvips/fetcher/repositories"
	profileservice "goatedvips/fetcher/services/profile"
	raceservice "goatedvips/fetcher/services/race"
	syncservice "goatedvips/fetcher/services/sync"
	"goatedvips/pkg/config"
	"goatedvips/pkg/database"
	"goatedvips/pkg/events"
	"goatedvips/pkg/logger"
	"goatedvips/pkg/redis"
	"log"
)

// RunLeaderboardSync executes one scheduled sync cycle and makes sure a live
// race exists for the current window.
func RunLeaderboardSync(cfg *config.Config) error {
	log.Println("Starting leaderboard sync")

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("couldn't get redis connection: %w", err)
	}

	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		redisClient.Close()
	}()

	jobLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		return fmt.Errorf("couldn't create the logger: %w", err)
	}

	overrideRepo := repositories.NewOverrideRepository(db)
	syncService := syncservice.NewSyncService(
		goated.NewClient(cfg.Goated),
		adjust.NewAdjuster(overrideRepo, cfg.Boost),
		profileservice.NewProfileService(repositories.NewUserRepository(db)),
		events.NewPublisher(redisClient),
		repositories.NewLeaderboardRepository(db),
		repositories.NewSyncLogRepository(db),
	)

	ctx := context.Background()

	result, err := syncService.Run(ctx, false)
	if err != nil {
		if errors.Is(err, syncservice.ErrSyncInProgress) {
			log.Println("Sync already running, skipping this tick")
			return nil
		}
		jobLogger.Errorf("Sync cycle failed: %v", err)
		return err
	}

	jobLogger.Infof(
		"Sync cycle done: %d users, %d created, %d updated, %d skipped",
		result.Total, result.Upserts.Created, result.Upserts.Updated, result.Upserts.Skipped,
	)
	// Separates the cycles inside the shared log file.
	jobLogger.EmptyLine()

	// A live race must always exist for the current window.
	raceService := raceservice.NewRaceService(repositories.NewRaceRepository(db), cfg.Race)
	if _, err := raceService.EnsureLiveRace(ctx); err != nil {
		jobLogger.Errorf("Couldn't ensure the live race: %v", err)
		return err
	}

	return nil
}

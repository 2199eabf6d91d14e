package jobs

import (
	"context"
	"fmt"
	"goatedvips/fetcher/repositories"
	raceservice "goatedvips/fetcher/services/race"
	"goatedvips/pkg/config"
	"goatedvips/pkg/database"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/races"
	"goatedvips/pkg/wager"
	"log"
	"time"
)

// RunRaceTransition completes the live monthly race on the last day of the
// month. On any other day it is a no-op, so the job can run daily.
func RunRaceTransition(cfg *config.Config) error {
	now := time.Now().UTC()
	if !races.IsLastDayOfMonth(now) {
		return nil
	}

	log.Println("Starting race transition")

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}

	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx := context.Background()

	// The final standings come from the persisted leaderboard, so the last
	// completed sync decides the winners.
	leaderboardRepo := repositories.NewLeaderboardRepository(db)
	users, err := leaderboardRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("couldn't load the final standings: %w", err)
	}

	records := make([]wager.Record, len(users))
	for i := range users {
		records[i] = users[i].ToRecord()
	}

	raceService := raceservice.NewRaceService(repositories.NewRaceRepository(db), cfg.Race)
	result, err := raceService.CompleteCurrentRace(ctx, records)
	if err != nil {
		return err
	}
	if result == nil {
		log.Println("No live race to complete")
		return nil
	}

	syncLogRepo := repositories.NewSyncLogRepository(db)
	message := fmt.Sprintf(
		"race %d completed with %d snapshots (%d failed), next race %d",
		result.CompletedRaceID, result.Snapshots, result.Failed, result.NextRaceID,
	)
	if err := syncLogRepo.Record(ctx, models.SyncLogRace, message, time.Since(now)); err != nil {
		log.Printf("Couldn't record the race transition log: %v", err)
	}

	log.Println(message)
	return nil
}

package main

import (
	"goatedvips/pkg/config"
	"goatedvips/pkg/database"
	"goatedvips/scheduler/jobs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}

	if err := database.RunMigrations(cfg, rawDb); err != nil {
		log.Fatal(err)
	}

	log.Println("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Register the leaderboard sync job, running on the configured interval.
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Sync.Interval),
		gocron.NewTask(
			jobs.RunLeaderboardSync,
			cfg,
		),
		gocron.WithName("leaderboard-sync"),
		gocron.WithTags("sync"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create sync job: %v", err)
	}

	// Register the race transition job - daily at 23:59 UTC, only acting on
	// the last day of the month.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(23, 59, 0),
			),
		),
		gocron.NewTask(
			jobs.RunRaceTransition,
			cfg,
		),
		gocron.WithName("race-transition"),
		gocron.WithTags("race"),
	)
	if err != nil {
		log.Fatalf("Failed to create race transition job: %v", err)
	}

	// Register the log upload job - once per day just after midnight.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(
			jobs.UploadLogs,
			cfg,
		),
		gocron.WithName("log-upload"),
		gocron.WithTags("logs"),
	)
	if err != nil {
		log.Fatalf("Failed to create log upload job: %v", err)
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		err := s.Shutdown()
		if err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Println("Shutting down scheduler...")
}

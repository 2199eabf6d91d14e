package main

import (
	"goatedvips/api/modules"
	"goatedvips/api/routes"
	"goatedvips/pkg/config"
	"goatedvips/pkg/database"
	"goatedvips/pkg/redis"
	"log"
	"os"

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
		log.Fatalf("Error loading the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error getting the underlying connection: %v", err)
	}

	if err := database.RunMigrations(cfg, sqlDB); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.LeaderboardHandler,
		module.OverrideHandler,
		module.RaceHandler,
		module.SyncHandler,
	)

	// Start the server.
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Error running the server: %v", err)
	}
}

package main

import (
	"github.com/joho/godotenv"

	"ti-tracker/config"
	"ti-tracker/database"
	"ti-tracker/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		logger.Fatalf("DATABASE_URL environment variable is not set")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	logger.Println("✅ All migrations completed successfully")
}

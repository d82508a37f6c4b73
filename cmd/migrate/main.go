package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-realtime/internal/infrastructure/database"
	"github.com/johnquangdev/interview-realtime/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back every applied migration")
	dir := flag.String("dir", database.MigrationsDir, "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	if _, err := database.Migrate(db, *dir, direction, logger); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
}

package main

import (
	"flag"
	"log"

	"quizmoa/internal/config"
	"quizmoa/internal/database"
	"quizmoa/internal/logger"
)

func main() {
	var (
		source = flag.String("source", "file://migrations", "migration source URL")
		down   = flag.Bool("down", false, "roll back the most recent migration")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	dsn := cfg.GetDSN()
	if *down {
		if err := database.RollbackMigration(*source, dsn); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		return
	}

	if err := database.RunMigrations(*source, dsn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

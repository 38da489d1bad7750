package main

import (
	"context"
	"os"

	"equiptrack/cmd/migration/initialize"
	"equiptrack/cmd/migration/seed"
	"equiptrack/config"
	"equiptrack/internal/database"
	"equiptrack/internal/logger"
	"equiptrack/internal/models"
)

func main() {
	log := logger.New("migration")

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(
		"migrations",
		&models.Company{},
		&models.User{},
		&models.Engineer{},
		&models.ServiceRecord{},
	); err != nil {
		log.Er("failed to migrate schema", err)
		os.Exit(1)
	}

	if err := db.EnsureSequence(context.Background(), "certificate_numbers", 10000); err != nil {
		log.Er("failed to ensure certificate sequence", err)
		os.Exit(1)
	}

	if err := initialize.InitializeTables(db.SQL, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if cfg.Environment == "development" {
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			log.Er("failed to seed development data", err)
			os.Exit(1)
		}
	}

	log.Info("Migration complete")
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/teenxsky/money-flow/internal/database"
	"github.com/teenxsky/money-flow/internal/logger"
	"github.com/teenxsky/money-flow/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	noClear := flag.Bool("no-clear", false, "keep existing reference rows and only add missing ones")
	flag.Parse()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seedService := services.NewSeedService(dbManager.DB())
	report, err := seedService.Load(!*noClear)
	if err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	log := logger.Get()
	log.Infof("Created %d transaction types", report.TransactionTypes)
	log.Infof("Created %d categories", report.Categories)
	log.Infof("Created %d subcategories", report.Subcategories)
	log.Infof("Created %d statuses", report.Statuses)
	log.Info("Reference data seeded successfully")
	return nil
}

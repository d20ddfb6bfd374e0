package main

import (
	"go.uber.org/zap"

	"tracker/internal/config"
	"tracker/internal/database"
	"tracker/internal/repository"
	"tracker/internal/services"
)

// Scheduled entry point for the missed-task sweep, meant to run from cron.
// Zero arguments; idempotent; safe to invoke concurrently with live traffic.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	sweeper := services.NewSweepService(repository.NewTaskRepository(database.GetDB()))
	missed, revived, err := sweeper.Run()
	if err != nil {
		logger.Fatal("sweep failed", zap.Error(err))
	}

	logger.Info("sweep finished",
		zap.Int64("marked_missed", missed),
		zap.Int64("reverted_active", revived),
	)
}

// File: cmd/server/providers.go
package main

import (
	"log"

	"toski_backend/internal/config"
	"toski_backend/internal/platform/database"
	"toski_backend/internal/platform/logger"
	"toski_backend/internal/profile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	appLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		// Sync on a console logger writing to stderr can fail harmlessly on some platforms.
		if err := appLogger.Sync(); err != nil {
			log.Printf("WARN: Failed to sync logger during cleanup: %v", err)
		}
	}
	return appLogger, cleanup, nil
}

func provideDatabase(cfg *config.Config, appLogger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(cfg, db, appLogger, profile.Models()...); err != nil {
		database.Close(db, appLogger)
		return nil, nil, err
	}
	cleanup := func() {
		appLogger.Info("Executing cleanup tasks...")
		database.Close(db, appLogger)
	}
	return db, cleanup, nil
}

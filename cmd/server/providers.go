// File: cmd/server/providers.go
package main

import (
	"log"

	"converse_backend/internal/platform/database"
	"converse_backend/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideCollector(registry *prometheus.Registry) *metrics.Collector {
	return metrics.NewCollector(registry)
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
}

package persistence

import (
	"fmt"

	"github.com/neogan74/kvd/internal/logger"
)

// NewEngine creates a persistence engine based on configuration
func NewEngine(cfg Config, log logger.Logger) (Engine, error) {
	switch cfg.Type {
	case "", "text":
		log.Info("Using text snapshot persistence",
			logger.String("store_file", cfg.StoreFile))
		return NewTextEngine(cfg.StoreFile, log), nil
	case "badger":
		log.Info("Using BadgerDB persistence",
			logger.String("data_dir", cfg.DataDir),
			logger.String("sync_writes", fmt.Sprintf("%t", cfg.SyncWrites)))
		return NewBadgerEngine(cfg.DataDir, cfg.SyncWrites, log)
	case "memory":
		log.Info("Using in-memory persistence")
		return NewMemoryEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s", cfg.Type)
	}
}

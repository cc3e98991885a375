package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/config"
)

// Open selects the store backend from the database URL scheme and driver.
// memory:// returns a seeded in-memory store. sqlite:// always uses gorm.
// postgres:// uses pgx unless the driver is gorm.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	switch cfg.Scheme() {
	case "memory":
		log.Info("using in-memory store")
		return NewInMemoryStore(), nil

	case "sqlite":
		return openGormStore(cfg, log)

	case "postgres", "postgresql":
		if cfg.Driver == config.DriverGorm {
			return openGormStore(cfg, log)
		}
		store, err := NewPostgresStore(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("connected to database", "driver", config.DriverPgx)
		return store, nil
	}

	return nil, fmt.Errorf("unsupported database URL scheme: %q", cfg.Scheme())
}

func openGormStore(cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	db, err := OpenGorm(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("connected to database", "driver", config.DriverGorm)
	return NewGormStore(db), nil
}

package db

import (
	"context"
	"fmt"

	"eventboard/internal/config"
	"eventboard/internal/repository"
)

// OpenStore opens the backend selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoStore(client, cfg.MongoDatabase), nil
	case config.DriverMySQL:
		gormDB, err := NewMySQL(cfg.MySQLDSN, cfg.StoreTimeout)
		if err != nil {
			return nil, err
		}
		return repository.NewGormStore(gormDB), nil
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

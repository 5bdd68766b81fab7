package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"gorm.io/gorm"
)

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Users  UserRepository
	Events EventRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases backend connections.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMongoStore wires the document-store repositories of database dbName.
func NewMongoStore(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		Users:  NewMongoUserRepository(db),
		Events: NewMongoEventRepository(db),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}
}

// NewGormStore wires the relational repositories.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:  NewUserRepository(db),
		Events: NewEventRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// NewMemoryStore returns a process-local store. Data is lost on exit.
func NewMemoryStore() *Store {
	db := newMemoryDB()
	return &Store{
		Users:  &memoryUserRepository{db: db},
		Events: &memoryEventRepository{db: db},
	}
}

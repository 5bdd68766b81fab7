package repository

import (
	"context"

	"gorm.io/gorm"

	"eventboard/internal/model"
)

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	// List returns all events, newest first.
	List(ctx context.Context) ([]model.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event record.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return translateGormError(r.db.WithContext(ctx).Create(event).Error)
}

// FindByID finds an event by ID.
func (r *eventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &event, nil
}

// List lists all events sorted by date descending.
func (r *eventRepository) List(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := r.db.WithContext(ctx).Order("date desc").Find(&events).Error; err != nil {
		return nil, translateGormError(err)
	}
	return events, nil
}

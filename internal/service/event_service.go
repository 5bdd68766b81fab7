package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventboard/internal/auth"
	"eventboard/internal/cache"
	apperrors "eventboard/internal/errors"
	"eventboard/internal/model"
	"eventboard/internal/repository"
)

const eventCacheTTL = 5 * time.Minute

// CreateEventInput is the client supplied part of a new event.
type CreateEventInput struct {
	Text string
	Name string
}

// EventService handles event operations.
type EventService interface {
	List(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, owner auth.Identity, in CreateEventInput) (*model.Event, error)
}

type eventService struct {
	repo  repository.EventRepository
	cache *cache.Client
	now   func() time.Time
}

// NewEventService creates a new event service. cache may be nil.
func NewEventService(repo repository.EventRepository, cache *cache.Client) EventService {
	return &eventService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

func (s *eventService) cacheKey(id string) string {
	return fmt.Sprintf("event:%s", id)
}

// List returns all events, newest first.
func (s *eventService) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Get retrieves an event by ID with caching.
func (s *eventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w: %w", apperrors.ErrStorageUnavailable, err)
	}

	if payload, err := json.Marshal(event); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, eventCacheTTL)
	}
	return event, nil
}

// Create stores an event owned by the authenticated identity.
func (s *eventService) Create(ctx context.Context, owner auth.Identity, in CreateEventInput) (*model.Event, error) {
	if owner.UserID == "" {
		return nil, apperrors.ErrNoToken
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = owner.Name
	}
	event := &model.Event{
		UserID: owner.UserID,
		Text:   strings.TrimSpace(in.Text),
		Name:   name,
		Date:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return event, nil
}

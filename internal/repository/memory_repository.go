package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"eventboard/internal/model"
)

// memoryDB holds both collections behind one lock so the unique email
// constraint is checked and applied atomically.
type memoryDB struct {
	mu      sync.RWMutex
	users   map[string]model.User
	byEmail map[string]string
	events  map[string]model.Event
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
		events:  make(map[string]model.Event),
	}
}

type memoryUserRepository struct {
	db *memoryDB
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, taken := r.db.byEmail[user.Email]; taken {
		return ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.db.users[user.ID] = *user
	r.db.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	user, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	id, ok := r.db.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.db.users[id]
	return &user, nil
}

type memoryEventRepository struct {
	db *memoryDB
}

func (r *memoryEventRepository) Create(ctx context.Context, event *model.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if _, exists := r.db.events[event.ID]; exists {
		return ErrDuplicate
	}
	r.db.events[event.ID] = *event
	return nil
}

func (r *memoryEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	event, ok := r.db.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (r *memoryEventRepository) List(ctx context.Context) ([]model.Event, error) {
	r.db.mu.RLock()
	events := make([]model.Event, 0, len(r.db.events))
	for _, e := range r.db.events {
		events = append(events, e)
	}
	r.db.mu.RUnlock()
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

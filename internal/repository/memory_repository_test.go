package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/model"
)

func TestMemoryUserRepository_UniqueEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &model.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "h1"}
	require.NoError(t, store.Users.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	err := store.Users.Create(ctx, &model.User{Name: "Ann 2", Email: "ann@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := store.Users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, "h1", found.PasswordHash)
}

func TestMemoryUserRepository_ConcurrentDuplicates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var created int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Users.Create(ctx, &model.User{Email: "race@example.com"}); err == nil {
				atomic.AddInt32(&created, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created)
}

func TestMemoryUserRepository_NotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Users.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEventRepository_ListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, e := range []model.Event{
		{Text: "middle", Date: base.Add(time.Hour)},
		{Text: "oldest", Date: base},
		{Text: "newest", Date: base.Add(2 * time.Hour)},
	} {
		e := e
		require.NoError(t, store.Events.Create(ctx, &e))
	}

	events, err := store.Events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "newest", events[0].Text)
	assert.Equal(t, "middle", events[1].Text)
	assert.Equal(t, "oldest", events[2].Text)
}

func TestMemoryEventRepository_FindByID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	event := &model.Event{Text: "hello there", UserID: "u1", Date: time.Now()}
	require.NoError(t, store.Events.Create(ctx, event))

	found, err := store.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello there", found.Text)

	_, err = store.Events.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close(context.Background()))
}

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/config"
)

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(context.Background(), &config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	require.NotNil(t, store.Users)
	require.NotNil(t, store.Events)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}

func TestNewMySQL_RejectsBadDSN(t *testing.T) {
	_, err := NewMySQL("not a dsn", 0)
	assert.ErrorContains(t, err, "parse mysql dsn")
}

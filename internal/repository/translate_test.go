package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

func TestTranslateGormError(t *testing.T) {
	boom := errors.New("connection refused")

	assert.NoError(t, translateGormError(nil))
	assert.ErrorIs(t, translateGormError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateGormError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrDuplicate)
	assert.Equal(t, boom, translateGormError(boom))
}

func TestTranslateMongoError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	boom := errors.New("server selection timeout")

	assert.NoError(t, translateMongoError(nil))
	assert.ErrorIs(t, translateMongoError(mongo.ErrNoDocuments), ErrNotFound)
	assert.ErrorIs(t, translateMongoError(dup), ErrDuplicate)
	assert.Equal(t, boom, translateMongoError(boom))
}

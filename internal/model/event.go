package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a short note posted by an authenticated user.
type Event struct {
	ID     string    `json:"id" bson:"_id" gorm:"type:char(36);primaryKey"`
	UserID string    `json:"user" bson:"user" gorm:"column:user_id;type:char(36);not null;index"`
	Text   string    `json:"text" bson:"text" gorm:"type:text;not null"`
	Name   string    `json:"name,omitempty" bson:"name,omitempty" gorm:"size:255"`
	Date   time.Time `json:"date" bson:"date" gorm:"column:date;not null;index"`
}

// TableName keeps the relational table aligned with the document collection.
func (Event) TableName() string { return "events" }

// BeforeCreate sets UUID before creating the record.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

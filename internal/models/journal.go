package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is a free-text reflection entry. Entries feed the
// journal insights artifact during the Reflection phase.
type JournalEntry struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Content   string         `json:"content" gorm:"not null"`
	Mood      *string        `json:"mood"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

type CreateJournalEntryRequest struct {
	Content string  `json:"content" validate:"required"`
	Mood    *string `json:"mood"`
}

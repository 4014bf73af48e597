package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project difficulty levels.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// ProjectOption is one recommended portfolio project. Options are
// generated in batches; a selected option is pinned and survives
// regeneration of the rest of the batch.
type ProjectOption struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index:idx_user_slug,unique"`
	Slug        string         `json:"slug" gorm:"size:128;not null;index:idx_user_slug,unique"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty" gorm:"size:32;default:'Beginner'"`
	Duration    string         `json:"duration"`
	Skills      datatypes.JSON `json:"skills" gorm:"type:json"`
	Reasoning   string         `json:"reasoning"`
	IsSelected  bool           `json:"isSelected" gorm:"default:false"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (p *ProjectOption) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

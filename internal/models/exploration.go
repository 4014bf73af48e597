package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExplorationState is the per-user source of truth for phase-2
// progress. Older clients kept these fields in local storage; the
// migrate endpoint imports that snapshot once, and only when no server
// row exists yet.
type ExplorationState struct {
	ID                    uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID      `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	SelectedProjectID     *string        `json:"selectedProjectId" gorm:"size:128"`
	LearningPlanCreated   bool           `json:"learningPlanCreated" gorm:"default:false"`
	PublicBuildingStarted bool           `json:"publicBuildingStarted" gorm:"default:false"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `json:"-" gorm:"index"`
}

func (e *ExplorationState) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// UpdateExplorationRequest applies a partial update: absent fields keep
// their stored value. Sending selectedProjectId as an empty string
// clears the selection back to null.
type UpdateExplorationRequest struct {
	SelectedProjectID     *string `json:"selectedProjectId"`
	LearningPlanCreated   *bool   `json:"learningPlanCreated"`
	PublicBuildingStarted *bool   `json:"publicBuildingStarted"`
}

// MigrateExplorationRequest carries the legacy client-local snapshot.
type MigrateExplorationRequest struct {
	SelectedProjectID     *string `json:"selectedProjectId"`
	PublicBuildingStarted bool    `json:"publicBuildingStarted"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskCompletion is the user-local "done" overlay for recommended
// tasks. It never feeds back into task generation; completing a task
// does not remove it from the recommended list.
type TaskCompletion struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index:idx_user_task,unique"`
	TaskID    string    `json:"taskId" gorm:"size:64;not null;index:idx_user_task,unique"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *TaskCompletion) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

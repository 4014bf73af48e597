package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"gorm.io/gorm"
)

// IkigaiSaver debounces ikigai wizard writes, keyed by user id.
var IkigaiSaver *Autosaver

type ikigaiSnapshot struct {
	Answers models.IkigaiAnswers `json:"answers"`
	Step    int                  `json:"step"`
}

// InitAutosave wires the debounced writer to the progress store.
func InitAutosave(db *gorm.DB, delay time.Duration) {
	IkigaiSaver = NewAutosaver(delay, func(key string, payload []byte) error {
		userID, err := uuid.Parse(key)
		if err != nil {
			return err
		}
		var snap ikigaiSnapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return err
		}
		return SaveIkigai(db, userID, snap.Answers, snap.Step, false)
	})
}

// QueueIkigaiSave schedules a debounced save of the user's in-progress
// answers. Fully empty documents are not persisted.
func QueueIkigaiSave(userID uuid.UUID, answers models.IkigaiAnswers, step int) {
	answers.Normalize()
	if answers.IsEmpty() {
		return
	}
	// canonical: struct field order is fixed, so identical state always
	// produces identical bytes for the change check
	payload, _ := json.Marshal(ikigaiSnapshot{Answers: answers, Step: step})
	IkigaiSaver.Queue(userID.String(), payload)
}

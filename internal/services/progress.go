package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoadIkigai returns the user's wizard progress. An absent or
// unreadable row falls back to a well-formed empty default (four empty
// buckets, step 0, not completed); load failure is non-fatal.
func LoadIkigai(db *gorm.DB, userID uuid.UUID) *models.IkigaiProgress {
	var progress models.IkigaiProgress
	err := db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("ikigai load failed, using defaults")
		}
		return defaultIkigai(userID)
	}

	// Re-encode through DecodedAnswers so all four buckets are present
	// even if an older row stored a partial document.
	progress.Answers = datatypes.JSON(progress.DecodedAnswers().Canonical())
	return &progress
}

func defaultIkigai(userID uuid.UUID) *models.IkigaiProgress {
	var answers models.IkigaiAnswers
	answers.Normalize()
	return &models.IkigaiProgress{
		UserID:  userID,
		Answers: datatypes.JSON(answers.Canonical()),
	}
}

// SaveIkigai persists the wizard document with update-or-insert
// semantics: saving identical content twice leaves exactly one row.
// IsCompleted never reverts to false once set.
func SaveIkigai(db *gorm.DB, userID uuid.UUID, answers models.IkigaiAnswers, step int, completed bool) error {
	answers.Normalize()
	if step < 0 {
		step = 0
	}

	var existing models.IkigaiProgress
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		progress := models.IkigaiProgress{
			UserID:      userID,
			Answers:     datatypes.JSON(answers.Canonical()),
			CurrentStep: step,
			IsCompleted: completed,
		}
		return db.Create(&progress).Error
	}

	existing.Answers = datatypes.JSON(answers.Canonical())
	existing.CurrentStep = step
	if completed {
		existing.IsCompleted = true
	}
	return db.Save(&existing).Error
}

// LoadExploration returns the user's phase-2 state, or an empty
// default when no row exists yet.
func LoadExploration(db *gorm.DB, userID uuid.UUID) *models.ExplorationState {
	var state models.ExplorationState
	err := db.Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("exploration load failed, using defaults")
		}
		return &models.ExplorationState{UserID: userID}
	}
	return &state
}

// SaveExploration applies a partial update with read-then-upsert
// semantics.
func SaveExploration(db *gorm.DB, userID uuid.UUID, req models.UpdateExplorationRequest) (*models.ExplorationState, error) {
	var state models.ExplorationState
	err := db.Where("user_id = ?", userID).First(&state).Error
	isNew := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		state = models.ExplorationState{UserID: userID}
		isNew = true
	}

	if req.SelectedProjectID != nil {
		if *req.SelectedProjectID == "" {
			state.SelectedProjectID = nil
		} else {
			state.SelectedProjectID = req.SelectedProjectID
		}
	}
	if req.LearningPlanCreated != nil {
		state.LearningPlanCreated = *req.LearningPlanCreated
	}
	if req.PublicBuildingStarted != nil {
		state.PublicBuildingStarted = *req.PublicBuildingStarted
	}

	if isNew {
		err = db.Create(&state).Error
	} else {
		err = db.Save(&state).Error
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// MigrateExploration imports a legacy client-local snapshot. It is a
// one-time read: once a server row exists the snapshot is ignored, so
// the two sources can never diverge.
func MigrateExploration(db *gorm.DB, userID uuid.UUID, req models.MigrateExplorationRequest) (*models.ExplorationState, bool, error) {
	var existing models.ExplorationState
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	state := models.ExplorationState{
		UserID:                userID,
		SelectedProjectID:     req.SelectedProjectID,
		PublicBuildingStarted: req.PublicBuildingStarted,
	}
	if err := db.Create(&state).Error; err != nil {
		return nil, false, err
	}
	logrus.WithField("user_id", userID).Info("migrated legacy exploration state")
	return &state, true, nil
}

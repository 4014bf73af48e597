package services

import (
	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/journey"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"gorm.io/gorm"
)

// FlagsForUser assembles the completion flags the phase calculator and
// task engine run on. Ikigai completion is the stored boolean; the two
// research flags are row-existence checks.
func FlagsForUser(db *gorm.DB, userID uuid.UUID) journey.Flags {
	progress := LoadIkigai(db, userID)
	exploration := LoadExploration(db, userID)

	return journey.Flags{
		IkigaiCompleted:           progress.IsCompleted,
		IndustryResearchCompleted: Artifacts.Has(userID, models.ArtifactIndustryResearch),
		CareerRoadmapCompleted:    Artifacts.Has(userID, models.ArtifactCareerRoadmap),
		ProjectSelected:           exploration.SelectedProjectID != nil && *exploration.SelectedProjectID != "",
		LearningPlanCreated:       exploration.LearningPlanCreated,
		PublicBuildingStarted:     exploration.PublicBuildingStarted,
	}
}

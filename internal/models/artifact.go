package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Artifact kinds. Learning plans and building plans are scoped to a
// project; the rest are one per user.
const (
	ArtifactIndustryResearch  = "industry_research"
	ArtifactCareerRoadmap     = "career_roadmap"
	ArtifactLearningPlan      = "learning_plan"
	ArtifactBuildingPlan      = "building_plan"
	ArtifactOutreachTemplates = "outreach_templates"
	ArtifactJournalInsights   = "journal_insights"
)

// ProjectScopedArtifact reports whether rows of this kind are keyed by
// (user, project) rather than user alone.
func ProjectScopedArtifact(kind string) bool {
	return kind == ArtifactLearningPlan || kind == ArtifactBuildingPlan
}

// ResearchArtifact holds one generated JSON payload per (user, kind,
// project) key. CreatedAt is the generation time and drives the
// freshness policy; regeneration overwrites the row in place.
type ResearchArtifact struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index:idx_user_artifact,unique"`
	Kind      string         `json:"kind" gorm:"size:64;not null;index:idx_user_artifact,unique"`
	ProjectID string         `json:"projectId" gorm:"size:128;not null;default:'';index:idx_user_artifact,unique"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:json"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (a *ResearchArtifact) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

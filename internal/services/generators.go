package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"gorm.io/gorm"
)

// Generators assemble the user's context, delegate the hard decision
// to the model, and hand the JSON back to the artifact cache. Prompt
// text is deliberately minimal; the output schema per kind is the
// contract.

func answersContext(answers models.IkigaiAnswers) string {
	var b strings.Builder
	b.WriteString("What they love: " + strings.Join(answers.Love, "; ") + "\n")
	b.WriteString("What they are good at: " + strings.Join(answers.GoodAt, "; ") + "\n")
	b.WriteString("What the world needs: " + strings.Join(answers.WorldNeeds, "; ") + "\n")
	b.WriteString("What they can be paid for: " + strings.Join(answers.PaidFor, "; ") + "\n")
	return b.String()
}

// IndustryResearchGenerator returns {industries:[...]} scored against
// the user's ikigai answers.
func IndustryResearchGenerator(db *gorm.DB, userID uuid.UUID) Generator {
	return func(ctx context.Context) (json.RawMessage, error) {
		answers := LoadIkigai(db, userID).DecodedAnswers()
		system := "You are a career research analyst. Respond with JSON only, shaped as " +
			`{"industries":[{"name","fitScore","overview","trends":[],"entryRoles":[]}]}.`
		user := "Based on this self-discovery profile, identify the 5 best-fit industries:\n" +
			answersContext(answers)
		return LLM.GenerateJSON(ctx, system, user)
	}
}

// CareerRoadmapGenerator chains prior industry research into the
// prompt when it exists.
func CareerRoadmapGenerator(db *gorm.DB, userID uuid.UUID) Generator {
	return func(ctx context.Context) (json.RawMessage, error) {
		answers := LoadIkigai(db, userID).DecodedAnswers()
		system := "You are a career coach. Respond with JSON only, shaped as " +
			`{"overview","shortTermGoals":[],"longTermGoals":[],"skillDevelopmentPlan":[],"careerPath":[],"actionItems":[]}.`
		user := "Create a career roadmap for this profile:\n" + answersContext(answers)

		var research models.ResearchArtifact
		if err := db.Where("user_id = ? AND kind = ?", userID, models.ArtifactIndustryResearch).
			First(&research).Error; err == nil {
			user += "\nPrior industry research:\n" + string(research.Payload)
		}
		return LLM.GenerateJSON(ctx, system, user)
	}
}

// LearningPlanGenerator is project-scoped.
func LearningPlanGenerator(db *gorm.DB, userID uuid.UUID, projectSlug string) Generator {
	return func(ctx context.Context) (json.RawMessage, error) {
		var project models.ProjectOption
		if err := db.Where("user_id = ? AND slug = ?", userID, projectSlug).First(&project).Error; err != nil {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectSlug)
		}
		system := "You are a learning mentor. Respond with JSON only, shaped as " +
			`{"overview","milestones":[{"title","durationWeeks","topics":[],"resources":[]}],"weeklyCadence"}.`
		user := fmt.Sprintf("Create a learning plan for the project %q (%s, %s): %s\nSkills: %s",
			project.Name, project.Difficulty, project.Duration, project.Description, string(project.Skills))
		return LLM.GenerateJSON(ctx, system, user)
	}
}

// BuildingPlanGenerator is project-scoped: a building-in-public plan
// for the selected project.
func BuildingPlanGenerator(db *gorm.DB, userID uuid.UUID, projectSlug string) Generator {
	return func(ctx context.Context) (json.RawMessage, error) {
		var project models.ProjectOption
		if err := db.Where("user_id = ? AND slug = ?", userID, projectSlug).First(&project).Error; err != nil {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectSlug)
		}
		system := "You are a personal-branding coach. Respond with JSON only, shaped as " +
			`{"summary","platforms":[],"postingCadence","contentIdeas":[],"firstWeekPlan":[]}.`
		user := fmt.Sprintf("Create a building-in-public plan around the project %q: %s",
			project.Name, project.Description)
		return LLM.GenerateJSON(ctx, system, user)
	}
}

// OutreachTemplatesGenerator produces networking message templates.
func OutreachTemplatesGenerator(db *gorm.DB, userID uuid.UUID) Generator {
	return func(ctx context.Context) (json.RawMessage, error) {
		answers := LoadIkigai(db, userID).DecodedAnswers()
		system := "You are a job-search coach. Respond with JSON only, shaped as " +
			`{"templates":[{"audience","channel","subject","body"}]}.`
		user := "Write 4 outreach message templates tailored to this profile:\n" + answersContext(answers)
		return LLM.GenerateJSON(ctx, system, user)
	}
}

// JournalInsightsGenerator summarizes recent journal entries into
// {summary, sentiment, keyThemes, recommendations}.
func JournalInsightsGenerator(db *gorm.DB, userID uuid.UUID) Generator {
	return func(ctx context.Context) (json.RawMessage, error) {
		var entries []models.JournalEntry
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").Limit(20).Find(&entries).Error; err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w: no journal entries to analyze", ErrNotFound)
		}

		var b strings.Builder
		for i := len(entries) - 1; i >= 0; i-- {
			b.WriteString(entries[i].CreatedAt.Format("2006-01-02"))
			b.WriteString(": ")
			b.WriteString(entries[i].Content)
			b.WriteString("\n")
		}
		system := "You analyze reflection journals. Respond with JSON only, shaped as " +
			`{"summary","sentiment","keyThemes":[],"recommendations":[]}.`
		user := "Analyze these journal entries:\n" + b.String()
		return LLM.GenerateJSON(ctx, system, user)
	}
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
	"gorm.io/gorm"
)

func singletonGenerator(kind string, userID uuid.UUID) services.Generator {
	switch kind {
	case models.ArtifactIndustryResearch:
		return services.IndustryResearchGenerator(database.DB, userID)
	case models.ArtifactCareerRoadmap:
		return services.CareerRoadmapGenerator(database.DB, userID)
	case models.ArtifactOutreachTemplates:
		return services.OutreachTemplatesGenerator(database.DB, userID)
	default:
		return nil
	}
}

func projectGenerator(kind string, userID uuid.UUID, slug string) services.Generator {
	switch kind {
	case models.ArtifactLearningPlan:
		return services.LearningPlanGenerator(database.DB, userID, slug)
	case models.ArtifactBuildingPlan:
		return services.BuildingPlanGenerator(database.DB, userID, slug)
	default:
		return nil
	}
}

func generationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, services.ErrGenerationTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Generation timed out, please try again",
		})
	case errors.Is(err, services.ErrGenerationFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Generation failed, please try again",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong",
		})
	}
}

// GetArtifact returns the singleton artifact for :kind, generating it
// when absent or stale.
func GetArtifact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	kind := c.Params("kind")

	generate := singletonGenerator(kind, userID)
	if generate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown artifact kind",
		})
	}

	payload, err := services.Artifacts.GetOrGenerate(c.Context(), userID, kind, "", generate)
	if err != nil {
		return generationError(c, err)
	}
	return c.Type("json").Send(payload)
}

// RegenerateArtifact bypasses the freshness window. The stored row
// survives a failed generation.
func RegenerateArtifact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	kind := c.Params("kind")

	generate := singletonGenerator(kind, userID)
	if generate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown artifact kind",
		})
	}

	payload, err := services.Artifacts.Regenerate(c.Context(), userID, kind, "", generate)
	if err != nil {
		return generationError(c, err)
	}
	return c.Type("json").Send(payload)
}

// GetProjectArtifact serves the project-scoped kinds. Generating a
// learning or building plan also advances the matching exploration
// flag.
func GetProjectArtifact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	slug := c.Params("slug")
	kind := c.Params("kind")

	generate := projectGenerator(kind, userID, slug)
	if generate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown artifact kind",
		})
	}

	var project models.ProjectOption
	if err := database.DB.Where("user_id = ? AND slug = ?", userID, slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong",
		})
	}

	payload, err := services.Artifacts.GetOrGenerate(c.Context(), userID, kind, slug, generate)
	if err != nil {
		return generationError(c, err)
	}

	markPlanCreated(userID, kind)
	return c.Type("json").Send(payload)
}

func RegenerateProjectArtifact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	slug := c.Params("slug")
	kind := c.Params("kind")

	generate := projectGenerator(kind, userID, slug)
	if generate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown artifact kind",
		})
	}

	payload, err := services.Artifacts.Regenerate(c.Context(), userID, kind, slug, generate)
	if err != nil {
		return generationError(c, err)
	}

	markPlanCreated(userID, kind)
	return c.Type("json").Send(payload)
}

func markPlanCreated(userID uuid.UUID, kind string) {
	truthy := true
	var req models.UpdateExplorationRequest
	switch kind {
	case models.ArtifactLearningPlan:
		req.LearningPlanCreated = &truthy
	case models.ArtifactBuildingPlan:
		req.PublicBuildingStarted = &truthy
	default:
		return
	}
	// flag write is best-effort; the artifact itself already persisted
	_, _ = services.SaveExploration(database.DB, userID, req)
}

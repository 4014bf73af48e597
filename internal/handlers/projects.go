package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
)

func GetProjects(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	projects, err := services.ListProjects(database.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load projects",
		})
	}
	return c.JSON(projects)
}

// GenerateProjects creates the initial recommendation batch (or tops
// up around pinned selections).
func GenerateProjects(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	projects, err := services.GenerateProjects(c.Context(), database.DB, userID)
	if err != nil {
		return generationError(c, err)
	}
	return c.JSON(projects)
}

// RegenerateProjects replaces only the unselected options; pinned rows
// come back untouched.
func RegenerateProjects(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	projects, err := services.RegenerateUnselected(c.Context(), database.DB, userID)
	if err != nil {
		return generationError(c, err)
	}
	return c.JSON(projects)
}

func SelectProject(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	slug := c.Params("slug")

	project, err := services.SelectProject(database.DB, userID, slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to select project",
		})
	}
	return c.JSON(project)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
)

func GetExploration(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	return c.JSON(services.LoadExploration(database.DB, userID))
}

func UpdateExploration(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.UpdateExplorationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	state, err := services.SaveExploration(database.DB, userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save exploration state",
		})
	}
	return c.JSON(state)
}

// MigrateExploration imports the legacy client-local snapshot. A
// server row always wins; the snapshot only seeds users who never had
// one.
func MigrateExploration(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.MigrateExplorationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	state, migrated, err := services.MigrateExploration(database.DB, userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to migrate exploration state",
		})
	}
	return c.JSON(fiber.Map{
		"state":    state,
		"migrated": migrated,
	})
}

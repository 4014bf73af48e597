package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/journey"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
)

// GetJourney is the dashboard read: current phase, percent within it,
// and the raw flags it was derived from.
func GetJourney(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	flags := services.FlagsForUser(database.DB, userID)
	phase, percent := journey.ComputePhase(flags)

	return c.JSON(fiber.Map{
		"phase":   phase,
		"percent": percent,
		"flags":   flags,
	})
}

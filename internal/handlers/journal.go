package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
)

func GetJournal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var entries []models.JournalEntry
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load journal",
		})
	}
	return c.JSON(entries)
}

func CreateJournalEntry(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateJournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content is required",
		})
	}

	entry := models.JournalEntry{
		UserID:  userID,
		Content: req.Content,
		Mood:    req.Mood,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save journal entry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetJournalInsights runs the sentiment/themes analysis through the
// artifact cache, so repeat reads within the freshness window reuse
// the stored result.
func GetJournalInsights(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	payload, err := services.Artifacts.GetOrGenerate(
		c.Context(), userID, models.ArtifactJournalInsights, "",
		services.JournalInsightsGenerator(database.DB, userID),
	)
	if err != nil {
		return generationError(c, err)
	}
	return c.Type("json").Send(payload)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
)

// IkigaiSteps is the number of wizard steps; completing the last one
// marks the document completed.
const IkigaiSteps = 4

func GetIkigai(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	return c.JSON(services.LoadIkigai(database.DB, userID))
}

// SaveIkigai queues a debounced save of the in-progress document.
// Saving is write-behind: a burst of edits within the quiet window
// lands as one write carrying the last state.
func SaveIkigai(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SaveIkigaiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	step := 0
	if req.CurrentStep != nil {
		step = *req.CurrentStep
	}
	if step < 0 || step >= IkigaiSteps {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid step",
		})
	}

	services.QueueIkigaiSave(userID, req.Answers, step)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"queued": true,
	})
}

// CompleteIkigai flushes any pending autosave and flips the completion
// flag. The flag never reverts through normal flow.
func CompleteIkigai(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SaveIkigaiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	services.IkigaiSaver.FlushKey(userID.String())

	answers := req.Answers
	answers.Normalize()
	if answers.IsEmpty() {
		// complete with whatever was already persisted
		answers = services.LoadIkigai(database.DB, userID).DecodedAnswers()
	}
	if answers.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot complete an empty ikigai document",
		})
	}

	if err := services.SaveIkigai(database.DB, userID, answers, IkigaiSteps-1, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save progress, your answers are kept locally",
		})
	}

	return c.JSON(services.LoadIkigai(database.DB, userID))
}

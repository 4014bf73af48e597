package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/journey"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
	"gorm.io/gorm"
)

// TaskView is a recommended task with the user's completed overlay
// applied. Completing a task never removes it from the list or
// advances any flags.
type TaskView struct {
	journey.Task
	Completed bool `json:"completed"`
}

func GetTasks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	flags := services.FlagsForUser(database.DB, userID)
	phase, _ := journey.ComputePhase(flags)
	tasks := journey.ComputeTasks(phase, flags)

	var completions []models.TaskCompletion
	database.DB.Where("user_id = ?", userID).Find(&completions)
	done := make(map[string]bool, len(completions))
	for _, completion := range completions {
		done[completion.TaskID] = true
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{Task: task, Completed: done[task.ID]})
	}
	return c.JSON(views)
}

// ToggleTask flips the completed overlay for one task id.
func ToggleTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	taskID := c.Params("id")
	if taskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing task id",
		})
	}

	var existing models.TaskCompletion
	err := database.DB.Where("user_id = ? AND task_id = ?", userID, taskID).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update task",
			})
		}
		return c.JSON(fiber.Map{"taskId": taskID, "completed": false})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}

	completion := models.TaskCompletion{UserID: userID, TaskID: taskID}
	if err := database.DB.Create(&completion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}
	return c.JSON(fiber.Map{"taskId": taskID, "completed": true})
}

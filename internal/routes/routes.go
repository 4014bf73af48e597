package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satish-r-singh/pathfinder-api/internal/handlers"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	// Journey dashboard: derived phase + percent + flags
	protected.Get("/journey", handlers.GetJourney)

	// Ikigai wizard (debounced autosave)
	protected.Get("/ikigai", handlers.GetIkigai)
	protected.Put("/ikigai", handlers.SaveIkigai)
	protected.Post("/ikigai/complete", handlers.CompleteIkigai)

	// Exploration state
	protected.Get("/exploration", handlers.GetExploration)
	protected.Put("/exploration", handlers.UpdateExploration)
	protected.Post("/exploration/migrate", handlers.MigrateExploration)

	// Singleton AI artifacts
	protected.Get("/artifacts/:kind", handlers.GetArtifact)
	protected.Post("/artifacts/:kind/regenerate", handlers.RegenerateArtifact)

	// Project options
	projects := protected.Group("/projects")
	projects.Get("/", handlers.GetProjects)
	projects.Post("/generate", handlers.GenerateProjects)
	projects.Post("/regenerate", handlers.RegenerateProjects)
	projects.Post("/:slug/select", handlers.SelectProject)

	// Project-scoped artifacts (learning plan, building plan)
	projects.Get("/:slug/artifacts/:kind", handlers.GetProjectArtifact)
	projects.Post("/:slug/artifacts/:kind/regenerate", handlers.RegenerateProjectArtifact)

	// Recommended tasks + completed overlay
	tasks := protected.Group("/tasks")
	tasks.Get("/", handlers.GetTasks)
	tasks.Post("/:id/toggle", handlers.ToggleTask)

	// Reflection journal
	journal := protected.Group("/journal")
	journal.Get("/", handlers.GetJournal)
	journal.Post("/", handlers.CreateJournalEntry)
	journal.Get("/insights", handlers.GetJournalInsights)
}

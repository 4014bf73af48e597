package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/satish-r-singh/pathfinder-api/internal/config"
	"github.com/satish-r-singh/pathfinder-api/internal/database"
	"github.com/satish-r-singh/pathfinder-api/internal/middleware"
	"github.com/satish-r-singh/pathfinder-api/internal/routes"
	"github.com/satish-r-singh/pathfinder-api/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	middleware.Init(cfg.JWTSecret)

	if err := services.InitLLM(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to initialize generation client")
	}
	services.InitArtifacts(database.DB, cfg.ArtifactMaxAge)
	services.InitAutosave(database.DB, cfg.AutosaveDelay)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	routes.Setup(app)

	// flush pending autosaves before shutdown so a pending debounce
	// window is never dropped
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logrus.Info("shutting down")
		services.IkigaiSaver.Flush()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"biblio-backend/internal/adapters/http/middleware"
	"biblio-backend/internal/adapters/http/routes"
	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/config"
	"biblio-backend/internal/core/services"

	_ "biblio-backend/docs"

	"github.com/gofiber/fiber/v2"
)

// @title Biblio API
// @version 1.0
// @description Library loan management REST API
// @host localhost:3000
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("Seeding failed: %v", err)
		}
	}

	cronService := services.NewCronService(db)
	cronService.Start()

	app := fiber.New(fiber.Config{
		AppName:      "Biblio API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg)

	go gracefulShutdown(app, cronService)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// gracefulShutdown waits for a termination signal, then drains in-flight
// requests, stops the scheduler and closes the database connection.
func gracefulShutdown(app *fiber.App, cronService *services.CronService) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	cronService.Stop()

	if err := config.CloseDatabase(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("Server stopped")
}

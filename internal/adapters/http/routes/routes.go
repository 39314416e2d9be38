package routes

import (
	"time"

	"biblio-backend/internal/adapters/http/handlers"
	"biblio-backend/internal/adapters/http/middleware"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/config"
	"biblio-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, then registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRequestRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo)
	loanService := services.NewLoanService(db, loanRepo, bookRepo, userRepo)
	statsService := services.NewStatsService(bookRepo, userRepo, loanRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	bookHandler := handlers.NewBookHandler(bookService)
	loanHandler := handlers.NewLoanHandler(loanService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", healthHandler.Check)

	// Auth routes (stricter rate limit on credential endpoints)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public catalog reads
	api.Get("/books", middleware.PublicCache(5*time.Minute), bookHandler.List)
	api.Get("/books/:id", middleware.PublicCache(5*time.Minute), bookHandler.Get)

	// Authenticated routes
	authenticated := api.Group("", middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())

	authenticated.Post("/loan-requests", loanHandler.Create)
	authenticated.Get("/loan-requests", loanHandler.List)
	authenticated.Get("/loan-requests/:id", loanHandler.Get)

	authenticated.Get("/stats", statsHandler.Overview)

	authenticated.Get("/users/:id", userHandler.Get)
	authenticated.Put("/users/:id", userHandler.Update)

	// Admin routes
	admin := authenticated.Group("", middleware.AdminOnly())

	admin.Patch("/loan-requests/:id/status", loanHandler.UpdateStatus)

	admin.Post("/books", bookHandler.Create)
	admin.Put("/books/:id", bookHandler.Update)
	admin.Delete("/books/:id", bookHandler.Delete)

	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Delete("/users/:id", userHandler.Delete)
}

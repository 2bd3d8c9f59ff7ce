package routes

import (
	"montsion-scolarite/internal/adapters/http/handlers"
	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/adapters/persistence/store"
	"montsion-scolarite/internal/config"
	"montsion-scolarite/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, st *store.Store, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(st)
	studentRepo := repositories.NewStudentRepository(st)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	studentService := services.NewStudentService(studentRepo)
	paymentService := services.NewPaymentService(studentRepo)
	reportService := services.NewReportService(studentRepo, st)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	studentHandler := handlers.NewStudentHandler(studentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Auth routes (public)
	api.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Post("/create-profile", middleware.AuthRateLimiter(), authHandler.CreateProfile)
	api.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Student ledger routes (authenticated users)
	students := api.Group("/students", middleware.AuthMiddleware(cfg))
	students.Get("/", studentHandler.List)
	students.Post("/", studentHandler.Create)
	students.Post("/:id/payment", middleware.AdminOnly(), paymentHandler.AddPayment)

	api.Get("/search-students", middleware.AuthMiddleware(cfg), studentHandler.Search)

	// Reporting routes (admin only)
	reports := api.Group("", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	reports.Get("/stats", reportHandler.Stats)
	reports.Get("/download-yaml", reportHandler.DownloadYAML)
	reports.Get("/export-excel", reportHandler.ExportExcel)
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/adapters/http/routes"
	"montsion-scolarite/internal/config"
	"montsion-scolarite/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Open the snapshot datastore
	st, err := config.OpenDataStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open datastore: %v", err)
	}

	// Seed default accounts and an empty ledger (first boot only)
	if err := config.NewSeeder(st).Run(); err != nil {
		log.Fatalf("❌ Failed to seed datastore: %v", err)
	}

	// Start scheduled backups of the store files
	if cfg.Backup.Enabled {
		backupService := services.NewBackupService(st, cfg.Backup.Schedule)
		backupService.Start()
		defer backupService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "École Mont Sion - Scolarité API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass store and cfg for dependency injection)
	routes.Setup(app, st, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

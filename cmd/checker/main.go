package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"dxf-checker/internal/checker/handlers"
	"dxf-checker/internal/checker/repository"
	"dxf-checker/internal/common/config"
	"dxf-checker/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Checker Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	dbPath := getenv("CHECKER_DB_PATH", "data/db/history.db")
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_history.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	checkHandler := handlers.NewCheckHandler(repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Checker Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Checker Routes
	// ============================================================

	app.Post("/self-check", checkHandler.SelfCheck)
	app.Post("/reference-check", checkHandler.ReferenceCheck)

	app.Get("/history", checkHandler.History)
	app.Delete("/history", checkHandler.ClearHistory)
	app.Delete("/history/:id", checkHandler.DeleteEntry)

	app.Get("/download/:kind/:id", checkHandler.Download)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Checker Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"dxf-checker/internal/common/config"
	"dxf-checker/internal/common/middleware"
	"dxf-checker/internal/gateway/handlers"
	"dxf-checker/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DXF Checker API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Checker Service
	checkerURL := getEnv("CHECKER_URL", "http://localhost:3001")
	api.Post("/self-check", proxy.ProxyTo(checkerURL+"/self-check"))
	api.Post("/reference-check", proxy.ProxyTo(checkerURL+"/reference-check"))
	api.Get("/history", proxy.ProxyTo(checkerURL+"/history"))
	api.Delete("/history", proxy.ProxyTo(checkerURL+"/history"))
	api.Delete("/history/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/history/%s", checkerURL, c.Params("id")))
	})
	api.Get("/download/:kind/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/download/%s/%s", checkerURL, c.Params("kind"), c.Params("id")))
	})

	// Auth Service
	authURL := getEnv("AUTH_URL", "http://localhost:3002")
	api.Post("/login", proxy.ProxyTo(authURL+"/login"))
	api.Post("/logout", proxy.ProxyTo(authURL+"/logout"))
	api.Get("/users/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s", authURL, c.Params("id")))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /self-check to %s", checkerURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

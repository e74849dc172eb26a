package main

import (
	"time"

	"selling/internal/config"
	"selling/internal/handlers"
	"selling/internal/middleware"
	"selling/internal/repositories"
	"selling/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and handlers onto a Fiber app. events
// may be nil, in which case no catalog events are published.
func NewApp(cfg config.Config, db *gorm.DB, events services.EventPublisher) (*fiber.App, *services.AuthService) {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	colorRepo := repositories.NewGORMColorRepository(db)
	subRepo := repositories.NewGORMSubCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	colorService := services.NewColorService(colorRepo)
	subService := services.NewSubCategoryService(subRepo, events)
	productService := services.NewProductService(productRepo, events)
	reportService := services.NewReportService(reportRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	colorHandler := handlers.NewColorHandler(colorService)
	subHandler := handlers.NewSubCategoryHandler(subService)
	productHandler := handlers.NewProductHandler(productService)
	reportHandler := handlers.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		AppName:               "selling",
		DisableStartupMessage: cfg.AppEnv == "production",
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status = "down"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": status,
			"events":   events != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public, except users/me)
	authHandler.RegisterRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	colorHandler.RegisterRoutes(protected)
	subHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)
	reportHandler.RegisterRoutes(protected)

	return app, authService
}

// Package server assembles the catalog HTTP application.
package server

import (
	"context"
	"log"
	"time"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/media"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the backing services the application is built on.
type Deps struct {
	Products repositories.ProductRepository
	Users    repositories.UserRepository
	Uploader media.Uploader
	// Events may be nil, in which case no change events are published.
	Events services.EventPublisher
	// Ping checks the store for /health. Nil means always reachable.
	Ping func(ctx context.Context) error
}

// New builds the Fiber app with every catalog route registered.
func New(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "catalog",
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	productService := services.NewProductService(deps.Products, deps.Events)
	userService := services.NewUserService(deps.Users, deps.Events)
	mediaService := services.NewMediaService(deps.Uploader, cfg.UploadConcurrency)
	authService := services.NewAuthService(deps.Users, cfg.JWTSecret)

	var writeGuards, adminGuards []fiber.Handler
	if cfg.AuthRequired {
		auth := middleware.AuthRequired(authService)
		writeGuards = []fiber.Handler{auth}
		adminGuards = []fiber.Handler{auth, middleware.AdminOnly()}
		log.Println("Authentication required for catalog writes")
	}

	app.Get("/health", healthHandler(cfg.StoreDriver, deps.Ping, cfg.RequestTimeout))

	if cfg.JWTSecret != "" {
		handlers.NewAuthHandler(authService, cfg.RequestTimeout).RegisterRoutes(app)
	} else {
		log.Println("JWT_SECRET not set, /login disabled")
	}
	handlers.NewProductHandler(productService, cfg.RequestTimeout).RegisterRoutes(app, writeGuards...)
	handlers.NewUploadHandler(mediaService, cfg.RequestTimeout).RegisterRoutes(app, writeGuards...)
	handlers.NewUserHandler(userService, cfg.RequestTimeout).RegisterRoutes(app, adminGuards...)

	if cfg.MediaDriver == config.MediaLocal && cfg.MediaDir != "" {
		app.Static("/media", cfg.MediaDir)
	}

	return app
}

func healthHandler(driver string, ping func(context.Context) error, timeout time.Duration) fiber.Handler {
	if timeout <= 0 {
		timeout = handlers.DefaultRequestTimeout
	}
	return func(c *fiber.Ctx) error {
		status, store, code := "healthy", driver+": connected", fiber.StatusOK
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Printf("Health check: %s store unreachable: %v", driver, err)
				status, store, code = "unhealthy", driver+": unreachable", fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
			"store":  store,
		})
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"til/internal/handlers"
	"til/internal/middleware"
	"til/internal/models"
	"til/internal/repositories"
	"til/internal/services"
)

// NewApp builds the Fiber application with all routes wired: database,
// repositories, services, and handlers. The post event publisher is
// injected so callers (and tests) control whether events go to a real
// broker; it may be nil.
func NewApp(publisher services.PostEventPublisher) (*fiber.App, *services.AuthService, error) {
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "til.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.AutomaticEnv()

	// Repositories. The "memory" driver runs entirely on the in-memory
	// stores, useful for local hacking without a database file.
	var userRepo repositories.UserRepository
	var postRepo repositories.PostRepository
	if driver := viper.GetString("DATABASE_DRIVER"); driver == "memory" {
		userRepo = repositories.NewMockUserRepository()
		postRepo = repositories.NewMockPostRepository()
	} else {
		db, err := openDatabase(driver, viper.GetString("DATABASE_DSN"))
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		postRepo = repositories.NewGORMPostRepository(db)
	}

	// Services
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, publisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)

	app := fiber.New()
	app.Use(logger.New()) // Request logger

	api := app.Group("/api")

	// Authentication routes (public)
	authHandler.RegisterRoutes(api)

	// Protected routes (require JWT authentication)
	protected := api.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	postHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, authService, nil
}

// openDatabase opens a GORM connection for the configured driver.
// sqlite is the default; postgres is used in production deployments.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

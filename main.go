package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rutaapp/internal/handlers"
	"rutaapp/internal/middleware"
	"rutaapp/internal/repositories"
	"rutaapp/internal/services"
	"rutaapp/pkg/events"
)

func main() {
	// --- Configuration ---
	// Load a local .env file if present, then let Viper pick everything up
	// from the environment.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Initialize Database ---
	// Postgres in production; a local SQLite file when no DSN is configured.
	// TranslateError turns driver-specific constraint violations into
	// gorm.ErrDuplicatedKey, which the repository relies on.
	var dialector gorm.Dialector
	if databaseDSN != "" {
		dialector = postgres.Open(databaseDSN)
	} else {
		log.Println("DATABASE_DSN not set, using local SQLite database rutaapp.db")
		dialector = sqlite.Open("rutaapp.db")
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)

	// Schema creation is idempotent and runs on every boot. A failure is
	// logged but not fatal: a pre-existing table keeps the server usable.
	if err := userRepo.EnsureSchema(); err != nil {
		log.Printf("Schema initialization failed: %v", err)
	} else {
		log.Println("Table usuarios verified/created")
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *events.Client
	if rabbitMQURL != "" {
		mqClient, err = events.NewClient(events.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ client, events disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, 1*time.Hour)
	userService := services.NewUserService(userRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(cors.New())

	// --- API Routes ---
	userHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)

	// Routes behind the JWT guard. The guard is attached per route so open
	// endpoints like /health stay reachable without a token.
	authHandler.RegisterProtectedRoutes(app, middleware.AuthRequired(authService))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

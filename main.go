package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"souq/internal/handlers"
	"souq/internal/middleware"
	"souq/internal/models"
	"souq/internal/repositories"
	"souq/internal/services"
	"souq/internal/storage"
	"souq/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "souq.db")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables messaging
	viper.SetDefault("ADMIN_NAME", "Administrator")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.Offer{},
		&models.Rating{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Attachment store ---
	attachments, err := storage.NewAttachmentStore(viper.GetString("UPLOAD_DIR"))
	if err != nil {
		log.Fatalf("Failed to initialize attachment store: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, marketplace events disabled")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	offerRepo := repositories.NewGORMOfferRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	orderService := services.NewOrderService(orderRepo, offerRepo, publisher)
	profileService := services.NewProfileService(userRepo, orderRepo, ratingRepo, publisher)

	// Admin bootstrap replaces the old hard-coded admin password.
	if err := authService.EnsureAdmin(
		viper.GetString("ADMIN_NAME"),
		viper.GetString("ADMIN_EMAIL"),
		viper.GetString("ADMIN_PASSWORD"),
	); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService, attachments)
	profileHandler := handlers.NewProfileHandler(profileService, contactRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, contactRepo)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	session := middleware.SessionAuth(authService)

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	authHandler.RegisterSessionRoutes(apiV1.Group("", session))
	orderHandler.RegisterRoutes(apiV1, session)
	profileHandler.RegisterRoutes(apiV1, session)
	adminHandler.RegisterRoutes(apiV1, session)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The consumer just logs marketplace events for now; notification fanout
	// would hang off this handler.
	if mqClient != nil {
		go func() {
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received %s event (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

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

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured relational store. SQLite is the
// zero-setup default; Postgres is available for anything bigger.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

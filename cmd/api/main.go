package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/cutiefy/pos-api/internal/application/service"
	"github.com/cutiefy/pos-api/internal/config"
	"github.com/cutiefy/pos-api/internal/infrastructure/database"
	"github.com/cutiefy/pos-api/internal/infrastructure/repository"
	"github.com/cutiefy/pos-api/internal/presentation/http/handler"
	"github.com/cutiefy/pos-api/internal/presentation/http/routes"
	"github.com/cutiefy/pos-api/pkg/email"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize structured logger
	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	itemRepo := repository.NewItemRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,

		BusinessName:    cfg.Business.Name,
		BusinessContact: cfg.Business.Contact,
		BusinessAddress: cfg.Business.Address,
		LogoURL:         cfg.Business.LogoURL,
		UPIID:           cfg.Business.UPIID,
		QRImageURL:      cfg.Business.QRImageURL,
	})

	// Initialize services
	sessions := service.NewSessionManager()
	inventoryService := service.NewInventoryService(itemRepo, logger, cfg.Inventory.LowStockThreshold)
	cartService := service.NewCartService(itemRepo, logger)
	checkoutService := service.NewCheckoutService(itemRepo, saleRepo, cartService, sessions, emailService, logger, cfg.Inventory.LowStockThreshold)
	reportService := service.NewReportService(saleRepo, itemRepo, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Item:    handler.NewItemHandler(inventoryService),
		Billing: handler.NewBillingHandler(sessions, cartService, checkoutService),
		Report:  handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:    cfg,
		Logger: logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

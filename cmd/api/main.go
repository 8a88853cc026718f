package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/config"
	"github.com/mesahq/mesa-api/internal/infrastructure/database"
	"github.com/mesahq/mesa-api/internal/infrastructure/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/handler"
	"github.com/mesahq/mesa-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	pricing := service.NewPricingCalculator(service.FlatDeliveryFee(cfg.Orders.DeliveryFee))
	ledger := service.NewPaymentLedger()

	selectionPolicy := service.SelectionLenient
	if cfg.Orders.StrictSelections {
		selectionPolicy = service.SelectionStrict
	}

	orderService := service.NewOrderService(orderRepo, businessRepo, catalogRepo, pricing, ledger, service.OrderServiceConfig{
		OrderNumberWidth: cfg.Orders.NumberWidth,
		SelectionPolicy:  selectionPolicy,
	})
	statsService := service.NewStatsService(statsRepo, orderRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order: handler.NewOrderHandler(orderService),
		Stats: handler.NewStatsHandler(statsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:          cfg,
		BusinessRepo: businessRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

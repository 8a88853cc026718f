package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/config"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/handler"
	"github.com/mesahq/mesa-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order *handler.OrderHandler
	Stats *handler.StatsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg          *config.Config
	BusinessRepo domainRepo.BusinessRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewBusinessRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	v1 := router.Group("/api/v1")
	{
		business := v1.Group("/businesses/:business_id")
		business.Use(middleware.BusinessMiddleware(deps.BusinessRepo))
		business.Use(rateLimiter.Middleware())

		orders := business.Group("/orders")
		{
			orders.POST("", h.Order.Create)
			orders.GET("", h.Order.List)
			orders.GET("/:order_id", h.Order.Get)
			orders.PATCH("/:order_id", h.Order.Update)
			orders.POST("/:order_id/cancel", h.Order.Cancel)
			orders.POST("/:order_id/payments", h.Order.AddPayment)
			orders.GET("/number/:order_number", h.Order.GetByNumber)
		}

		stats := business.Group("/stats")
		{
			stats.GET("", h.Stats.BusinessStats)
			stats.GET("/dashboard", h.Stats.Dashboard)
		}
	}

	return router
}

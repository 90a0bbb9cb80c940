package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/cutiefy/pos-api/internal/config"
	"github.com/cutiefy/pos-api/internal/presentation/http/handler"
	"github.com/cutiefy/pos-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Item    *handler.ItemHandler
	Billing *handler.BillingHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerItemRoutes(v1, h)
		registerBillingRoutes(v1, h)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerItemRoutes(v1 *gin.RouterGroup, h *Handlers) {
	items := v1.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/low-stock", h.Item.GetLowStock)
		items.GET("/:item_id", h.Item.Get)
		items.PUT("/:item_id", h.Item.Update)
		items.DELETE("/:item_id", h.Item.Delete)
	}
}

func registerBillingRoutes(v1 *gin.RouterGroup, h *Handlers) {
	billing := v1.Group("/billing")
	{
		billing.POST("/sessions", h.Billing.StartSession)
		billing.GET("/sessions/:session_id", h.Billing.GetSession)
		billing.DELETE("/sessions/:session_id", h.Billing.EndSession)
		billing.POST("/sessions/:session_id/lines", h.Billing.AddToCart)
		billing.DELETE("/sessions/:session_id/lines/:index", h.Billing.RemoveFromCart)
		billing.POST("/sessions/:session_id/checkout", h.Billing.Checkout)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/daily/export", h.Report.ExportDaily)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/billing-console/internal/config"
	"github.com/sangkips/billing-console/internal/presentation/http/handler"
	"github.com/sangkips/billing-console/internal/presentation/http/middleware"
	"github.com/sangkips/billing-console/pkg/auth"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Console *handler.ConsoleHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Tokens      *auth.TokenManager
	Cfg         *config.Config
	Log         *zap.Logger
	RateLimiter *middleware.OperatorRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"service":    deps.Cfg.App.Name,
			"rate_limit": deps.RateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Login is rate limited by client IP
		authGroup := v1.Group("/auth")
		authGroup.Use(deps.RateLimiter.Middleware())
		authGroup.POST("/login", h.Auth.Login)

		console := v1.Group("/console")
		console.Use(middleware.AuthMiddleware(deps.Tokens))
		console.Use(deps.RateLimiter.Middleware())
		registerConsoleRoutes(console, h)
	}

	return router
}

func registerConsoleRoutes(console *gin.RouterGroup, h *Handlers) {
	console.GET("", h.Console.GetScreen)

	// Line items
	console.POST("/rows", h.Console.AddRow)
	console.PUT("/rows/:index", h.Console.UpdateRow)
	console.DELETE("/rows/:index", h.Console.RemoveRow)

	// Payment
	console.PUT("/denominations/:value", h.Console.SetDenomination)
	console.PUT("/payment", h.Console.SetPayment)

	// Workflows
	console.POST("/submit", h.Console.Submit)
	console.POST("/reset", h.Console.Reset)
	console.POST("/history", h.Console.FetchHistory)
	console.GET("/history.html", h.Console.HistoryHTML)

	// Invoice
	console.GET("/invoice", h.Console.GetInvoice)
	console.GET("/invoice.html", h.Console.InvoiceHTML)
	console.GET("/invoice.pdf", h.Console.InvoicePDF)
	console.POST("/invoice/print", h.Printer.PrintLastInvoice)
	console.GET("/purchases/:id", h.Console.LookupPurchase)

	// Printer
	console.GET("/printer", h.Printer.GetStatus)
}

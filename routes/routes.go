package routes

import (
	"net/http"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers aggregates every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Cart      *handlers.CartHandler
	Discount  *handlers.DiscountHandler
	Payment   *handlers.PaymentHandler
	Product   *handlers.ProductHandler
	Analytics *handlers.AnalyticsHandler
}

// Setup mounts all API routes under /api/v1 plus the health endpoint.
func Setup(engine *gin.Engine, h *Handlers, jwtSecret string) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := engine.Group("/api/v1")
	SetupAuthRoutes(api, h.Auth, jwtSecret)
	SetupCartRoutes(api, h.Cart, jwtSecret)
	SetupDiscountRoutes(api, h.Discount, jwtSecret)
	SetupPaymentRoutes(api, h.Payment, jwtSecret)
	SetupProductRoutes(api, h.Product, h.Analytics, jwtSecret)
}

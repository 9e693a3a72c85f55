package routes

import (
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/handlers"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(router *gin.RouterGroup, productHandler *handlers.ProductHandler, analyticsHandler *handlers.AnalyticsHandler, jwtSecret string) {
	// Browsing endpoints stay open so the storefront works pre-login.
	public := router.Group("/public/products")
	{
		public.GET("/search", productHandler.Search)
		public.GET("/category/:category", productHandler.SearchByCategory)
		public.GET("/item/:itemId", productHandler.GetExternalItem)
	}

	products := router.Group("/products")
	products.Use(middleware.AuthRequired(jwtSecret))
	{
		products.GET("/search", productHandler.Search)
		products.GET("/category/:category", productHandler.SearchByCategory)
		products.GET("/item/:itemId", productHandler.GetExternalItem)
		products.GET("/local", productHandler.SearchLocal)
		products.GET("/:productId", productHandler.GetProduct)
		products.POST("/analyze-image", productHandler.AnalyzeImage)

		admin := products.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("", productHandler.CreateProduct)
		}
	}

	analytics := router.Group("/analytics")
	analytics.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		analytics.GET("/growth", analyticsHandler.GrowthReport)
		analytics.GET("/user-seller-growth", analyticsHandler.UserSellerGrowth)
	}
}

package routes

import (
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/handlers"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCartRoutes(router *gin.RouterGroup, cartHandler *handlers.CartHandler, jwtSecret string) {
	cart := router.Group("/cart")
	cart.Use(middleware.AuthRequired(jwtSecret))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/summary", cartHandler.GetSummary)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items", cartHandler.UpdateItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

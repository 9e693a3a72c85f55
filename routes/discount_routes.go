package routes

import (
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/handlers"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupDiscountRoutes(router *gin.RouterGroup, discountHandler *handlers.DiscountHandler, jwtSecret string) {
	discounts := router.Group("/discounts")
	discounts.Use(middleware.AuthRequired(jwtSecret))
	{
		discounts.GET("/available", discountHandler.ListAvailable)
		discounts.GET("/my", discountHandler.ListAssigned)
		discounts.POST("/collect", discountHandler.CollectVoucher)
		discounts.POST("/collect-all", discountHandler.CollectAllVouchers)
		discounts.POST("/apply", discountHandler.ApplyDiscount)
		discounts.POST("/use/:code", discountHandler.UseDiscount)

		admin := discounts.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/generate", discountHandler.GenerateDiscounts)
			admin.POST("/assign", discountHandler.AssignToUser)
			admin.GET("/user/:username", discountHandler.ListUserVouchers)
			admin.DELETE("/:code", discountHandler.DeleteDiscount)
		}
	}
}

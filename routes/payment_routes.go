package routes

import (
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/handlers"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, jwtSecret string) {
	payments := router.Group("/payments")
	payments.Use(middleware.AuthRequired(jwtSecret))
	{
		payments.GET("/methods", paymentHandler.SupportedMethods)
		payments.POST("", paymentHandler.CreatePayment)
		payments.POST("/:paymentId/process", paymentHandler.ProcessPayment)
		payments.GET("/:paymentId", paymentHandler.GetPayment)
		payments.GET("", paymentHandler.ListMyPayments)
		payments.POST("/:paymentId/cancel", paymentHandler.CancelPayment)
		payments.GET("/stats", paymentHandler.MyStats)

		admin := payments.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/all", paymentHandler.ListAllPayments)
			admin.GET("/overview", paymentHandler.StatusOverview)
			admin.POST("/:paymentId/refund", paymentHandler.RefundPayment)
			admin.PUT("/:paymentId/shipping", paymentHandler.UpdateShippingStatus)
			admin.GET("/shipping/:status", paymentHandler.ListByShippingStatus)
		}
	}
}

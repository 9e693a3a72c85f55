package handlers

import (
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) GrowthReport(c *gin.Context) {
	report, err := h.analyticsService.GrowthReport(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Growth report", report)
}

func (h *AnalyticsHandler) UserSellerGrowth(c *gin.Context) {
	series, err := h.analyticsService.UserSellerGrowth(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "User and seller growth", series)
}

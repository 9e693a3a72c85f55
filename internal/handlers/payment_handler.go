package handlers

import (
	"errors"
	"net/http"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/validators"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) SupportedMethods(c *gin.Context) {
	utils.SuccessResponse(c, "Supported payment methods", gin.H{
		"methods": h.paymentService.SupportedMethods(),
	})
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	username := middleware.GetUsername(c)

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateCreatePaymentRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), username, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.CreatedResponse(c, "Payment created", payment)
}

func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	username := middleware.GetUsername(c)
	paymentID := c.Param("paymentId")

	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), username, paymentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment processed", payment)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	username := middleware.GetUsername(c)
	paymentID := c.Param("paymentId")

	payment, err := h.paymentService.GetPayment(c.Request.Context(), username, paymentID, middleware.IsAdmin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment retrieved", payment)
}

func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	username := middleware.GetUsername(c)
	params := utils.GetPaginationParams(c)

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), username, params.GetLimit(), params.GetSkip())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments retrieved", payments, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(payments),
	})
}

func (h *PaymentHandler) ListAllPayments(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.PaymentStatus(c.Query("status"))

	payments, total, err := h.paymentService.ListAllPayments(c.Request.Context(), status, params.GetLimit(), params.GetSkip())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments retrieved", payments, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(payments),
	})
}

func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	username := middleware.GetUsername(c)
	paymentID := c.Param("paymentId")

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), username, paymentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment cancelled", payment)
}

func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID := c.Param("paymentId")

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.RefundPayment(c.Request.Context(), paymentID, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment refunded", payment)
}

func (h *PaymentHandler) UpdateShippingStatus(c *gin.Context) {
	paymentID := c.Param("paymentId")

	var req models.UpdateShippingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateShippingStatus(req.ShippingStatus); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	payment, err := h.paymentService.UpdateShippingStatus(c.Request.Context(), paymentID, req.ShippingStatus)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Shipping status updated", payment)
}

func (h *PaymentHandler) ListByShippingStatus(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.ShippingStatus(c.Param("status"))

	if err := validators.ValidateShippingStatus(status); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	payments, total, err := h.paymentService.ListByShippingStatus(c.Request.Context(), status, params.GetLimit(), params.GetSkip())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments retrieved", payments, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(payments),
	})
}

func (h *PaymentHandler) StatusOverview(c *gin.Context) {
	overview, err := h.paymentService.StatusOverview(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Payment status overview", overview)
}

func (h *PaymentHandler) MyStats(c *gin.Context) {
	username := middleware.GetUsername(c)

	stats, err := h.paymentService.UserStats(c.Request.Context(), username)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Payment stats retrieved", stats)
}

func (h *PaymentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPaymentNotFound):
		utils.NotFoundResponse(c, "Payment")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	case errors.Is(err, services.ErrPaymentNotOwned):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrPaymentNotPending),
		errors.Is(err, services.ErrPaymentNotCancellable),
		errors.Is(err, services.ErrPaymentNotRefundable):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrPaymentDeclined):
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", err.Error())
	case errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrEmptyPaymentItems),
		errors.Is(err, services.ErrInvalidShippingChange),
		errors.Is(err, services.ErrDiscountNotFound),
		errors.Is(err, services.ErrDiscountExpired),
		errors.Is(err, services.ErrDiscountExhausted),
		errors.Is(err, services.ErrDiscountUsed):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}

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

type DiscountHandler struct {
	discountService services.DiscountService
}

func NewDiscountHandler(discountService services.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// GenerateDiscounts is admin-only: it mints a voucher batch and
// broadcasts it to every user.
func (h *DiscountHandler) GenerateDiscounts(c *gin.Context) {
	var req models.GenerateDiscountsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateGenerateDiscountsRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	req.AssignedBy = middleware.GetUsername(c)

	result, err := h.discountService.GenerateDiscounts(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrCodeGeneration) {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "CODE_GENERATION", err.Error())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Discount codes generated", result)
}

func (h *DiscountHandler) ListAvailable(c *gin.Context) {
	username := middleware.GetUsername(c)

	vouchers, err := h.discountService.ListAvailable(c.Request.Context(), username)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Available vouchers retrieved", vouchers)
}

func (h *DiscountHandler) ListAssigned(c *gin.Context) {
	username := middleware.GetUsername(c)

	vouchers, err := h.discountService.ListAssigned(c.Request.Context(), username)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Assigned vouchers retrieved", vouchers)
}

// ListUserVouchers is the admin view of the vouchers assigned to a
// specific user.
func (h *DiscountHandler) ListUserVouchers(c *gin.Context) {
	username := c.Param("username")

	vouchers, err := h.discountService.ListAssignedForUser(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "User vouchers retrieved", gin.H{
		"username":       username,
		"total_assigned": len(vouchers),
		"discounts":      vouchers,
	})
}

func (h *DiscountHandler) CollectVoucher(c *gin.Context) {
	username := middleware.GetUsername(c)

	var req models.CollectDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateCollectDiscountRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	voucher, err := h.discountService.CollectVoucher(c.Request.Context(), username, req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Voucher collected", voucher)
}

func (h *DiscountHandler) CollectAllVouchers(c *gin.Context) {
	username := middleware.GetUsername(c)

	vouchers, err := h.discountService.CollectAllVouchers(c.Request.Context(), username)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vouchers collected", gin.H{
		"collected_count": len(vouchers),
		"vouchers":        vouchers,
	})
}

// ApplyDiscount previews codes against an amount without consuming
// them. Codes the caller holds resolve through their assignment first.
func (h *DiscountHandler) ApplyDiscount(c *gin.Context) {
	username := middleware.GetUsername(c)

	var req models.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateApplyDiscountRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	previews := make([]*services.DiscountPreview, 0, len(req.Codes))
	running := req.Amount
	for _, code := range req.Codes {
		preview, err := h.discountService.ApplyAssignedDiscount(c.Request.Context(), username, code, running)
		if err != nil {
			h.writeError(c, err)
			return
		}
		running = preview.FinalAmount
		previews = append(previews, preview)
	}

	utils.SuccessResponse(c, "Discount applied", gin.H{
		"original_amount": req.Amount,
		"final_amount":    running,
		"previews":        previews,
	})
}

func (h *DiscountHandler) UseDiscount(c *gin.Context) {
	username := middleware.GetUsername(c)
	code := c.Param("code")

	if err := h.discountService.UseDiscount(c.Request.Context(), username, code); err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Discount used", gin.H{"code": code})
}

func (h *DiscountHandler) AssignToUser(c *gin.Context) {
	adminUser := middleware.GetUsername(c)

	var req struct {
		Username string `json:"username" binding:"required"`
		Code     string `json:"code" binding:"required"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := h.discountService.AssignToUser(c.Request.Context(), adminUser, req.Username, req.Code, req.Notes); err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Discount assigned", gin.H{
		"username": req.Username,
		"code":     req.Code,
	})
}

func (h *DiscountHandler) DeleteDiscount(c *gin.Context) {
	code := c.Param("code")

	if err := h.discountService.DeleteDiscount(c.Request.Context(), code); err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Discount deleted", nil)
}

func (h *DiscountHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDiscountNotFound):
		utils.NotFoundResponse(c, "Discount code")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	case errors.Is(err, services.ErrAlreadyCollected):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrDiscountExpired),
		errors.Is(err, services.ErrDiscountExhausted),
		errors.Is(err, services.ErrDiscountUsed):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}

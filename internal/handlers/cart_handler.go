package handlers

import (
	"errors"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/validators"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	username := middleware.GetUsername(c)

	cart, err := h.cartService.GetCart(c.Request.Context(), username)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Cart retrieved", cart)
}

func (h *CartHandler) GetSummary(c *gin.Context) {
	username := middleware.GetUsername(c)

	summary, err := h.cartService.GetCartSummary(c.Request.Context(), username)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Cart summary retrieved", summary)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	username := middleware.GetUsername(c)

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateAddCartItemRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), username, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item added to cart", cart)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	username := middleware.GetUsername(c)

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateUpdateCartItemRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), username, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart item updated", cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	username := middleware.GetUsername(c)
	productID := c.Param("productId")
	size := c.Query("size")
	color := c.Query("color")

	cart, err := h.cartService.RemoveItem(c.Request.Context(), username, productID, size, color)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item removed from cart", cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	username := middleware.GetUsername(c)

	if err := h.cartService.ClearCart(c.Request.Context(), username); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Cart cleared", nil)
}

func (h *CartHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartItemNotFound):
		utils.NotFoundResponse(c, "Cart item")
	case errors.Is(err, services.ErrQuantityExceeded),
		errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}

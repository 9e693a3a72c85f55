package handlers

import (
	"errors"
	"strconv"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Search proxies the external clothing listings provider.
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := h.productService.SearchExternal(c.Request.Context(), query, limit)
	if err != nil {
		if errors.Is(err, services.ErrEmptySearchQuery) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Search results", gin.H{
		"query":    query,
		"count":    len(products),
		"products": products,
	})
}

// SearchByCategory browses the external catalog by clothing category.
func (h *ProductHandler) SearchByCategory(c *gin.Context) {
	category := c.Param("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := h.productService.SearchExternal(c.Request.Context(), category+" clothes", limit)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Category results", gin.H{
		"category": category,
		"count":    len(products),
		"products": products,
	})
}

// GetExternalItem fetches a single listing from the external provider.
func (h *ProductHandler) GetExternalItem(c *gin.Context) {
	item, err := h.productService.GetExternalItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "Item")
		case errors.Is(err, services.ErrInvalidProductID):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Item details", item)
}

// SearchLocal queries the marketplace's own catalog.
func (h *ProductHandler) SearchLocal(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	query := c.Query("q")

	filters := map[string]interface{}{}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}
	if gender := c.Query("gender"); gender != "" {
		filters["gender"] = gender
	}
	if season := c.Query("season"); season != "" {
		filters["season"] = season
	}

	products, total, err := h.productService.SearchLocal(c.Request.Context(), query, filters, params.GetLimit(), params.GetSkip())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Products retrieved", products, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(products),
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidProductID) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, "Product retrieved", product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&product); err != nil {
		utils.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		return
	}

	if err := h.productService.CreateProduct(c.Request.Context(), &product); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Product created", product)
}

// AnalyzeImage tags a clothing photo with AI and returns matching
// listings.
func (h *ProductHandler) AnalyzeImage(c *gin.Context) {
	var req models.AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	result, err := h.productService.AnalyzeImage(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImageData) {
			utils.BadRequestResponse(c, err.Error())
		} else {
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Image analyzed", result)
}

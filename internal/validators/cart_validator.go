package validators

import (
	"fmt"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
)

func ValidateAddCartItemRequest(req *models.AddCartItemRequest) error {
	if req.UnitPrice <= 0 {
		return fmt.Errorf("unit price must be positive")
	}
	if req.Quantity < 1 || req.Quantity > utils.MaxQuantityPerLine {
		return fmt.Errorf("quantity must be between 1 and %d", utils.MaxQuantityPerLine)
	}
	return utils.ValidateStruct(req)
}

func ValidateUpdateCartItemRequest(req *models.UpdateCartItemRequest) error {
	if req.Quantity == nil && req.NewSize == "" && req.NewColor == "" {
		return fmt.Errorf("nothing to update: provide quantity, new_size, or new_color")
	}
	if req.Quantity != nil && (*req.Quantity < 0 || *req.Quantity > utils.MaxQuantityPerLine) {
		return fmt.Errorf("quantity must be between 0 and %d", utils.MaxQuantityPerLine)
	}
	return nil
}

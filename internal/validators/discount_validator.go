package validators

import (
	"fmt"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
)

func ValidateGenerateDiscountsRequest(req *models.GenerateDiscountsRequest) error {
	if req.Count < 0 || req.Count > 100 {
		return fmt.Errorf("count must be between 1 and 100")
	}
	if req.ExpiryDays < 0 || req.ExpiryDays > 365 {
		return fmt.Errorf("expiry_days must be between 1 and 365")
	}
	return nil
}

func ValidateCollectDiscountRequest(req *models.CollectDiscountRequest) error {
	if !utils.IsValidDiscountCode(req.Code) {
		return fmt.Errorf("invalid discount code format")
	}
	return nil
}

func ValidateApplyDiscountRequest(req *models.ApplyDiscountRequest) error {
	if len(req.Codes) == 0 {
		return fmt.Errorf("at least one discount code is required")
	}
	if len(req.Codes) > 5 {
		return fmt.Errorf("at most 5 discount codes may be applied")
	}
	for _, code := range req.Codes {
		if !utils.IsValidDiscountCode(code) {
			return fmt.Errorf("invalid discount code format: %s", code)
		}
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

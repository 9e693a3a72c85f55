package validators

import (
	"fmt"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
)

func ValidateCreatePaymentRequest(req *models.CreatePaymentRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i, item := range req.Items {
		if item.ProductID == "" || item.ProductName == "" {
			return fmt.Errorf("item %d is missing product information", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %d has an invalid quantity", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %d has a negative unit price", i)
		}
	}
	if req.BillingAddress.FullName == "" || req.BillingAddress.AddressLine1 == "" ||
		req.BillingAddress.City == "" || req.BillingAddress.Country == "" {
		return fmt.Errorf("billing address is incomplete")
	}
	for _, code := range req.DiscountCodes {
		if !utils.IsValidDiscountCode(code) {
			return fmt.Errorf("invalid discount code format: %s", code)
		}
	}
	return nil
}

func ValidateShippingStatus(status models.ShippingStatus) error {
	switch status {
	case models.ShippingStatusNotShipped, models.ShippingStatusPreparing,
		models.ShippingStatusShipped, models.ShippingStatusInTransit,
		models.ShippingStatusOutForDelivery, models.ShippingStatusDelivered,
		models.ShippingStatusReturned:
		return nil
	}
	return fmt.Errorf("unknown shipping status: %s", status)
}

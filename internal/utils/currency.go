package utils

import (
	"fmt"
	"math"
)

// Round2 rounds an amount to two decimal places (centavo precision).
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CalculateTax returns the VAT estimate for a discounted subtotal.
func CalculateTax(subtotal float64) float64 {
	return Round2(subtotal * TaxRate)
}

// CalculateShipping returns the shipping estimate, capped at ShippingCap.
func CalculateShipping(subtotal float64) float64 {
	shipping := Round2(subtotal * ShippingRate)
	return math.Min(shipping, ShippingCap)
}

func FormatCurrency(amount float64, currencyCode string) string {
	symbol := "₱"
	if currencyCode != "" && currencyCode != DefaultCurrency {
		symbol = currencyCode + " "
	}
	return fmt.Sprintf("%s%.2f", symbol, Round2(amount))
}

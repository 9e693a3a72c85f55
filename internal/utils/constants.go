package utils

import "time"

// Application Constants
const (
	AppName    = "ClimateFitAI"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "PHP"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL = 1 * time.Hour
	PasswordMinLength = 8
	PasswordMaxLength = 128
	UsernameMinLength = 3
	UsernameMaxLength = 20

	// Cart Constants
	MaxQuantityPerLine = 50
	CartTTL            = 30 * 24 * time.Hour

	// Voucher Constants
	VoucherCodeLength      = 8
	VoucherBatchSize       = 20
	VoucherCodeMaxAttempts = 100
	VoucherMinExpiryDays   = 30
	VoucherMaxExpiryDays   = 90
	ClothesVoucherShare    = 14 // out of VoucherBatchSize; remainder is shipping

	// Payment Constants
	TaxRate          = 0.12
	ShippingRate     = 0.05
	ShippingCap      = 50.0
	ProcessorLatency = 2 * time.Second
)

// Discount percentages a generated voucher may carry.
var ValidVoucherPercentages = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}

// Optional global usage caps assigned at generation time; 0 means unlimited.
var VoucherUsageLimits = []int{0, 50, 100, 200, 500}

// Response Status
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

// Collection Names
const (
	CollectionUsers     = "users"
	CollectionProducts  = "products"
	CollectionSellers   = "sellers"
	CollectionCarts     = "carts"
	CollectionPayments  = "payments"
	CollectionDiscounts = "discounts"
)

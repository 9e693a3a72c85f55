package models

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required" validate:"required,username"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,strong_password"`
	FullName string `json:"full_name" binding:"required" validate:"required,min=2,max=100"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FullName string   `json:"full_name" validate:"omitempty,min=2,max=100"`
	Gender   string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Address  *Address `json:"address"`
}

// AddCartItemRequest adds a product line to the cart.
type AddCartItemRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Brand       string  `json:"brand"`
	UnitPrice   float64 `json:"unit_price" binding:"required" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"required" validate:"required,min=1,max=50"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	ImageURL    string  `json:"image_url"`
}

// UpdateCartItemRequest changes the quantity of an existing line.
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=0,max=50"`
	NewSize   string `json:"new_size"`
	NewColor  string `json:"new_color"`
}

// GenerateDiscountsRequest configures a batch of voucher codes.
type GenerateDiscountsRequest struct {
	Count      int    `json:"count" validate:"omitempty,min=1,max=100"`
	ExpiryDays int    `json:"expiry_days" validate:"omitempty,min=1,max=365"`
	AssignedBy string `json:"-"`
}

// CollectDiscountRequest lets a user claim a public voucher.
type CollectDiscountRequest struct {
	Code string `json:"code" binding:"required" validate:"required,discount_code"`
}

// ApplyDiscountRequest previews voucher codes against an amount.
type ApplyDiscountRequest struct {
	Codes  []string `json:"codes" binding:"required" validate:"required,min=1,max=5,dive,discount_code"`
	Amount float64  `json:"amount" binding:"required" validate:"required,gt=0"`
}

// CreatePaymentRequest opens a payment aggregate from cart contents.
type CreatePaymentRequest struct {
	Items          []PaymentItem  `json:"items" binding:"required" validate:"required,min=1,dive"`
	PaymentMethod  PaymentMethod  `json:"payment_method" binding:"required"`
	BillingAddress BillingAddress `json:"billing_address" binding:"required"`
	DiscountCodes  []string       `json:"discount_codes" validate:"omitempty,max=5,dive,discount_code"`
	Notes          string         `json:"notes" validate:"omitempty,max=500"`
}

// UpdateShippingStatusRequest moves a shipment along its lifecycle.
type UpdateShippingStatusRequest struct {
	ShippingStatus ShippingStatus `json:"shipping_status" binding:"required"`
}

// AnalyzeImageRequest submits a clothing photo for tagging.
type AnalyzeImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	MimeType    string `json:"mime_type"`
}

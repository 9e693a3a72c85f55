package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string
type ShippingStatus string
type PaymentMethod string
type Currency string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
	PaymentStatusRefunded   PaymentStatus = "refunded"

	ShippingStatusNotShipped     ShippingStatus = "not_shipped"
	ShippingStatusPreparing      ShippingStatus = "preparing"
	ShippingStatusShipped        ShippingStatus = "shipped"
	ShippingStatusInTransit      ShippingStatus = "in_transit"
	ShippingStatusOutForDelivery ShippingStatus = "out_for_delivery"
	ShippingStatusDelivered      ShippingStatus = "delivered"
	ShippingStatusReturned       ShippingStatus = "returned"

	PaymentMethodGCash          PaymentMethod = "gcash"
	PaymentMethodPayMaya        PaymentMethod = "paymaya"
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
	PaymentMethodDebitCard      PaymentMethod = "debit_card"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"

	CurrencyPHP Currency = "PHP"
)

type PaymentItem struct {
	ProductID    string  `json:"product_id" bson:"product_id" validate:"required"`
	ProductName  string  `json:"product_name" bson:"product_name" validate:"required"`
	Quantity     int     `json:"quantity" bson:"quantity" validate:"required,min=1"`
	UnitPrice    float64 `json:"unit_price" bson:"unit_price" validate:"gte=0"`
	TotalPrice   float64 `json:"total_price" bson:"total_price" validate:"gte=0"`
	ProductImage string  `json:"product_image,omitempty" bson:"product_image,omitempty"`
}

type BillingAddress struct {
	FullName     string `json:"full_name" bson:"full_name" validate:"required"`
	AddressLine1 string `json:"address_line1" bson:"address_line1" validate:"required"`
	City         string `json:"city" bson:"city" validate:"required"`
	State        string `json:"state" bson:"state" validate:"required"`
	PostalCode   string `json:"postal_code" bson:"postal_code" validate:"required"`
	Country      string `json:"country" bson:"country" validate:"required"`
}

// DiscountInfo records how each voucher contributed to a payment.
type DiscountInfo struct {
	Code        string  `json:"code" bson:"code"`
	Percentage  int     `json:"percentage" bson:"percentage"`
	Amount      float64 `json:"amount" bson:"amount"`
	Description string  `json:"description" bson:"description"`
	Type        string  `json:"type" bson:"type"` // user_assigned or public
}

type Payment struct {
	ID             primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	PaymentID      string                 `json:"payment_id" bson:"payment_id"`
	UserID         string                 `json:"user_id" bson:"user_id"`
	Username       string                 `json:"username" bson:"username"`
	Items          []PaymentItem          `json:"items" bson:"items"`
	Subtotal       float64                `json:"subtotal" bson:"subtotal"`
	DiscountAmount float64                `json:"discount_amount" bson:"discount_amount" default:"0"`
	TaxAmount      float64                `json:"tax_amount" bson:"tax_amount" default:"0"`
	ShippingAmount float64                `json:"shipping_amount" bson:"shipping_amount" default:"0"`
	TotalAmount    float64                `json:"total_amount" bson:"total_amount"`
	Currency       Currency               `json:"currency" bson:"currency" default:"PHP"`
	PaymentMethod  PaymentMethod          `json:"payment_method" bson:"payment_method"`
	PaymentStatus  PaymentStatus          `json:"payment_status" bson:"payment_status" default:"pending"`
	ShippingStatus ShippingStatus         `json:"shipping_status" bson:"shipping_status" default:"not_shipped"`
	BillingAddress BillingAddress         `json:"billing_address" bson:"billing_address"`
	DiscountCodes  []string               `json:"discount_codes" bson:"discount_codes"`
	DiscountInfo   []DiscountInfo         `json:"discount_info" bson:"discount_info"`
	TransactionID  string                 `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	PaymentDetails map[string]interface{} `json:"payment_details" bson:"payment_details"`
	Notes          string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt      *time.Time             `json:"updated_at" bson:"updated_at"`
	CompletedAt    *time.Time             `json:"completed_at" bson:"completed_at"`
}

// ValidShippingTransitions maps each shipping status to the states an admin
// may move it to. Shipping is uncoupled from the payment state machine.
var ValidShippingTransitions = map[ShippingStatus][]ShippingStatus{
	ShippingStatusNotShipped:     {ShippingStatusPreparing, ShippingStatusReturned},
	ShippingStatusPreparing:      {ShippingStatusShipped, ShippingStatusReturned},
	ShippingStatusShipped:        {ShippingStatusInTransit, ShippingStatusReturned},
	ShippingStatusInTransit:      {ShippingStatusOutForDelivery, ShippingStatusReturned},
	ShippingStatusOutForDelivery: {ShippingStatusDelivered, ShippingStatusReturned},
	ShippingStatusDelivered:      {ShippingStatusReturned},
	ShippingStatusReturned:       {},
}

// CanShipTo reports whether moving from the current shipping status to next
// is allowed.
func (p *Payment) CanShipTo(next ShippingStatus) bool {
	for _, s := range ValidShippingTransitions[p.ShippingStatus] {
		if s == next {
			return true
		}
	}
	return false
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID   string  `json:"product_id" bson:"product_id" validate:"required"`
	ProductName string  `json:"product_name" bson:"product_name" validate:"required"`
	Brand       string  `json:"brand" bson:"brand"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price" validate:"gte=0"`
	Quantity    int     `json:"quantity" bson:"quantity" validate:"required,min=1,max=50"`
	Size        string  `json:"size,omitempty" bson:"size,omitempty"`
	Color       string  `json:"color,omitempty" bson:"color,omitempty"`
	ImageURL    string  `json:"image_url,omitempty" bson:"image_url,omitempty"`
	TotalPrice  float64 `json:"total_price" bson:"total_price"`
}

// Matches reports whether the line refers to the same product variant.
func (i *CartItem) Matches(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

type Cart struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CartID     string             `json:"cart_id" bson:"cart_id"`
	UserID     string             `json:"user_id" bson:"user_id"`
	Username   string             `json:"username" bson:"username"`
	Items      []CartItem         `json:"items" bson:"items"`
	TotalItems int                `json:"total_items" bson:"total_items"`
	Subtotal   float64            `json:"subtotal" bson:"subtotal"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
	ExpiresAt  time.Time          `json:"expires_at" bson:"expires_at"`
}

type CartSummary struct {
	TotalItems        int     `json:"total_items"`
	Subtotal          float64 `json:"subtotal"`
	EstimatedTax      float64 `json:"estimated_tax"`
	EstimatedShipping float64 `json:"estimated_shipping"`
	EstimatedTotal    float64 `json:"estimated_total"`
}

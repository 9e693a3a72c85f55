package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	Description    string             `json:"description" bson:"description"`
	Category       string             `json:"category" bson:"category"`
	PricePHP       float64            `json:"price_php" bson:"price_php" validate:"gte=0"`
	SizesAvailable []string           `json:"sizes_available" bson:"sizes_available"`
	Quantity       int                `json:"quantity" bson:"quantity"`
	Color          string             `json:"color" bson:"color"`
	Material       string             `json:"material" bson:"material"`
	Style          string             `json:"style" bson:"style"`
	Season         string             `json:"season" bson:"season"`
	Gender         string             `json:"gender" bson:"gender"`
	BrandStyle     string             `json:"brand_style" bson:"brand_style"`
	ImagePath      string             `json:"image_path" bson:"image_path"`
	SellerID       string             `json:"seller_id" bson:"seller_id"`
	IsActive       bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type Seller struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Email     string             `json:"email" bson:"email"`
	Rating    float64            `json:"rating" bson:"rating"`
	IsActive  bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID                      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username                string             `json:"username" bson:"username" validate:"required,min=3,max=20"`
	Email                   string             `json:"email" bson:"email" validate:"required,email"`
	Password                string             `json:"-" bson:"password"`
	FullName                string             `json:"full_name" bson:"full_name" validate:"required,min=2"`
	Gender                  string             `json:"gender" bson:"gender"`
	Role                    UserRole           `json:"role" bson:"role" default:"user"`
	IsActive                bool               `json:"is_active" bson:"is_active" default:"true"`
	WelcomeVouchersAssigned bool               `json:"welcome_vouchers_assigned" bson:"welcome_vouchers_assigned" default:"false"`
	Address                 *Address           `json:"address,omitempty" bson:"address,omitempty"`
	LastLoginAt             *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt               time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt               time.Time          `json:"updated_at" bson:"updated_at"`
}

type Address struct {
	Street        string `json:"street" bson:"street"`
	Barangay      string `json:"barangay" bson:"barangay"`
	City          string `json:"city" bson:"city"`
	Province      string `json:"province" bson:"province"`
	Region        string `json:"region" bson:"region"`
	PostalCode    string `json:"postal_code" bson:"postal_code"`
	Country       string `json:"country" bson:"country" default:"Philippines"`
	IsDefault     bool   `json:"is_default" bson:"is_default" default:"false"`
	ContactNumber string `json:"contact_number" bson:"contact_number"`
	RecipientName string `json:"recipient_name" bson:"recipient_name"`
	AddressType   string `json:"address_type" bson:"address_type" default:"Home"`
}

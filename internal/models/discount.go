package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VoucherType string
type AssignmentType string

const (
	VoucherTypeClothes  VoucherType = "clothes"
	VoucherTypeShipping VoucherType = "shipping"

	AssignmentTypeGlobal  AssignmentType = "global_distribution"
	AssignmentTypeWelcome AssignmentType = "welcome_bonus"
	AssignmentTypeManual  AssignmentType = "manual"
	AssignmentTypeCollect AssignmentType = "self_collected"
)

// Assignment is embedded in a Discount document; at most one per
// (discount_code, username) pair.
type Assignment struct {
	Username       string         `json:"username" bson:"username"`
	DiscountCode   string         `json:"discount_code" bson:"discount_code"`
	CollectedAt    time.Time      `json:"collected_at" bson:"collected_at"`
	AssignedAt     time.Time      `json:"assigned_at" bson:"assigned_at"`
	AssignedBy     string         `json:"assigned_by" bson:"assigned_by"`
	AssignmentType AssignmentType `json:"assignment_type" bson:"assignment_type"`
	IsUsed         bool           `json:"is_used" bson:"is_used"`
	UsedAt         *time.Time     `json:"used_at" bson:"used_at"`
	Notes          string         `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Discount struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code                string             `json:"code" bson:"code" validate:"required,min=3,max=20"`
	Percentage          int                `json:"percentage" bson:"percentage" validate:"required,min=1,max=100"`
	Description         string             `json:"description" bson:"description"`
	DetailedDescription string             `json:"detailed_description,omitempty" bson:"detailed_description,omitempty"`
	IsActive            bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	ExpiresAt           *time.Time         `json:"expires_at" bson:"expires_at"`
	UsageLimit          *int               `json:"usage_limit" bson:"usage_limit"`
	UsedCount           int                `json:"used_count" bson:"used_count" default:"0"`
	VoucherType         VoucherType        `json:"voucher_type" bson:"voucher_type" default:"clothes"`
	UserAssignments     []Assignment       `json:"user_assignments" bson:"user_assignments"`
}

// IsExpired reports whether the discount's expiry window has passed.
func (d *Discount) IsExpired(now time.Time) bool {
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}

// LimitReached reports whether the global usage cap has been consumed.
func (d *Discount) LimitReached() bool {
	return d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit
}

// AssignmentFor returns the embedded assignment for username, or nil.
func (d *Discount) AssignmentFor(username string) *Assignment {
	for i := range d.UserAssignments {
		if d.UserAssignments[i].Username == username {
			return &d.UserAssignments[i]
		}
	}
	return nil
}

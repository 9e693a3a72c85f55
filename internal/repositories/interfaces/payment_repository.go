package interfaces

import (
	"context"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
)

// StatusCount is a single bucket of the payment status overview aggregation.
type StatusCount struct {
	Status string  `bson:"_id" json:"status"`
	Count  int64   `bson:"count" json:"count"`
	Amount float64 `bson:"amount" json:"total_amount"`
}

// UserPaymentStats summarizes a user's completed payment history.
type UserPaymentStats struct {
	TotalPayments   int64   `bson:"total_payments" json:"total_payments"`
	CompletedCount  int64   `bson:"completed_count" json:"completed_count"`
	TotalSpent      float64 `bson:"total_spent" json:"total_spent"`
	TotalDiscounted float64 `bson:"total_discounted" json:"total_discounted"`
}

type PaymentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, payment *models.Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	Update(ctx context.Context, paymentID string, updates map[string]interface{}) error

	// State transitions. BeginProcessing atomically moves a PENDING payment
	// to PROCESSING and returns the claimed document; it reports false when
	// the payment was not in PENDING.
	BeginProcessing(ctx context.Context, paymentID string) (*models.Payment, bool, error)
	MarkCompleted(ctx context.Context, paymentID, transactionID string, details map[string]interface{}) error
	MarkFailed(ctx context.Context, paymentID, reason string) error
	UpdateStatusWhere(ctx context.Context, paymentID string, from []models.PaymentStatus, to models.PaymentStatus, notes string) (bool, error)
	SetShippingStatus(ctx context.Context, paymentID string, status models.ShippingStatus) error

	// Listings
	ListByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Payment, int64, error)
	ListAll(ctx context.Context, status models.PaymentStatus, limit, offset int) ([]*models.Payment, int64, error)
	ListByShippingStatus(ctx context.Context, status models.ShippingStatus, limit, offset int) ([]*models.Payment, int64, error)

	// Aggregations
	StatusOverview(ctx context.Context) ([]StatusCount, error)
	UserStats(ctx context.Context, username string) (*UserPaymentStats, error)
}

package payment

import (
	"context"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
)

// ChargeRequest carries everything the gateway needs to settle a payment.
type ChargeRequest struct {
	PaymentID string
	Amount    float64
	Currency  string
	Method    models.PaymentMethod
	Username  string
}

// ChargeResult is the gateway's verdict on a charge attempt.
type ChargeResult struct {
	Success           bool
	TransactionID     string
	AuthorizationCode string
	FailureReason     string
	Details           map[string]interface{}
}

// Gateway settles charges. The default implementation simulates a
// processor; swapping in a real one only requires satisfying this
// interface.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

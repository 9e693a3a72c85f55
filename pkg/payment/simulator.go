package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
)

// successRates mirror observed acceptance rates per payment method.
// Cash on delivery never fails at charge time.
var successRates = map[models.PaymentMethod]float64{
	models.PaymentMethodCreditCard:     0.95,
	models.PaymentMethodDebitCard:      0.95,
	models.PaymentMethodGCash:          0.94,
	models.PaymentMethodPayMaya:        0.92,
	models.PaymentMethodBankTransfer:   0.99,
	models.PaymentMethodCashOnDelivery: 1.0,
}

type simulator struct {
	latency time.Duration
}

// NewSimulator returns a Gateway that approves or declines charges by
// drawing against per-method success rates after a short latency.
func NewSimulator(latency time.Duration) Gateway {
	if latency <= 0 {
		latency = utils.ProcessorLatency
	}
	return &simulator{latency: latency}
}

func (s *simulator) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		return nil, fmt.Errorf("charge interrupted: %w", ctx.Err())
	}

	rate, ok := successRates[req.Method]
	if !ok {
		return &ChargeResult{
			Success:       false,
			FailureReason: fmt.Sprintf("unsupported payment method: %s", req.Method),
		}, nil
	}

	if utils.SecureRandomFloat() > rate {
		return &ChargeResult{
			Success:       false,
			FailureReason: "payment declined by processor",
		}, nil
	}

	return &ChargeResult{
		Success:           true,
		TransactionID:     utils.GenerateTransactionID(),
		AuthorizationCode: utils.GenerateAuthorizationCode(),
		Details: map[string]interface{}{
			"processor":    "simulated",
			"method":       string(req.Method),
			"amount":       req.Amount,
			"currency":     req.Currency,
			"processed_at": time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

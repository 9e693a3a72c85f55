package interfaces

import (
	"context"
	"time"
)

// SellerRepository reads the sellers collection. Seller onboarding
// happens outside this service; only signup counts are consumed here.
type SellerRepository interface {
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

package interfaces

import (
	"context"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
)

type CartRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	ReplaceItems(ctx context.Context, username string, items []models.CartItem, totalItems int, subtotal float64) error
	Clear(ctx context.Context, username string) error
	Delete(ctx context.Context, username string) error
}

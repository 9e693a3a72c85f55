package interfaces

import (
	"context"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
)

type DiscountRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, discount *models.Discount) error
	GetByCode(ctx context.Context, code string) (*models.Discount, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, code string, updates map[string]interface{}) error
	Delete(ctx context.Context, code string) error

	// Listings
	ListActive(ctx context.Context) ([]*models.Discount, error)
	ListForUser(ctx context.Context, username string) ([]*models.Discount, error)

	// Assignment operations. PushAssignment must be a no-op when the user
	// already holds the code; it reports whether the assignment was added.
	PushAssignment(ctx context.Context, code string, assignment *models.Assignment) (bool, error)
	MarkAssignmentUsed(ctx context.Context, code, username string) (bool, error)

	// Usage counting. IncrementUsage fails closed when the usage limit
	// has been reached; it reports whether the counter advanced.
	IncrementUsage(ctx context.Context, code string) (bool, error)
}

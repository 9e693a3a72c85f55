package interfaces

import (
	"context"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	Search(ctx context.Context, query string, filters map[string]interface{}, limit, offset int) ([]*models.Product, int64, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*models.Product, int64, error)

	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

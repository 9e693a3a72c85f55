package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type sellerRepository struct {
	collection *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) interfaces.SellerRepository {
	return &sellerRepository{
		collection: db.Collection(utils.CollectionSellers),
	}
}

func (r *sellerRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count sellers: %w", err)
	}
	return count, nil
}

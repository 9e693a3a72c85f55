package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type cartRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewCartRepository(db *mongo.Database, cache services.CacheService) interfaces.CartRepository {
	return &cartRepository{
		collection: db.Collection(utils.CollectionCarts),
		cache:      cache,
	}
}

func (r *cartRepository) GetByUsername(ctx context.Context, username string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	_, err := r.collection.InsertOne(ctx, cart)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("cart already exists: %w", err)
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *cartRepository) ReplaceItems(ctx context.Context, username string, items []models.CartItem, totalItems int, subtotal float64) error {
	if items == nil {
		items = []models.CartItem{}
	}

	update := bson.M{"$set": bson.M{
		"items":       items,
		"total_items": totalItems,
		"subtotal":    subtotal,
		"updated_at":  time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return fmt.Errorf("failed to update cart items: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("cart not found")
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, username string) error {
	return r.ReplaceItems(ctx, username, []models.CartItem{}, 0, 0)
}

func (r *cartRepository) Delete(ctx context.Context, username string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

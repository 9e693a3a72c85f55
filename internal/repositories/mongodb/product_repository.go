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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewProductRepository(db *mongo.Database, cache services.CacheService) interfaces.ProductRepository {
	return &productRepository{
		collection: db.Collection(utils.CollectionProducts),
		cache:      cache,
	}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (r *productRepository) Search(ctx context.Context, query string, filters map[string]interface{}, limit, offset int) ([]*models.Product, int64, error) {
	filter := bson.M{"is_active": true}
	if query != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"description": bson.M{"$regex": query, "$options": "i"}},
			{"category": bson.M{"$regex": query, "$options": "i"}},
			{"brand_style": bson.M{"$regex": query, "$options": "i"}},
		}
	}
	for key, value := range filters {
		filter[key] = value
	}

	return r.list(ctx, filter, limit, offset)
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*models.Product, int64, error) {
	return r.list(ctx, bson.M{"seller_id": sellerID, "is_active": true}, limit, offset)
}

func (r *productRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*models.Product, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (r *productRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

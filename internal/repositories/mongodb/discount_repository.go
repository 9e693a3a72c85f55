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

type discountRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewDiscountRepository(db *mongo.Database, cache services.CacheService) interfaces.DiscountRepository {
	return &discountRepository{
		collection: db.Collection(utils.CollectionDiscounts),
		cache:      cache,
	}
}

func (r *discountRepository) Create(ctx context.Context, discount *models.Discount) error {
	discount.CreatedAt = time.Now()
	if discount.UserAssignments == nil {
		discount.UserAssignments = []models.Assignment{}
	}

	_, err := r.collection.InsertOne(ctx, discount)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("discount code already exists: %w", err)
		}
		return fmt.Errorf("failed to create discount: %w", err)
	}

	r.invalidateListings(ctx)
	return nil
}

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&discount)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("discount not found")
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}
	return &discount, nil
}

func (r *discountRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		return false, fmt.Errorf("failed to check discount code: %w", err)
	}
	return count > 0, nil
}

func (r *discountRepository) Update(ctx context.Context, code string, updates map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update discount: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("discount not found")
	}

	r.invalidateListings(ctx)
	return nil
}

func (r *discountRepository) Delete(ctx context.Context, code string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("discount not found")
	}

	r.invalidateListings(ctx)
	return nil
}

func (r *discountRepository) ListActive(ctx context.Context) ([]*models.Discount, error) {
	now := time.Now()
	filter := bson.M{
		"is_active": true,
		"$or": []bson.M{
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": now}},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	defer cursor.Close(ctx)

	var discounts []*models.Discount
	if err := cursor.All(ctx, &discounts); err != nil {
		return nil, fmt.Errorf("failed to decode discounts: %w", err)
	}
	return discounts, nil
}

func (r *discountRepository) ListForUser(ctx context.Context, username string) ([]*models.Discount, error) {
	filter := bson.M{
		"is_active":                 true,
		"user_assignments.username": username,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list user discounts: %w", err)
	}
	defer cursor.Close(ctx)

	var discounts []*models.Discount
	if err := cursor.All(ctx, &discounts); err != nil {
		return nil, fmt.Errorf("failed to decode user discounts: %w", err)
	}
	return discounts, nil
}

// PushAssignment adds the assignment only when the user does not already
// hold the code, so repeated grants stay idempotent.
func (r *discountRepository) PushAssignment(ctx context.Context, code string, assignment *models.Assignment) (bool, error) {
	filter := bson.M{
		"code":                      code,
		"user_assignments.username": bson.M{"$ne": assignment.Username},
	}
	update := bson.M{
		"$push": bson.M{"user_assignments": assignment},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to assign discount: %w", err)
	}

	if result.ModifiedCount > 0 {
		r.invalidateListings(ctx)
	}
	return result.ModifiedCount > 0, nil
}

// MarkAssignmentUsed flips the user's assignment to used, but only when it
// is still unused. The filter makes double consumption a no-op.
func (r *discountRepository) MarkAssignmentUsed(ctx context.Context, code, username string) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"code": code,
		"user_assignments": bson.M{"$elemMatch": bson.M{
			"username": username,
			"is_used":  false,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"user_assignments.$.is_used": true,
			"user_assignments.$.used_at": now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark assignment used: %w", err)
	}

	if result.ModifiedCount > 0 {
		r.invalidateListings(ctx)
	}
	return result.ModifiedCount > 0, nil
}

// IncrementUsage advances used_count unless the usage limit has been
// reached. Unlimited codes (usage_limit nil or 0) always advance.
func (r *discountRepository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	filter := bson.M{
		"code": code,
		"$or": []bson.M{
			{"usage_limit": nil},
			{"usage_limit": 0},
			{"$expr": bson.M{"$lt": []string{"$used_count", "$usage_limit"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"used_count": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to increment discount usage: %w", err)
	}

	if result.ModifiedCount > 0 {
		r.invalidateListings(ctx)
	}
	return result.ModifiedCount > 0, nil
}

func (r *discountRepository) invalidateListings(ctx context.Context) {
	if r.cache != nil {
		r.cache.DeletePattern(ctx, "discounts:*")
	}
}

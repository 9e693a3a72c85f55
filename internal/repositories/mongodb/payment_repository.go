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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewPaymentRepository(db *mongo.Database, cache services.CacheService) interfaces.PaymentRepository {
	return &paymentRepository{
		collection: db.Collection(utils.CollectionPayments),
		cache:      cache,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("payment already exists: %w", err)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, paymentID string, updates map[string]interface{}) error {
	now := time.Now()
	updates["updated_at"] = now

	result, err := r.collection.UpdateOne(ctx, bson.M{"payment_id": paymentID}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}

// BeginProcessing claims a PENDING payment for settlement. The filter on
// payment_status makes concurrent settlement attempts race safely: only
// one caller observes the PENDING document.
func (r *paymentRepository) BeginProcessing(ctx context.Context, paymentID string) (*models.Payment, bool, error) {
	now := time.Now()
	filter := bson.M{
		"payment_id":     paymentID,
		"payment_status": models.PaymentStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentStatusProcessing,
		"updated_at":     now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var payment models.Payment
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to claim payment for processing: %w", err)
	}
	return &payment, true, nil
}

func (r *paymentRepository) MarkCompleted(ctx context.Context, paymentID, transactionID string, details map[string]interface{}) error {
	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusCompleted,
		"transaction_id": transactionID,
		"completed_at":   now,
	}
	if details != nil {
		updates["payment_details"] = details
	}
	return r.Update(ctx, paymentID, updates)
}

func (r *paymentRepository) MarkFailed(ctx context.Context, paymentID, reason string) error {
	return r.Update(ctx, paymentID, map[string]interface{}{
		"payment_status": models.PaymentStatusFailed,
		"notes":          reason,
	})
}

func (r *paymentRepository) UpdateStatusWhere(ctx context.Context, paymentID string, from []models.PaymentStatus, to models.PaymentStatus, notes string) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"payment_id":     paymentID,
		"payment_status": bson.M{"$in": from},
	}
	set := bson.M{
		"payment_status": to,
		"updated_at":     now,
	}
	if notes != "" {
		set["notes"] = notes
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *paymentRepository) SetShippingStatus(ctx context.Context, paymentID string, status models.ShippingStatus) error {
	return r.Update(ctx, paymentID, map[string]interface{}{
		"shipping_status": status,
	})
}

func (r *paymentRepository) ListByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Payment, int64, error) {
	return r.list(ctx, bson.M{"username": username}, limit, offset)
}

func (r *paymentRepository) ListAll(ctx context.Context, status models.PaymentStatus, limit, offset int) ([]*models.Payment, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["payment_status"] = status
	}
	return r.list(ctx, filter, limit, offset)
}

func (r *paymentRepository) ListByShippingStatus(ctx context.Context, status models.ShippingStatus, limit, offset int) ([]*models.Payment, int64, error) {
	return r.list(ctx, bson.M{"shipping_status": status}, limit, offset)
}

func (r *paymentRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*models.Payment, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []*models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepository) StatusOverview(ctx context.Context) ([]interfaces.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":    "$payment_status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payment overview: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []interfaces.StatusCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode payment overview: %w", err)
	}
	return counts, nil
}

func (r *paymentRepository) UserStats(ctx context.Context, username string) (*interfaces.UserPaymentStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"username": username}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total_payments": bson.M{"$sum": 1},
			"completed_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", models.PaymentStatusCompleted}}, 1, 0,
			}}},
			"total_spent": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", models.PaymentStatusCompleted}}, "$total_amount", 0,
			}}},
			"total_discounted": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", models.PaymentStatusCompleted}}, "$discount_amount", 0,
			}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user payment stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []interfaces.UserPaymentStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode user payment stats: %w", err)
	}
	if len(stats) == 0 {
		return &interfaces.UserPaymentStats{}, nil
	}
	return &stats[0], nil
}

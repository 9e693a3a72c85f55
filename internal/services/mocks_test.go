package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (r *memUserRepo) seed(username string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     username + "@example.com",
		IsActive:  true,
		Role:      models.UserRoleUser,
		CreatedAt: time.Now(),
	}
	r.users[username] = user
	return user
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("user already exists")
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.users[user.Username] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (r *memUserRepo) Update(ctx context.Context, username string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return fmt.Errorf("user not found")
	}
	if v, ok := updates["full_name"].(string); ok {
		u.FullName = v
	}
	if v, ok := updates["gender"].(string); ok {
		u.Gender = v
	}
	return nil
}

func (r *memUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) SetWelcomeVouchersAssigned(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.WelcomeVouchersAssigned = true
	return nil
}

func (r *memUserRepo) ListUsernames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.users))
	for name, u := range r.users {
		if u.IsActive {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *memUserRepo) TouchLastLogin(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (r *memUserRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(start) && u.CreatedAt.Before(end) {
			count++
		}
	}
	return count, nil
}

// memDiscountRepo is an in-memory DiscountRepository.
type memDiscountRepo struct {
	mu        sync.Mutex
	discounts map[string]*models.Discount
}

func newMemDiscountRepo() *memDiscountRepo {
	return &memDiscountRepo{discounts: map[string]*models.Discount{}}
}

func (r *memDiscountRepo) Create(ctx context.Context, discount *models.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discounts[discount.Code]; ok {
		return fmt.Errorf("discount code already exists")
	}
	discount.CreatedAt = time.Now()
	r.discounts[discount.Code] = discount
	return nil
}

func (r *memDiscountRepo) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discounts[code]
	if !ok {
		return nil, fmt.Errorf("discount not found")
	}
	copied := *d
	copied.UserAssignments = append([]models.Assignment(nil), d.UserAssignments...)
	return &copied, nil
}

func (r *memDiscountRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.discounts[code]
	return ok, nil
}

func (r *memDiscountRepo) Update(ctx context.Context, code string, updates map[string]interface{}) error {
	return nil
}

func (r *memDiscountRepo) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discounts[code]; !ok {
		return fmt.Errorf("discount not found")
	}
	delete(r.discounts, code)
	return nil
}

func (r *memDiscountRepo) ListActive(ctx context.Context) ([]*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var out []*models.Discount
	for _, d := range r.discounts {
		if d.IsActive && !d.IsExpired(now) {
			copied := *d
			copied.UserAssignments = append([]models.Assignment(nil), d.UserAssignments...)
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memDiscountRepo) ListForUser(ctx context.Context, username string) ([]*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Discount
	for _, d := range r.discounts {
		if d.IsActive && d.AssignmentFor(username) != nil {
			copied := *d
			copied.UserAssignments = append([]models.Assignment(nil), d.UserAssignments...)
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memDiscountRepo) PushAssignment(ctx context.Context, code string, assignment *models.Assignment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discounts[code]
	if !ok {
		return false, fmt.Errorf("discount not found")
	}
	if d.AssignmentFor(assignment.Username) != nil {
		return false, nil
	}
	d.UserAssignments = append(d.UserAssignments, *assignment)
	return true, nil
}

func (r *memDiscountRepo) MarkAssignmentUsed(ctx context.Context, code, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discounts[code]
	if !ok {
		return false, fmt.Errorf("discount not found")
	}
	a := d.AssignmentFor(username)
	if a == nil || a.IsUsed {
		return false, nil
	}
	now := time.Now()
	a.IsUsed = true
	a.UsedAt = &now
	return true, nil
}

func (r *memDiscountRepo) IncrementUsage(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discounts[code]
	if !ok {
		return false, fmt.Errorf("discount not found")
	}
	if d.UsageLimit != nil && *d.UsageLimit > 0 && d.UsedCount >= *d.UsageLimit {
		return false, nil
	}
	d.UsedCount++
	return true, nil
}

// memCartRepo is an in-memory CartRepository.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*models.Cart{}}
}

func (r *memCartRepo) GetByUsername(ctx context.Context, username string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[username]
	if !ok {
		return nil, nil
	}
	copied := *c
	copied.Items = append([]models.CartItem(nil), c.Items...)
	return &copied, nil
}

func (r *memCartRepo) Create(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cart.Username]; ok {
		return fmt.Errorf("cart already exists")
	}
	cart.CreatedAt = time.Now()
	r.carts[cart.Username] = cart
	return nil
}

func (r *memCartRepo) ReplaceItems(ctx context.Context, username string, items []models.CartItem, totalItems int, subtotal float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[username]
	if !ok {
		return fmt.Errorf("cart not found")
	}
	c.Items = items
	c.TotalItems = totalItems
	c.Subtotal = subtotal
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memCartRepo) Clear(ctx context.Context, username string) error {
	return r.ReplaceItems(ctx, username, []models.CartItem{}, 0, 0)
}

func (r *memCartRepo) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, username)
	return nil
}

// memPaymentRepo is an in-memory PaymentRepository.
type memPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: map[string]*models.Payment{}}
}

func (r *memPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.CreatedAt = time.Now()
	r.payments[p.PaymentID] = p
	return nil
}

func (r *memPaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment not found")
	}
	copied := *p
	return &copied, nil
}

func (r *memPaymentRepo) Update(ctx context.Context, paymentID string, updates map[string]interface{}) error {
	return nil
}

func (r *memPaymentRepo) BeginProcessing(ctx context.Context, paymentID string) (*models.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok || p.PaymentStatus != models.PaymentStatusPending {
		return nil, false, nil
	}
	p.PaymentStatus = models.PaymentStatusProcessing
	copied := *p
	return &copied, true, nil
}

func (r *memPaymentRepo) MarkCompleted(ctx context.Context, paymentID, transactionID string, details map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return fmt.Errorf("payment not found")
	}
	now := time.Now()
	p.PaymentStatus = models.PaymentStatusCompleted
	p.TransactionID = transactionID
	p.PaymentDetails = details
	p.CompletedAt = &now
	return nil
}

func (r *memPaymentRepo) MarkFailed(ctx context.Context, paymentID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return fmt.Errorf("payment not found")
	}
	p.PaymentStatus = models.PaymentStatusFailed
	p.Notes = reason
	return nil
}

func (r *memPaymentRepo) UpdateStatusWhere(ctx context.Context, paymentID string, from []models.PaymentStatus, to models.PaymentStatus, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if p.PaymentStatus == f {
			p.PaymentStatus = to
			if notes != "" {
				p.Notes = notes
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *memPaymentRepo) SetShippingStatus(ctx context.Context, paymentID string, status models.ShippingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return fmt.Errorf("payment not found")
	}
	p.ShippingStatus = status
	return nil
}

func (r *memPaymentRepo) ListByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.Username == username {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memPaymentRepo) ListAll(ctx context.Context, status models.PaymentStatus, limit, offset int) ([]*models.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if status == "" || p.PaymentStatus == status {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memPaymentRepo) ListByShippingStatus(ctx context.Context, status models.ShippingStatus, limit, offset int) ([]*models.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.ShippingStatus == status {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memPaymentRepo) StatusOverview(ctx context.Context) ([]interfaces.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buckets := map[string]*interfaces.StatusCount{}
	for _, p := range r.payments {
		key := string(p.PaymentStatus)
		if buckets[key] == nil {
			buckets[key] = &interfaces.StatusCount{Status: key}
		}
		buckets[key].Count++
		buckets[key].Amount += p.TotalAmount
	}
	var out []interfaces.StatusCount
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *memPaymentRepo) UserStats(ctx context.Context, username string) (*interfaces.UserPaymentStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &interfaces.UserPaymentStats{}
	for _, p := range r.payments {
		if p.Username != username {
			continue
		}
		stats.TotalPayments++
		if p.PaymentStatus == models.PaymentStatusCompleted {
			stats.CompletedCount++
			stats.TotalSpent += p.TotalAmount
			stats.TotalDiscounted += p.DiscountAmount
		}
	}
	return stats, nil
}

// stubGateway returns scripted charge results.
type stubGateway struct {
	result *payment.ChargeResult
	err    error
	calls  int
}

func (g *stubGateway) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// memSellerRepo is an in-memory SellerRepository holding only signup
// timestamps.
type memSellerRepo struct {
	created []time.Time
}

func (r *memSellerRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	for _, ts := range r.created {
		if !ts.Before(start) && ts.Before(end) {
			count++
		}
	}
	return count, nil
}

var _ interfaces.UserRepository = (*memUserRepo)(nil)
var _ interfaces.DiscountRepository = (*memDiscountRepo)(nil)
var _ interfaces.CartRepository = (*memCartRepo)(nil)
var _ interfaces.PaymentRepository = (*memPaymentRepo)(nil)
var _ interfaces.SellerRepository = (*memSellerRepo)(nil)

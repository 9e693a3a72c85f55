package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/payment"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentNotOwned        = errors.New("payment does not belong to this user")
	ErrPaymentNotPending      = errors.New("payment is not pending")
	ErrPaymentNotCancellable  = errors.New("payment can no longer be cancelled")
	ErrPaymentNotRefundable   = errors.New("only completed payments can be refunded")
	ErrInvalidPaymentMethod   = errors.New("unsupported payment method")
	ErrInvalidShippingChange  = errors.New("invalid shipping status transition")
	ErrPaymentDeclined        = errors.New("payment was declined")
	ErrEmptyPaymentItems      = errors.New("payment must contain at least one item")
)

var supportedMethods = []models.PaymentMethod{
	models.PaymentMethodGCash,
	models.PaymentMethodPayMaya,
	models.PaymentMethodCreditCard,
	models.PaymentMethodDebitCard,
	models.PaymentMethodBankTransfer,
	models.PaymentMethodCashOnDelivery,
}

// Transactor runs a function inside a database transaction. A nil
// Transactor degrades settlement to sequential writes, which standalone
// mongod deployments require.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error)
}

type PaymentService interface {
	SupportedMethods() []models.PaymentMethod
	CreatePayment(ctx context.Context, username string, req *models.CreatePaymentRequest) (*models.Payment, error)
	ProcessPayment(ctx context.Context, username, paymentID string) (*models.Payment, error)
	GetPayment(ctx context.Context, username, paymentID string, isAdmin bool) (*models.Payment, error)
	ListPayments(ctx context.Context, username string, limit, offset int) ([]*models.Payment, int64, error)
	ListAllPayments(ctx context.Context, status models.PaymentStatus, limit, offset int) ([]*models.Payment, int64, error)
	CancelPayment(ctx context.Context, username, paymentID string) (*models.Payment, error)
	RefundPayment(ctx context.Context, paymentID, reason string) (*models.Payment, error)
	UpdateShippingStatus(ctx context.Context, paymentID string, next models.ShippingStatus) (*models.Payment, error)
	ListByShippingStatus(ctx context.Context, status models.ShippingStatus, limit, offset int) ([]*models.Payment, int64, error)
	StatusOverview(ctx context.Context) ([]interfaces.StatusCount, error)
	UserStats(ctx context.Context, username string) (*interfaces.UserPaymentStats, error)
}

type paymentService struct {
	paymentRepo     interfaces.PaymentRepository
	userRepo        interfaces.UserRepository
	cartRepo        interfaces.CartRepository
	discountService DiscountService
	gateway         payment.Gateway
	transactor      Transactor
	logger          *logger.Logger
}

func NewPaymentService(
	paymentRepo interfaces.PaymentRepository,
	userRepo interfaces.UserRepository,
	cartRepo interfaces.CartRepository,
	discountService DiscountService,
	gateway payment.Gateway,
	transactor Transactor,
	log *logger.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo:     paymentRepo,
		userRepo:        userRepo,
		cartRepo:        cartRepo,
		discountService: discountService,
		gateway:         gateway,
		transactor:      transactor,
		logger:          log,
	}
}

func (s *paymentService) SupportedMethods() []models.PaymentMethod {
	methods := make([]models.PaymentMethod, len(supportedMethods))
	copy(methods, supportedMethods)
	return methods
}

// CreatePayment opens a PENDING payment aggregate. Discount codes are
// validated and priced in, but not consumed: consumption happens only
// when settlement completes.
func (s *paymentService) CreatePayment(ctx context.Context, username string, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyPaymentItems
	}
	if !s.methodSupported(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}

	items := make([]models.PaymentItem, len(req.Items))
	subtotal := 0.0
	for i, item := range req.Items {
		item.TotalPrice = utils.Round2(item.UnitPrice * float64(item.Quantity))
		items[i] = item
		subtotal += item.TotalPrice
	}
	subtotal = utils.Round2(subtotal)

	discounts, err := s.discountService.ResolveForPayment(ctx, username, req.DiscountCodes)
	if err != nil {
		return nil, err
	}

	// Clothes vouchers reduce the merchandise subtotal; shipping
	// vouchers reduce the shipping fee computed afterwards. Tax and
	// shipping are derived from the discounted subtotal.
	discountedSubtotal := subtotal
	var infos []models.DiscountInfo
	var codes []string
	for _, d := range discounts {
		if d.VoucherType != models.VoucherTypeClothes {
			continue
		}
		amount := utils.Round2(discountedSubtotal * float64(d.Percentage) / 100)
		discountedSubtotal = utils.Round2(discountedSubtotal - amount)
		infos = append(infos, discountInfo(d, amount, username))
		codes = append(codes, d.Code)
	}

	// The shipping fee is stored undiscounted; shipping vouchers land in
	// discount_amount like clothes vouchers do, so the stored amounts
	// always satisfy total = (subtotal - discount) + tax + shipping.
	taxAmount := utils.CalculateTax(discountedSubtotal)
	shippingAmount := utils.CalculateShipping(discountedSubtotal)
	remainingShipping := shippingAmount
	for _, d := range discounts {
		if d.VoucherType != models.VoucherTypeShipping {
			continue
		}
		amount := utils.Round2(remainingShipping * float64(d.Percentage) / 100)
		remainingShipping = utils.Round2(remainingShipping - amount)
		infos = append(infos, discountInfo(d, amount, username))
		codes = append(codes, d.Code)
	}

	discountAmount := 0.0
	for _, info := range infos {
		discountAmount += info.Amount
	}
	discountAmount = utils.Round2(discountAmount)

	p := &models.Payment{
		PaymentID:      utils.GeneratePaymentID(),
		UserID:         user.ID.Hex(),
		Username:       username,
		Items:          items,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		ShippingAmount: shippingAmount,
		TotalAmount:    utils.Round2(subtotal - discountAmount + taxAmount + shippingAmount),
		Currency:       models.CurrencyPHP,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		ShippingStatus: models.ShippingStatusNotShipped,
		BillingAddress: req.BillingAddress,
		DiscountCodes:  codes,
		DiscountInfo:   infos,
		Notes:          req.Notes,
	}

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(p.PaymentID, "created", p.TotalAmount, string(p.Currency))
	return p, nil
}

// ProcessPayment settles a PENDING payment. The PENDING->PROCESSING
// claim is atomic, so a payment is charged at most once. Discount codes
// are consumed together with completion; a declined charge leaves them
// untouched.
func (s *paymentService) ProcessPayment(ctx context.Context, username, paymentID string) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if p.Username != username {
		return nil, ErrPaymentNotOwned
	}

	claimed, ok, err := s.paymentRepo.BeginProcessing(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPaymentNotPending
	}
	p = claimed

	result, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		PaymentID: p.PaymentID,
		Amount:    p.TotalAmount,
		Currency:  string(p.Currency),
		Method:    p.PaymentMethod,
		Username:  username,
	})
	if err != nil {
		if ferr := s.paymentRepo.MarkFailed(ctx, paymentID, "processor error"); ferr != nil {
			s.logger.WithError(ferr).Error("failed to record payment failure")
		}
		return nil, fmt.Errorf("charge failed: %w", err)
	}

	if !result.Success {
		if err := s.paymentRepo.MarkFailed(ctx, paymentID, result.FailureReason); err != nil {
			return nil, err
		}
		s.logger.LogPaymentEvent(paymentID, "declined", p.TotalAmount, string(p.Currency))
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.FailureReason)
	}

	if err := s.complete(ctx, p, result); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, username); err != nil {
		s.logger.WithError(err).WithUsername(username).Warn("failed to clear cart after settlement")
	}

	s.logger.LogPaymentEvent(paymentID, "completed", p.TotalAmount, string(p.Currency))
	return s.paymentRepo.GetByPaymentID(ctx, paymentID)
}

// complete writes settlement completion and discount consumption as one
// transaction when the deployment supports it, falling back to
// sequential writes otherwise.
func (s *paymentService) complete(ctx context.Context, p *models.Payment, result *payment.ChargeResult) error {
	apply := func(ctx context.Context) error {
		if err := s.paymentRepo.MarkCompleted(ctx, p.PaymentID, result.TransactionID, result.Details); err != nil {
			return err
		}
		return s.discountService.ConsumeForPayment(ctx, p.Username, p.DiscountCodes)
	}

	if s.transactor == nil {
		return apply(ctx)
	}

	_, err := s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, apply(sessCtx)
	})
	if err == nil {
		return nil
	}

	s.logger.WithError(err).Warn("transactional settlement unavailable, falling back to sequential writes")
	return apply(ctx)
}

func (s *paymentService) GetPayment(ctx context.Context, username, paymentID string, isAdmin bool) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if !isAdmin && p.Username != username {
		return nil, ErrPaymentNotOwned
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, username string, limit, offset int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.ListByUsername(ctx, username, limit, offset)
}

func (s *paymentService) ListAllPayments(ctx context.Context, status models.PaymentStatus, limit, offset int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.ListAll(ctx, status, limit, offset)
}

// CancelPayment voids a payment that has not finished settling.
func (s *paymentService) CancelPayment(ctx context.Context, username, paymentID string) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if p.Username != username {
		return nil, ErrPaymentNotOwned
	}

	changed, err := s.paymentRepo.UpdateStatusWhere(ctx, paymentID,
		[]models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusProcessing},
		models.PaymentStatusCancelled, "cancelled by user")
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrPaymentNotCancellable
	}

	s.logger.LogPaymentEvent(paymentID, "cancelled", p.TotalAmount, string(p.Currency))
	return s.paymentRepo.GetByPaymentID(ctx, paymentID)
}

// RefundPayment reverses a completed settlement. Voucher consumption is
// not rolled back.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	if reason == "" {
		reason = "refunded by admin"
	}
	changed, err := s.paymentRepo.UpdateStatusWhere(ctx, paymentID,
		[]models.PaymentStatus{models.PaymentStatusCompleted},
		models.PaymentStatusRefunded, reason)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrPaymentNotRefundable
	}

	s.logger.LogPaymentEvent(paymentID, "refunded", p.TotalAmount, string(p.Currency))
	return s.paymentRepo.GetByPaymentID(ctx, paymentID)
}

// UpdateShippingStatus moves the shipment along its lifecycle. The
// shipping machine is independent of payment status, but only paid
// orders ship.
func (s *paymentService) UpdateShippingStatus(ctx context.Context, paymentID string, next models.ShippingStatus) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if p.PaymentStatus != models.PaymentStatusCompleted {
		return nil, fmt.Errorf("%w: payment is %s", ErrInvalidShippingChange, p.PaymentStatus)
	}
	if !p.CanShipTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidShippingChange, p.ShippingStatus, next)
	}

	if err := s.paymentRepo.SetShippingStatus(ctx, paymentID, next); err != nil {
		return nil, err
	}

	s.logger.WithPaymentID(paymentID).WithField("shipping_status", next).Info("shipping status updated")
	return s.paymentRepo.GetByPaymentID(ctx, paymentID)
}

func (s *paymentService) ListByShippingStatus(ctx context.Context, status models.ShippingStatus, limit, offset int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.ListByShippingStatus(ctx, status, limit, offset)
}

func (s *paymentService) StatusOverview(ctx context.Context) ([]interfaces.StatusCount, error) {
	return s.paymentRepo.StatusOverview(ctx)
}

func (s *paymentService) UserStats(ctx context.Context, username string) (*interfaces.UserPaymentStats, error) {
	return s.paymentRepo.UserStats(ctx, username)
}

func (s *paymentService) methodSupported(method models.PaymentMethod) bool {
	for _, m := range supportedMethods {
		if m == method {
			return true
		}
	}
	return false
}

func discountInfo(d *models.Discount, amount float64, username string) models.DiscountInfo {
	infoType := "public"
	if d.AssignmentFor(username) != nil {
		infoType = "user_assigned"
	}
	return models.DiscountInfo{
		Code:        d.Code,
		Percentage:  d.Percentage,
		Amount:      amount,
		Description: d.Description,
		Type:        infoType,
	}
}

package services

import (
	"context"
	"testing"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc          PaymentService
	discountSvc  DiscountService
	paymentRepo  *memPaymentRepo
	discountRepo *memDiscountRepo
	cartRepo     *memCartRepo
	userRepo     *memUserRepo
	gateway      *stubGateway
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	log := newTestLogger()
	f := &paymentFixture{
		paymentRepo:  newMemPaymentRepo(),
		discountRepo: newMemDiscountRepo(),
		cartRepo:     newMemCartRepo(),
		userRepo:     newMemUserRepo(),
		gateway: &stubGateway{result: &payment.ChargeResult{
			Success:       true,
			TransactionID: "TXN_TEST",
		}},
	}
	f.userRepo.seed("alice")
	f.discountSvc = NewDiscountService(f.discountRepo, f.userRepo, log)
	f.svc = NewPaymentService(f.paymentRepo, f.userRepo, f.cartRepo, f.discountSvc, f.gateway, nil, log)
	return f
}

func createReq(codes ...string) *models.CreatePaymentRequest {
	return &models.CreatePaymentRequest{
		Items: []models.PaymentItem{
			{ProductID: "prod-1", ProductName: "Classic Cotton Tee", Quantity: 3, UnitPrice: 19.99},
		},
		PaymentMethod: models.PaymentMethodGCash,
		BillingAddress: models.BillingAddress{
			FullName:     "Alice Santos",
			AddressLine1: "123 Mabini St",
			City:         "Quezon City",
			State:        "Metro Manila",
			PostalCode:   "1100",
			Country:      "Philippines",
		},
		DiscountCodes: codes,
	}
}

func TestCreatePaymentComputesTotals(t *testing.T) {
	f := newPaymentFixture(t)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	assert.Equal(t, 59.97, p.Subtotal)
	assert.Equal(t, 7.20, p.TaxAmount)
	assert.Equal(t, 3.00, p.ShippingAmount)
	assert.Equal(t, 70.17, p.TotalAmount)
	assert.Equal(t, models.PaymentStatusPending, p.PaymentStatus)
	assert.Equal(t, models.ShippingStatusNotShipped, p.ShippingStatus)
	assert.Equal(t, models.CurrencyPHP, p.Currency)
	assert.NotEmpty(t, p.PaymentID)
}

func TestCreatePaymentAppliesClothesVoucherBeforeTaxAndShipping(t *testing.T) {
	f := newPaymentFixture(t)
	seedDiscount(f.discountRepo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)

	req := createReq("SAVE20AB")
	req.Items = []models.PaymentItem{
		{ProductID: "prod-1", ProductName: "Jacket", Quantity: 1, UnitPrice: 100.00},
	}

	p, err := f.svc.CreatePayment(context.Background(), "alice", req)
	require.NoError(t, err)

	assert.Equal(t, 100.00, p.Subtotal)
	assert.Equal(t, 20.00, p.DiscountAmount)
	// Tax and shipping derive from the discounted 80.00.
	assert.Equal(t, 9.60, p.TaxAmount)
	assert.Equal(t, 4.00, p.ShippingAmount)
	assert.Equal(t, 93.60, p.TotalAmount)
	require.Len(t, p.DiscountInfo, 1)
	assert.Equal(t, "public", p.DiscountInfo[0].Type)
}

func TestCreatePaymentAppliesShippingVoucherToShippingOnly(t *testing.T) {
	f := newPaymentFixture(t)
	seedDiscount(f.discountRepo, "FREESHIP", 50, models.VoucherTypeShipping, nil)

	req := createReq("FREESHIP")
	req.Items = []models.PaymentItem{
		{ProductID: "prod-1", ProductName: "Jacket", Quantity: 1, UnitPrice: 100.00},
	}

	p, err := f.svc.CreatePayment(context.Background(), "alice", req)
	require.NoError(t, err)

	assert.Equal(t, 100.00, p.Subtotal)
	// 5% shipping on 100 is 5.00, stored as-is; the voucher's half lands
	// in discount_amount.
	assert.Equal(t, 5.00, p.ShippingAmount)
	assert.Equal(t, 2.50, p.DiscountAmount)
	assert.Equal(t, 12.00, p.TaxAmount)
	assert.Equal(t, 114.50, p.TotalAmount)
}

func TestCreatePaymentTotalsReconcile(t *testing.T) {
	f := newPaymentFixture(t)
	seedDiscount(f.discountRepo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)
	seedDiscount(f.discountRepo, "FREESHIP", 50, models.VoucherTypeShipping, nil)

	for _, codes := range [][]string{
		nil,
		{"SAVE20AB"},
		{"FREESHIP"},
		{"SAVE20AB", "FREESHIP"},
	} {
		req := createReq(codes...)
		req.Items = []models.PaymentItem{
			{ProductID: "prod-1", ProductName: "Jacket", Quantity: 1, UnitPrice: 100.00},
		}

		p, err := f.svc.CreatePayment(context.Background(), "alice", req)
		require.NoError(t, err)

		want := utils.Round2(p.Subtotal - p.DiscountAmount + p.TaxAmount + p.ShippingAmount)
		assert.Equalf(t, want, p.TotalAmount, "codes %v", codes)

		infoSum := 0.0
		for _, info := range p.DiscountInfo {
			infoSum += info.Amount
		}
		assert.Equalf(t, p.DiscountAmount, utils.Round2(infoSum), "codes %v", codes)
	}
}

func TestCreatePaymentRejectsUnknownDiscount(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.CreatePayment(context.Background(), "alice", createReq("NOPE1234"))
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

func TestCreatePaymentRejectsUnsupportedMethod(t *testing.T) {
	f := newPaymentFixture(t)

	req := createReq()
	req.PaymentMethod = "bitcoin"
	_, err := f.svc.CreatePayment(context.Background(), "alice", req)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestProcessPaymentCompletesAndConsumesDiscounts(t *testing.T) {
	f := newPaymentFixture(t)
	seedDiscount(f.discountRepo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)
	_, err := f.discountSvc.CollectVoucher(context.Background(), "alice", "SAVE20AB")
	require.NoError(t, err)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq("SAVE20AB"))
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, processed.PaymentStatus)
	assert.Equal(t, "TXN_TEST", processed.TransactionID)
	assert.NotNil(t, processed.CompletedAt)

	d, err := f.discountRepo.GetByCode(context.Background(), "SAVE20AB")
	require.NoError(t, err)
	assignment := d.AssignmentFor("alice")
	require.NotNil(t, assignment)
	assert.True(t, assignment.IsUsed)
	assert.Zero(t, d.UsedCount)
}

func TestProcessPaymentDeclineLeavesDiscountsUntouched(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.result = &payment.ChargeResult{Success: false, FailureReason: "payment declined by processor"}
	seedDiscount(f.discountRepo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq("SAVE20AB"))
	require.NoError(t, err)

	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	stored, err := f.paymentRepo.GetByPaymentID(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)

	d, err := f.discountRepo.GetByCode(context.Background(), "SAVE20AB")
	require.NoError(t, err)
	assert.Zero(t, d.UsedCount)
}

func TestProcessPaymentIsSingleShot(t *testing.T) {
	f := newPaymentFixture(t)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)

	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentNotPending)
	assert.Equal(t, 1, f.gateway.calls)
}

func TestProcessPaymentOwnershipEnforced(t *testing.T) {
	f := newPaymentFixture(t)
	f.userRepo.seed("mallory")

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	_, err = f.svc.ProcessPayment(context.Background(), "mallory", p.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentNotOwned)
}

func TestCancelPaymentOnlyBeforeCompletion(t *testing.T) {
	f := newPaymentFixture(t)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	cancelled, err := f.svc.CancelPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, cancelled.PaymentStatus)

	_, err = f.svc.CancelPayment(context.Background(), "alice", p.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentNotCancellable)
}

func TestRefundRequiresCompletedPayment(t *testing.T) {
	f := newPaymentFixture(t)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	_, err = f.svc.RefundPayment(context.Background(), p.PaymentID, "damaged item")
	assert.ErrorIs(t, err, ErrPaymentNotRefundable)

	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)

	refunded, err := f.svc.RefundPayment(context.Background(), p.PaymentID, "damaged item")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.PaymentStatus)
}

func TestShippingLifecycle(t *testing.T) {
	f := newPaymentFixture(t)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	// Unpaid orders do not ship.
	_, err = f.svc.UpdateShippingStatus(context.Background(), p.PaymentID, models.ShippingStatusPreparing)
	assert.ErrorIs(t, err, ErrInvalidShippingChange)

	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)

	for _, next := range []models.ShippingStatus{
		models.ShippingStatusPreparing,
		models.ShippingStatusShipped,
		models.ShippingStatusInTransit,
		models.ShippingStatusOutForDelivery,
		models.ShippingStatusDelivered,
	} {
		updated, err := f.svc.UpdateShippingStatus(context.Background(), p.PaymentID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.ShippingStatus)
	}

	// Delivered cannot jump back.
	_, err = f.svc.UpdateShippingStatus(context.Background(), p.PaymentID, models.ShippingStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidShippingChange)
}

func TestShippingSkippingStagesRejected(t *testing.T) {
	f := newPaymentFixture(t)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)
	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)

	_, err = f.svc.UpdateShippingStatus(context.Background(), p.PaymentID, models.ShippingStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidShippingChange)
}

func TestProcessPaymentClearsCart(t *testing.T) {
	f := newPaymentFixture(t)
	cartSvc := NewCartService(f.cartRepo, f.userRepo, newTestLogger())
	_, err := cartSvc.AddItem(context.Background(), "alice", addItemReq(3))
	require.NoError(t, err)

	p, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)
	_, err = f.svc.ProcessPayment(context.Background(), "alice", p.PaymentID)
	require.NoError(t, err)

	cart, err := cartSvc.GetCart(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestStatusOverviewBuckets(t *testing.T) {
	f := newPaymentFixture(t)

	p1, err := f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)
	_, err = f.svc.ProcessPayment(context.Background(), "alice", p1.PaymentID)
	require.NoError(t, err)

	_, err = f.svc.CreatePayment(context.Background(), "alice", createReq())
	require.NoError(t, err)

	overview, err := f.svc.StatusOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview, 2)

	stats, err := f.svc.UserStats(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPayments)
	assert.Equal(t, int64(1), stats.CompletedCount)
	assert.Equal(t, 70.17, stats.TotalSpent)
}

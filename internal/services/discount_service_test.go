package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscountFixture(t *testing.T) (DiscountService, *memDiscountRepo, *memUserRepo) {
	t.Helper()
	discountRepo := newMemDiscountRepo()
	userRepo := newMemUserRepo()
	svc := NewDiscountService(discountRepo, userRepo, newTestLogger())
	return svc, discountRepo, userRepo
}

func seedDiscount(repo *memDiscountRepo, code string, percentage int, voucherType models.VoucherType, usageLimit *int) *models.Discount {
	expires := time.Now().Add(30 * 24 * time.Hour)
	d := &models.Discount{
		Code:        code,
		Percentage:  percentage,
		Description: "Test voucher",
		IsActive:    true,
		ExpiresAt:   &expires,
		UsageLimit:  usageLimit,
		VoucherType: voucherType,
	}
	_ = repo.Create(context.Background(), d)
	return d
}

func TestGenerateDiscountsBatchShapeAndBroadcast(t *testing.T) {
	svc, _, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	userRepo.seed("bob")

	result, err := svc.GenerateDiscounts(context.Background(), &models.GenerateDiscountsRequest{AssignedBy: "admin"})
	require.NoError(t, err)

	assert.Equal(t, 20, result.DiscountsCreated)
	assert.Equal(t, 2, result.TotalUsers)
	assert.Equal(t, 40, result.TotalAssignments)

	codeFormat := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	clothes, shipping := 0, 0
	seen := map[string]bool{}
	for _, d := range result.Discounts {
		assert.Regexp(t, codeFormat, d.Code)
		assert.False(t, seen[d.Code], "duplicate code %s", d.Code)
		seen[d.Code] = true

		assert.Contains(t, []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}, d.Percentage)
		assert.True(t, d.IsActive)
		assert.NotNil(t, d.ExpiresAt)
		assert.Len(t, d.UserAssignments, 2)

		switch d.VoucherType {
		case models.VoucherTypeClothes:
			clothes++
		case models.VoucherTypeShipping:
			shipping++
		}
	}
	assert.Equal(t, 14, clothes)
	assert.Equal(t, 6, shipping)
}

func TestGrantWelcomeVouchersIsIdempotent(t *testing.T) {
	svc, _, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")

	codes, err := svc.GrantWelcomeVouchers(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, codes, 20)

	user, err := userRepo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, user.WelcomeVouchersAssigned)

	again, err := svc.GrantWelcomeVouchers(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestCollectVoucherAtMostOnce(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)

	voucher, err := svc.CollectVoucher(context.Background(), "alice", "SAVE20AB")
	require.NoError(t, err)
	assert.Equal(t, "SAVE20AB", voucher.Code)

	_, err = svc.CollectVoucher(context.Background(), "alice", "SAVE20AB")
	assert.ErrorIs(t, err, ErrAlreadyCollected)
}

func TestCollectVoucherRejectsExpired(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")

	past := time.Now().Add(-time.Hour)
	d := &models.Discount{
		Code: "OLDCODE1", Percentage: 10, IsActive: true,
		ExpiresAt: &past, VoucherType: models.VoucherTypeClothes,
	}
	require.NoError(t, repo.Create(context.Background(), d))

	_, err := svc.CollectVoucher(context.Background(), "alice", "OLDCODE1")
	assert.ErrorIs(t, err, ErrDiscountExpired)
}

func TestApplyDiscountComputesPercentage(t *testing.T) {
	svc, repo, _ := newDiscountFixture(t)
	seedDiscount(repo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)

	preview, err := svc.ApplyDiscount(context.Background(), "SAVE20AB", 100.00)
	require.NoError(t, err)

	assert.Equal(t, 20.00, preview.DiscountAmount)
	assert.Equal(t, 80.00, preview.FinalAmount)
	assert.Equal(t, 20, preview.DiscountPercentage)
}

func TestApplyDiscountDoesNotConsume(t *testing.T) {
	svc, repo, _ := newDiscountFixture(t)
	seedDiscount(repo, "SAVE20AB", 20, models.VoucherTypeClothes, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.ApplyDiscount(context.Background(), "SAVE20AB", 100.00)
		require.NoError(t, err)
	}

	d, err := repo.GetByCode(context.Background(), "SAVE20AB")
	require.NoError(t, err)
	assert.Zero(t, d.UsedCount)
}

func TestApplyAssignedDiscountPrefersAssignment(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "MINE1234", 15, models.VoucherTypeClothes, nil)

	_, err := svc.CollectVoucher(context.Background(), "alice", "MINE1234")
	require.NoError(t, err)

	preview, err := svc.ApplyAssignedDiscount(context.Background(), "alice", "MINE1234", 200.00)
	require.NoError(t, err)

	assert.Equal(t, 30.00, preview.DiscountAmount)
	assert.Equal(t, string(models.AssignmentTypeCollect), preview.AssignmentType)
}

func TestApplyAssignedDiscountRejectsUsedAssignment(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "MINE1234", 15, models.VoucherTypeClothes, nil)

	_, err := svc.CollectVoucher(context.Background(), "alice", "MINE1234")
	require.NoError(t, err)
	require.NoError(t, svc.UseDiscount(context.Background(), "alice", "MINE1234"))

	_, err = svc.ApplyAssignedDiscount(context.Background(), "alice", "MINE1234", 100.00)
	assert.ErrorIs(t, err, ErrDiscountUsed)
}

func TestUseDiscountMarksAssignmentOnly(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "MINE1234", 15, models.VoucherTypeClothes, nil)

	_, err := svc.CollectVoucher(context.Background(), "alice", "MINE1234")
	require.NoError(t, err)
	require.NoError(t, svc.UseDiscount(context.Background(), "alice", "MINE1234"))

	d, err := repo.GetByCode(context.Background(), "MINE1234")
	require.NoError(t, err)
	// Assigned redemption burns the assignment, not the public counter.
	assert.Zero(t, d.UsedCount)
	assignment := d.AssignmentFor("alice")
	require.NotNil(t, assignment)
	assert.True(t, assignment.IsUsed)
	assert.NotNil(t, assignment.UsedAt)

	err = svc.UseDiscount(context.Background(), "alice", "MINE1234")
	assert.ErrorIs(t, err, ErrDiscountUsed)
}

func TestUseDiscountPublicHonorsUsageLimit(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	userRepo.seed("bob")
	limit := 1
	seedDiscount(repo, "LIMITED1", 10, models.VoucherTypeClothes, &limit)

	require.NoError(t, svc.UseDiscount(context.Background(), "alice", "LIMITED1"))
	err := svc.UseDiscount(context.Background(), "bob", "LIMITED1")
	assert.ErrorIs(t, err, ErrDiscountExhausted)

	d, err := repo.GetByCode(context.Background(), "LIMITED1")
	require.NoError(t, err)
	assert.Equal(t, 1, d.UsedCount)
}

func TestUseDiscountExhaustionLeavesAssignmentIntact(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	userRepo.seed("bob")
	userRepo.seed("carol")
	limit := 1
	seedDiscount(repo, "LIMITED1", 10, models.VoucherTypeClothes, &limit)

	_, err := svc.CollectVoucher(context.Background(), "bob", "LIMITED1")
	require.NoError(t, err)

	// Public redemptions drain the shared counter.
	require.NoError(t, svc.UseDiscount(context.Background(), "alice", "LIMITED1"))
	err = svc.UseDiscount(context.Background(), "carol", "LIMITED1")
	assert.ErrorIs(t, err, ErrDiscountExhausted)

	// Bob's assignment survives both the exhaustion and carol's failed
	// attempt, so he can still redeem it.
	d, err := repo.GetByCode(context.Background(), "LIMITED1")
	require.NoError(t, err)
	assignment := d.AssignmentFor("bob")
	require.NotNil(t, assignment)
	assert.False(t, assignment.IsUsed)

	require.NoError(t, svc.UseDiscount(context.Background(), "bob", "LIMITED1"))
}

func TestUseDiscountExpiredLeavesEverythingUntouched(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	d := seedDiscount(repo, "MINE1234", 15, models.VoucherTypeClothes, nil)

	_, err := svc.CollectVoucher(context.Background(), "alice", "MINE1234")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	d.ExpiresAt = &past

	err = svc.UseDiscount(context.Background(), "alice", "MINE1234")
	assert.ErrorIs(t, err, ErrDiscountExpired)

	stored, err := repo.GetByCode(context.Background(), "MINE1234")
	require.NoError(t, err)
	assert.Zero(t, stored.UsedCount)
	assignment := stored.AssignmentFor("alice")
	require.NotNil(t, assignment)
	assert.False(t, assignment.IsUsed)
}

func TestListAvailableExcludesCollected(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "CLOTHES1", 10, models.VoucherTypeClothes, nil)
	seedDiscount(repo, "SHIPPIN1", 10, models.VoucherTypeShipping, nil)

	_, err := svc.CollectVoucher(context.Background(), "alice", "CLOTHES1")
	require.NoError(t, err)

	available, err := svc.ListAvailable(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, available.TotalAvailable)
	assert.Empty(t, available.ClothesVouchers)
	require.Len(t, available.ShippingVouchers, 1)
	assert.Equal(t, "SHIPPIN1", available.ShippingVouchers[0].Code)
}

func TestCollectAllVouchers(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "CLOTHES1", 10, models.VoucherTypeClothes, nil)
	seedDiscount(repo, "SHIPPIN1", 10, models.VoucherTypeShipping, nil)

	collected, err := svc.CollectAllVouchers(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, collected, 2)

	assigned, err := svc.ListAssigned(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, assigned, 2)
}

func TestListAssignedForUserRequiresExistingUser(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "CLOTHES1", 10, models.VoucherTypeClothes, nil)

	_, err := svc.CollectVoucher(context.Background(), "alice", "CLOTHES1")
	require.NoError(t, err)

	vouchers, err := svc.ListAssignedForUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, vouchers, 1)

	_, err = svc.ListAssignedForUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAssignToUserConflictsWhenAlreadyHeld(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "MANUAL01", 10, models.VoucherTypeClothes, nil)

	require.NoError(t, svc.AssignToUser(context.Background(), "admin", "alice", "MANUAL01", "vip"))
	err := svc.AssignToUser(context.Background(), "admin", "alice", "MANUAL01", "vip")
	assert.ErrorIs(t, err, ErrAlreadyCollected)
}

func TestResolveForPaymentValidatesEveryCode(t *testing.T) {
	svc, repo, userRepo := newDiscountFixture(t)
	userRepo.seed("alice")
	seedDiscount(repo, "GOODCODE", 10, models.VoucherTypeClothes, nil)

	resolved, err := svc.ResolveForPayment(context.Background(), "alice", []string{"GOODCODE"})
	require.NoError(t, err)
	assert.Len(t, resolved, 1)

	_, err = svc.ResolveForPayment(context.Background(), "alice", []string{"GOODCODE", "MISSING1"})
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

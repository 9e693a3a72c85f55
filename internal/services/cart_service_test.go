package services

import (
	"context"
	"testing"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (CartService, *memUserRepo) {
	t.Helper()
	userRepo := newMemUserRepo()
	userRepo.seed("alice")
	return NewCartService(newMemCartRepo(), userRepo, newTestLogger()), userRepo
}

func addItemReq(quantity int) *models.AddCartItemRequest {
	return &models.AddCartItemRequest{
		ProductID:   "prod-1",
		ProductName: "Classic Cotton Tee",
		Brand:       "UrbanWear",
		UnitPrice:   19.99,
		Quantity:    quantity,
		Size:        "M",
		Color:       "black",
	}
}

func TestGetCartCreatesEmptyCartOnFirstUse(t *testing.T) {
	svc, _ := newCartFixture(t)

	cart, err := svc.GetCart(context.Background(), "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, cart.CartID)
	assert.Equal(t, "alice", cart.Username)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)
}

func TestAddItemComputesLineAndCartTotals(t *testing.T) {
	svc, _ := newCartFixture(t)

	cart, err := svc.AddItem(context.Background(), "alice", addItemReq(3))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 59.97, cart.Items[0].TotalPrice)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 59.97, cart.Subtotal)
}

func TestAddItemMergesMatchingVariant(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(2))
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "alice", addItemReq(1))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemKeepsDistinctVariantsSeparate(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(1))
	require.NoError(t, err)

	other := addItemReq(1)
	other.Size = "L"
	cart, err := svc.AddItem(ctx, "alice", other)
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestAddItemRejectsQuantityOverCap(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(51))
	assert.ErrorIs(t, err, ErrQuantityExceeded)

	_, err = svc.AddItem(ctx, "alice", addItemReq(30))
	require.NoError(t, err)

	// 30 + 21 would push the merged line past the cap.
	_, err = svc.AddItem(ctx, "alice", addItemReq(21))
	assert.ErrorIs(t, err, ErrQuantityExceeded)

	cart, err := svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 30, cart.Items[0].Quantity)
}

func TestUpdateItemToZeroQuantityRemovesLine(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(2))
	require.NoError(t, err)

	zero := 0
	cart, err := svc.UpdateItem(ctx, "alice", &models.UpdateCartItemRequest{
		ProductID: "prod-1",
		Size:      "M",
		Color:     "black",
		Quantity:  &zero,
	})
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.Subtotal)
}

func TestUpdateItemChangesVariant(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(2))
	require.NoError(t, err)

	cart, err := svc.UpdateItem(ctx, "alice", &models.UpdateCartItemRequest{
		ProductID: "prod-1",
		Size:      "M",
		Color:     "black",
		NewSize:   "L",
		NewColor:  "white",
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)
	assert.Equal(t, "white", cart.Items[0].Color)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 39.98, cart.Subtotal, 0.001)
}

func TestUpdateItemMissingLine(t *testing.T) {
	svc, _ := newCartFixture(t)

	qty := 2
	_, err := svc.UpdateItem(context.Background(), "alice", &models.UpdateCartItemRequest{
		ProductID: "missing",
		Quantity:  &qty,
	})
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveItemRecomputesTotals(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(2))
	require.NoError(t, err)
	other := addItemReq(1)
	other.ProductID = "prod-2"
	other.UnitPrice = 10.00
	_, err = svc.AddItem(ctx, "alice", other)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "alice", "prod-1", "M", "black")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 10.00, cart.Subtotal)
	assert.Equal(t, 1, cart.TotalItems)
}

func TestCartSummaryAppliesTaxAndShipping(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(3))
	require.NoError(t, err)

	summary, err := svc.GetCartSummary(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 59.97, summary.Subtotal)
	assert.Equal(t, 7.20, summary.EstimatedTax)
	assert.Equal(t, 3.00, summary.EstimatedShipping)
	assert.Equal(t, 70.17, summary.EstimatedTotal)
}

func TestCartSummaryShippingIsCapped(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	big := addItemReq(10)
	big.UnitPrice = 500.00
	_, err := svc.AddItem(ctx, "alice", big)
	require.NoError(t, err)

	summary, err := svc.GetCartSummary(ctx, "alice")
	require.NoError(t, err)

	// 5% of 5000 is 250, capped at 50.
	assert.Equal(t, 50.00, summary.EstimatedShipping)
}

func TestClearCart(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", addItemReq(2))
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, "alice"))

	cart, err := svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

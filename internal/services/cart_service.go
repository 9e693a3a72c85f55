package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
)

var (
	ErrCartItemNotFound = errors.New("item not found in cart")
	ErrQuantityExceeded = fmt.Errorf("quantity cannot exceed %d per item", utils.MaxQuantityPerLine)
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

type CartService interface {
	GetCart(ctx context.Context, username string) (*models.Cart, error)
	GetCartSummary(ctx context.Context, username string) (*models.CartSummary, error)
	AddItem(ctx context.Context, username string, req *models.AddCartItemRequest) (*models.Cart, error)
	UpdateItem(ctx context.Context, username string, req *models.UpdateCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, username, productID, size, color string) (*models.Cart, error)
	ClearCart(ctx context.Context, username string) error
}

type cartService struct {
	cartRepo interfaces.CartRepository
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewCartService(cartRepo interfaces.CartRepository, userRepo interfaces.UserRepository, log *logger.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		userRepo: userRepo,
		logger:   log,
	}
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *cartService) GetCart(ctx context.Context, username string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}

	cart = &models.Cart{
		CartID:    utils.GenerateCartID(),
		UserID:    user.ID.Hex(),
		Username:  username,
		Items:     []models.CartItem{},
		ExpiresAt: time.Now().Add(utils.CartTTL),
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCartSummary(ctx context.Context, username string) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, username)
	if err != nil {
		return nil, err
	}

	tax := utils.CalculateTax(cart.Subtotal)
	shipping := utils.CalculateShipping(cart.Subtotal)
	return &models.CartSummary{
		TotalItems:        cart.TotalItems,
		Subtotal:          cart.Subtotal,
		EstimatedTax:      tax,
		EstimatedShipping: shipping,
		EstimatedTotal:    utils.Round2(cart.Subtotal + tax + shipping),
	}, nil
}

// AddItem merges the request into an existing line for the same product
// variant, or appends a new line. Merged quantities stay within the
// per-line cap.
func (s *cartService) AddItem(ctx context.Context, username string, req *models.AddCartItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if req.Quantity > utils.MaxQuantityPerLine {
		return nil, ErrQuantityExceeded
	}

	cart, err := s.GetCart(ctx, username)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].Matches(req.ProductID, req.Size, req.Color) {
			if cart.Items[i].Quantity+req.Quantity > utils.MaxQuantityPerLine {
				return nil, ErrQuantityExceeded
			}
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:   req.ProductID,
			ProductName: req.ProductName,
			Brand:       req.Brand,
			UnitPrice:   req.UnitPrice,
			Quantity:    req.Quantity,
			Size:        req.Size,
			Color:       req.Color,
			ImageURL:    req.ImageURL,
		})
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(username, "cart_item_added", map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
	return cart, nil
}

// UpdateItem changes a line's quantity, size, or color. The line is matched
// by product id plus the current size/color; a quantity of zero removes it.
func (s *cartService) UpdateItem(ctx context.Context, username string, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		if *req.Quantity > utils.MaxQuantityPerLine {
			return nil, ErrQuantityExceeded
		}
		if *req.Quantity == 0 {
			return s.RemoveItem(ctx, username, req.ProductID, req.Size, req.Color)
		}
	}

	cart, err := s.GetCart(ctx, username)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Matches(req.ProductID, req.Size, req.Color) {
			if req.Quantity != nil {
				cart.Items[i].Quantity = *req.Quantity
			}
			if req.NewSize != "" {
				cart.Items[i].Size = req.NewSize
			}
			if req.NewColor != "" {
				cart.Items[i].Color = req.NewColor
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, username, productID, size, color string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, username)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.Matches(productID, size, color) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, ErrCartItemNotFound
	}
	cart.Items = kept

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(username, "cart_item_removed", map[string]interface{}{"product_id": productID})
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, username string) error {
	cart, err := s.GetCart(ctx, username)
	if err != nil {
		return err
	}
	if err := s.cartRepo.Clear(ctx, cart.Username); err != nil {
		return err
	}
	s.logger.LogUserAction(username, "cart_cleared", nil)
	return nil
}

// persist recomputes line totals and cart aggregates from scratch and
// writes the whole item set back. Totals are never patched in place.
func (s *cartService) persist(ctx context.Context, cart *models.Cart) error {
	totalItems := 0
	subtotal := 0.0
	for i := range cart.Items {
		cart.Items[i].TotalPrice = utils.Round2(cart.Items[i].UnitPrice * float64(cart.Items[i].Quantity))
		totalItems += cart.Items[i].Quantity
		subtotal += cart.Items[i].TotalPrice
	}
	cart.TotalItems = totalItems
	cart.Subtotal = utils.Round2(subtotal)

	return s.cartRepo.ReplaceItems(ctx, cart.Username, cart.Items, cart.TotalItems, cart.Subtotal)
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// CartService handles per-user cart operations.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*model.Cart, error)
	ViewCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart merges quantity into the user's cart and reserves product stock.
// The cumulative quantity of one product across the cart must not exceed
// current inventory. Stock reservation and the cart write share a single
// transaction, and the reservation itself is a conditional decrement, so a
// concurrent add for the same product cannot overdraw inventory.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, errors.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	var existing *model.CartItem
	if cart != nil {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				existing = &cart.Items[i]
				break
			}
		}
	}

	// Pre-check the cumulative quantity against what is left on the shelf.
	// The conditional decrement below still guards the concurrent case.
	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if newQuantity > product.Inventory {
		return nil, errors.ErrInsufficientStock
	}

	err = s.cartRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.CartRepository) error {
		if err := txRepo.ReserveStock(ctx, productID, quantity); err != nil {
			return err
		}

		if cart == nil {
			return txRepo.Create(ctx, &model.Cart{
				UserID: userID,
				Items: []model.CartItem{
					{ProductID: productID, Quantity: quantity},
				},
			})
		}

		if existing != nil {
			existing.Quantity = newQuantity
			return txRepo.SaveItem(ctx, existing)
		}

		return txRepo.SaveItem(ctx, &model.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	})
	if err != nil {
		if err == errors.ErrInsufficientStock {
			return nil, err
		}
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	return s.cartRepo.FindByUserWithProducts(ctx, userID)
}

// RemoveFromCart removes one product's line item. Inventory is not restored.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	var item *model.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			item = &cart.Items[i]
			break
		}
	}
	if item == nil {
		return nil, errors.ErrCartItemNotFound
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}

	return s.cartRepo.FindByUserWithProducts(ctx, userID)
}

// ViewCart returns the user's cart with product references expanded.
func (s *cartService) ViewCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUserWithProducts(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return cart, nil
}

// ClearCart empties the cart's line items, keeping the cart itself.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("clear cart items: %w", err)
	}

	cart.Items = []model.CartItem{}
	return cart, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
)

// CartRepository defines cart persistence operations. ReserveStock and the
// item writes are meant to run together inside WithTransaction so cart state
// and product inventory can never diverge.
type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	FindByUserWithProducts(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	SaveItem(ctx context.Context, item *model.CartItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CartRepository) error) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create creates a new cart with its items.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// FindByUser finds a user's cart with line items.
func (r *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByUserWithProducts finds a user's cart with product references expanded.
func (r *cartRepository) FindByUserWithProducts(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveItem inserts or updates a single line item.
func (r *cartRepository) SaveItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes a single line item.
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&model.CartItem{}).Error
}

// ClearItems removes every line item of a cart, keeping the cart row.
func (r *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}

// ReserveStock decrements product inventory by quantity only if enough stock
// remains. The conditional update makes concurrent reservations race-safe:
// two callers can both pass an application-level check, but only decrements
// that keep inventory non-negative are applied.
func (r *cartRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND inventory >= ?", productID, quantity).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrInsufficientStock
	}
	return nil
}

// WithTransaction executes a function within a database transaction.
func (r *cartRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &cartRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

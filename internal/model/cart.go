package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds a user's pending line items. One cart per user, created lazily
// on first add and never deleted; clearing only empties the item list.
type Cart struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Items []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem is a (product, quantity) line item. No two items of one cart share
// a product; adds against an existing product merge quantities instead.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CartID    uuid.UUID `json:"cart_id" gorm:"type:char(36);not null;index:idx_cart_product,unique"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:char(36);not null;index:idx_cart_product,unique"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	// Relations
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

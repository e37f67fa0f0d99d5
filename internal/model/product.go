package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductTag is an enumerated marketing label on a product.
type ProductTag string

const (
	TagNew      ProductTag = "new"
	TagPopular  ProductTag = "popular"
	TagSale     ProductTag = "sale"
	TagFeatured ProductTag = "featured"
	TagLimited  ProductTag = "limited"
	TagDiscount ProductTag = "discount"
)

// ValidTag reports whether t belongs to the known tag enumeration.
func ValidTag(t ProductTag) bool {
	switch t {
	case TagNew, TagPopular, TagSale, TagFeatured, TagLimited, TagDiscount:
		return true
	}
	return false
}

// Product represents a catalog item.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Inventory   int             `json:"inventory" gorm:"not null;default:0"`
	CategoryID  uuid.UUID       `json:"category_id" gorm:"type:char(36);not null;index"`
	Image       string          `json:"image,omitempty" gorm:"size:512"`
	Tags        []ProductTag    `json:"tags,omitempty" gorm:"type:json;serializer:json"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

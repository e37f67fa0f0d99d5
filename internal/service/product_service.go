package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/cache"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductPage is one page of a product listing plus pagination totals.
type ProductPage struct {
	Products      []model.Product `json:"products"`
	TotalProducts int64           `json:"totalProducts"`
	TotalPages    int             `json:"totalPages"`
	CurrentPage   int             `json:"currentPage"`
}

// ProductService handles catalog operations over products.
type ProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int) (*ProductPage, error)
	GetProductsByTag(ctx context.Context, tag model.ProductTag) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	UpdateInventory(ctx context.Context, id uuid.UUID, inventory int) (*model.Product, error)
}

// ProductPatch carries optional field updates; nil means leave untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Inventory   *int
	CategoryID  *uuid.UUID
	Image       *string
	Tags        []model.ProductTag
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// CreateProduct validates tags and persists a new product.
func (s *productService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	for _, tag := range product.Tags {
		if !model.ValidTag(tag) {
			return nil, errors.ErrInvalidTag
		}
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies a partial update and invalidates the cache entry.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Inventory != nil {
		product.Inventory = *patch.Inventory
	}
	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
		product.Category = nil
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Tags != nil {
		for _, tag := range patch.Tags {
			if !model.ValidTag(tag) {
				return nil, errors.ErrInvalidTag
			}
		}
		product.Tags = patch.Tags
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// DeleteProduct removes a product and invalidates the cache entry.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// GetProduct retrieves a product by ID with read-through caching.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}

	return product, nil
}

// ListProducts returns one page of filtered products with pagination totals.
func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int) (*ProductPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, errors.ErrInvalidPagination
	}

	products, total, err := s.repo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ProductPage{
		Products:      products,
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
	}, nil
}

// GetProductsByTag returns products with the given tag; zero matches is a miss.
func (s *productService) GetProductsByTag(ctx context.Context, tag model.ProductTag) ([]model.Product, error) {
	if !model.ValidTag(tag) {
		return nil, errors.ErrInvalidTag
	}

	products, err := s.repo.FindByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("find products by tag: %w", err)
	}
	if len(products) == 0 {
		return nil, errors.ErrProductNotFound
	}
	return products, nil
}

// GetProductsByCategory returns all products of one category; zero matches is a miss.
func (s *productService) GetProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	products, err := s.repo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find products by category: %w", err)
	}
	if len(products) == 0 {
		return nil, errors.ErrProductNotFound
	}
	return products, nil
}

// UpdateInventory sets an absolute inventory count.
func (s *productService) UpdateInventory(ctx context.Context, id uuid.UUID, inventory int) (*model.Product, error) {
	if err := s.repo.SetInventory(ctx, id, inventory); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("set inventory: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.repo.FindByID(ctx, id)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func TestProductService_CreateProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("valid product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.CreateProduct(context.Background(), &model.Product{
			Name:       "Cast Iron Skillet",
			Price:      decimal.NewFromFloat(34.95),
			Inventory:  75,
			CategoryID: categoryID,
			Tags:       []model.ProductTag{model.TagFeatured},
		})

		assert.NoError(t, err)
		assert.NotNil(t, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown tag rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)

		service := NewProductService(mockRepo, nil)
		product, err := service.CreateProduct(context.Background(), &model.Product{
			Name:       "Cast Iron Skillet",
			Price:      decimal.NewFromFloat(34.95),
			CategoryID: categoryID,
			Tags:       []model.ProductTag{"bestseller"},
		})

		assert.Equal(t, errors.ErrInvalidTag, err)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(&model.Product{
			ID:        productID,
			Name:      "Denim Jacket",
			Price:     decimal.NewFromFloat(59.00),
			Inventory: 40,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
			return p.Name == "Denim Jacket" && p.Price.Equal(decimal.NewFromFloat(49.00))
		})).Return(nil)

		newPrice := decimal.NewFromFloat(49.00)
		service := NewProductService(mockRepo, nil)
		product, err := service.UpdateProduct(context.Background(), productID, ProductPatch{Price: &newPrice})

		assert.NoError(t, err)
		assert.Equal(t, "Denim Jacket", product.Name)
		assert.True(t, product.Price.Equal(newPrice))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)
		product, err := service.UpdateProduct(context.Background(), productID, ProductPatch{})

		assert.Equal(t, errors.ErrProductNotFound, err)
		assert.Nil(t, product)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("deletes existing", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Delete", mock.Anything, productID).Return(nil)

		service := NewProductService(mockRepo, nil)
		assert.NoError(t, service.DeleteProduct(context.Background(), productID))
	})

	t.Run("missing product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Delete", mock.Anything, productID).Return(gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)
		assert.Equal(t, errors.ErrProductNotFound, service.DeleteProduct(context.Background(), productID))
	})
}

func TestProductService_GetProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(&model.Product{
			ID:   productID,
			Name: "Wireless Headphones",
		}, nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.GetProduct(context.Background(), productID)

		assert.NoError(t, err)
		assert.Equal(t, "Wireless Headphones", product.Name)
	})

	t.Run("missing", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)
		product, err := service.GetProduct(context.Background(), productID)

		assert.Equal(t, errors.ErrProductNotFound, err)
		assert.Nil(t, product)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		pageSize      int
		total         int64
		expectedPages int
		expectedError error
	}{
		{
			name:          "25 products at page size 10 gives 3 pages",
			page:          1,
			pageSize:      10,
			total:         25,
			expectedPages: 3,
		},
		{
			name:          "exact multiple",
			page:          2,
			pageSize:      5,
			total:         20,
			expectedPages: 4,
		},
		{
			name:          "no products",
			page:          1,
			pageSize:      10,
			total:         0,
			expectedPages: 0,
		},
		{
			name:          "page below 1 rejected",
			page:          0,
			pageSize:      10,
			expectedError: errors.ErrInvalidPagination,
		},
		{
			name:          "page size below 1 rejected",
			page:          1,
			pageSize:      -5,
			expectedError: errors.ErrInvalidPagination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			if tt.expectedError == nil {
				mockRepo.On("List", mock.Anything, repository.ProductFilter{}, tt.page, tt.pageSize).
					Return([]model.Product{}, tt.total, nil)
			}

			service := NewProductService(mockRepo, nil)
			page, err := service.ListProducts(context.Background(), repository.ProductFilter{}, tt.page, tt.pageSize)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, page)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.total, page.TotalProducts)
				assert.Equal(t, tt.expectedPages, page.TotalPages)
				assert.Equal(t, tt.page, page.CurrentPage)
				assert.NotNil(t, page.Products)
			}
		})
	}
}

func TestProductService_GetProductsByTag(t *testing.T) {
	t.Run("matching products", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByTag", mock.Anything, model.TagPopular).Return([]model.Product{
			{Name: "Wireless Headphones"},
		}, nil)

		service := NewProductService(mockRepo, nil)
		products, err := service.GetProductsByTag(context.Background(), model.TagPopular)

		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("no matches is a miss", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByTag", mock.Anything, model.TagLimited).Return([]model.Product{}, nil)

		service := NewProductService(mockRepo, nil)
		products, err := service.GetProductsByTag(context.Background(), model.TagLimited)

		assert.Equal(t, errors.ErrProductNotFound, err)
		assert.Nil(t, products)
	})

	t.Run("unknown tag rejected", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository), nil)
		products, err := service.GetProductsByTag(context.Background(), "bestseller")

		assert.Equal(t, errors.ErrInvalidTag, err)
		assert.Nil(t, products)
	})
}

func TestProductService_GetProductsByCategory(t *testing.T) {
	categoryID := uuid.New()

	t.Run("matching products", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByCategory", mock.Anything, categoryID).Return([]model.Product{
			{Name: "Cotton T-Shirt"}, {Name: "Denim Jacket"},
		}, nil)

		service := NewProductService(mockRepo, nil)
		products, err := service.GetProductsByCategory(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("no matches is a miss", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByCategory", mock.Anything, categoryID).Return([]model.Product{}, nil)

		service := NewProductService(mockRepo, nil)
		products, err := service.GetProductsByCategory(context.Background(), categoryID)

		assert.Equal(t, errors.ErrProductNotFound, err)
		assert.Nil(t, products)
	})
}

func TestProductService_UpdateInventory(t *testing.T) {
	productID := uuid.New()

	t.Run("sets absolute count", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("SetInventory", mock.Anything, productID, 120).Return(nil)
		mockRepo.On("FindByID", mock.Anything, productID).Return(&model.Product{
			ID:        productID,
			Inventory: 120,
		}, nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.UpdateInventory(context.Background(), productID, 120)

		assert.NoError(t, err)
		assert.Equal(t, 120, product.Inventory)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("SetInventory", mock.Anything, productID, 120).Return(gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)
		product, err := service.UpdateInventory(context.Background(), productID, 120)

		assert.Equal(t, errors.ErrProductNotFound, err)
		assert.Nil(t, product)
	})
}

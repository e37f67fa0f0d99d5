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

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, cart *model.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByUserWithProducts(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) SaveItem(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *MockCartRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.CartRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int) ([]model.Product, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByTag(ctx context.Context, tag model.ProductTag) ([]model.Product, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) SetInventory(ctx context.Context, id uuid.UUID, inventory int) error {
	args := m.Called(ctx, id, inventory)
	return args.Error(0)
}

func TestCartService_AddToCart(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cartID := uuid.New()

	product := &model.Product{
		ID:        productID,
		Name:      "Wireless Headphones",
		Price:     decimal.NewFromFloat(129.99),
		Inventory: 10,
	}

	tests := []struct {
		name          string
		quantity      int
		setupMock     func(*MockCartRepository, *MockProductRepository)
		expectedError error
	}{
		{
			name:     "first add creates cart",
			quantity: 2,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(product, nil)
				mCart.On("FindByUser", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
				mCart.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mCart.On("ReserveStock", mock.Anything, productID, 2).Return(nil)
				mCart.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Cart) bool {
					return c.UserID == userID && len(c.Items) == 1 && c.Items[0].Quantity == 2
				})).Return(nil)
				mCart.On("FindByUserWithProducts", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items: []model.CartItem{
						{CartID: cartID, ProductID: productID, Quantity: 2, Product: product},
					},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "second add merges quantities",
			quantity: 3,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(product, nil)
				mCart.On("FindByUser", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items: []model.CartItem{
						{CartID: cartID, ProductID: productID, Quantity: 2},
					},
				}, nil)
				mCart.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mCart.On("ReserveStock", mock.Anything, productID, 3).Return(nil)
				mCart.On("SaveItem", mock.Anything, mock.MatchedBy(func(item *model.CartItem) bool {
					return item.ProductID == productID && item.Quantity == 5
				})).Return(nil)
				mCart.On("FindByUserWithProducts", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items: []model.CartItem{
						{CartID: cartID, ProductID: productID, Quantity: 5, Product: product},
					},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "cumulative quantity exceeds inventory",
			quantity: 3,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(product, nil)
				mCart.On("FindByUser", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items: []model.CartItem{
						{CartID: cartID, ProductID: productID, Quantity: 8},
					},
				}, nil)
			},
			expectedError: errors.ErrInsufficientStock,
		},
		{
			name:     "concurrent reservation loses the race",
			quantity: 4,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(product, nil)
				mCart.On("FindByUser", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
				mCart.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mCart.On("ReserveStock", mock.Anything, productID, 4).Return(errors.ErrInsufficientStock)
			},
			expectedError: errors.ErrInsufficientStock,
		},
		{
			name:     "product not found",
			quantity: 1,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrProductNotFound,
		},
		{
			name:          "zero quantity rejected",
			quantity:      0,
			setupMock:     func(mCart *MockCartRepository, mProduct *MockProductRepository) {},
			expectedError: errors.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			mockProductRepo := new(MockProductRepository)
			tt.setupMock(mockCartRepo, mockProductRepo)

			service := NewCartService(mockCartRepo, mockProductRepo)
			cart, err := service.AddToCart(context.Background(), userID, productID, tt.quantity)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, cart)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cart)
				assert.Len(t, cart.Items, 1)
			}

			mockCartRepo.AssertExpectations(t)
			mockProductRepo.AssertExpectations(t)
		})
	}
}

func TestCartService_RemoveFromCart(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	otherProductID := uuid.New()
	cartID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name          string
		productID     uuid.UUID
		setupMock     func(*MockCartRepository)
		expectedError error
	}{
		{
			name:      "removes existing item",
			productID: productID,
			setupMock: func(mCart *MockCartRepository) {
				mCart.On("FindByUser", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items: []model.CartItem{
						{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 2},
					},
				}, nil)
				mCart.On("DeleteItem", mock.Anything, itemID).Return(nil)
				mCart.On("FindByUserWithProducts", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items:  []model.CartItem{},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:      "product not in cart",
			productID: otherProductID,
			setupMock: func(mCart *MockCartRepository) {
				mCart.On("FindByUser", mock.Anything, userID).Return(&model.Cart{
					ID:     cartID,
					UserID: userID,
					Items: []model.CartItem{
						{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 2},
					},
				}, nil)
			},
			expectedError: errors.ErrCartItemNotFound,
		},
		{
			name:      "no cart",
			productID: productID,
			setupMock: func(mCart *MockCartRepository) {
				mCart.On("FindByUser", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCartNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			tt.setupMock(mockCartRepo)

			service := NewCartService(mockCartRepo, new(MockProductRepository))
			cart, err := service.RemoveFromCart(context.Background(), userID, tt.productID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, cart)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cart)
				assert.Empty(t, cart.Items)
			}

			mockCartRepo.AssertExpectations(t)
		})
	}
}

func TestCartService_ViewCart(t *testing.T) {
	userID := uuid.New()

	t.Run("returns populated cart", func(t *testing.T) {
		productID := uuid.New()
		mockCartRepo := new(MockCartRepository)
		mockCartRepo.On("FindByUserWithProducts", mock.Anything, userID).Return(&model.Cart{
			UserID: userID,
			Items: []model.CartItem{
				{ProductID: productID, Quantity: 1, Product: &model.Product{
					ID:    productID,
					Name:  "French Press",
					Price: decimal.NewFromFloat(24.00),
				}},
			},
		}, nil)

		service := NewCartService(mockCartRepo, new(MockProductRepository))
		cart, err := service.ViewCart(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, "French Press", cart.Items[0].Product.Name)
	})

	t.Run("no cart", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockCartRepo.On("FindByUserWithProducts", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCartService(mockCartRepo, new(MockProductRepository))
		cart, err := service.ViewCart(context.Background(), userID)

		assert.Equal(t, errors.ErrCartNotFound, err)
		assert.Nil(t, cart)
	})
}

func TestCartService_ClearCart(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()

	t.Run("empties items", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockCartRepo.On("FindByUser", mock.Anything, userID).Return(&model.Cart{
			ID:     cartID,
			UserID: userID,
			Items: []model.CartItem{
				{CartID: cartID, ProductID: uuid.New(), Quantity: 3},
			},
		}, nil)
		mockCartRepo.On("ClearItems", mock.Anything, cartID).Return(nil)

		service := NewCartService(mockCartRepo, new(MockProductRepository))
		cart, err := service.ClearCart(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Empty(t, cart.Items)
		mockCartRepo.AssertExpectations(t)
	})

	t.Run("no cart", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockCartRepo.On("FindByUser", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCartService(mockCartRepo, new(MockProductRepository))
		cart, err := service.ClearCart(context.Background(), userID)

		assert.Equal(t, errors.ErrCartNotFound, err)
		assert.Nil(t, cart)
	})
}

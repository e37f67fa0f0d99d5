package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
		check         func(*testing.T, *model.User)
	}{
		{
			name:     "username only",
			username: "newalice",
			password: "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					Username:     "alice",
					PasswordHash: string(oldHash),
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, "newalice", user.Username)
				assert.Equal(t, string(oldHash), user.PasswordHash)
			},
		},
		{
			name:     "password only is rehashed",
			username: "",
			password: "newpassword",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					Username:     "alice",
					PasswordHash: string(oldHash),
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, "alice", user.Username)
				assert.NotEqual(t, string(oldHash), user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
			},
		},
		{
			name:     "user not found",
			username: "newalice",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, new(MockProductRepository))
			user, err := service.UpdateProfile(context.Background(), userID, tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				tt.check(t, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_AddFavourite(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	product := &model.Product{ID: productID, Name: "French Press"}

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockProductRepository)
		expectedError error
	}{
		{
			name: "adds new favourite",
			setupMock: func(mUser *MockUserRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(product, nil)
				mUser.On("FindByIDWithFavourites", mock.Anything, userID).Return(&model.User{
					ID:         userID,
					Favourites: []model.Product{},
				}, nil)
				mUser.On("AddFavourite", mock.Anything, mock.AnythingOfType("*model.User"), product).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "already favourite",
			setupMock: func(mUser *MockUserRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(product, nil)
				mUser.On("FindByIDWithFavourites", mock.Anything, userID).Return(&model.User{
					ID:         userID,
					Favourites: []model.Product{*product},
				}, nil)
			},
			expectedError: errors.ErrAlreadyFavourite,
		},
		{
			name: "product missing",
			setupMock: func(mUser *MockUserRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockProductRepo := new(MockProductRepository)
			tt.setupMock(mockUserRepo, mockProductRepo)

			service := NewUserService(mockUserRepo, mockProductRepo)
			err := service.AddFavourite(context.Background(), userID, productID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockProductRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_RemoveFavourite(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("removes existing favourite", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByIDWithFavourites", mock.Anything, userID).Return(&model.User{
			ID:         userID,
			Favourites: []model.Product{{ID: productID, Name: "French Press"}},
		}, nil)
		mockUserRepo.On("RemoveFavourite", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewUserService(mockUserRepo, new(MockProductRepository))
		assert.NoError(t, service.RemoveFavourite(context.Background(), userID, productID))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("not a favourite", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByIDWithFavourites", mock.Anything, userID).Return(&model.User{
			ID:         userID,
			Favourites: []model.Product{},
		}, nil)

		service := NewUserService(mockUserRepo, new(MockProductRepository))
		assert.Equal(t, errors.ErrNotFavourite, service.RemoveFavourite(context.Background(), userID, productID))
	})
}

func TestUserService_ListFavourites(t *testing.T) {
	userID := uuid.New()

	t.Run("returns favourites", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByIDWithFavourites", mock.Anything, userID).Return(&model.User{
			ID: userID,
			Favourites: []model.Product{
				{Name: "Wireless Headphones"},
				{Name: "Mechanical Keyboard"},
			},
		}, nil)

		service := NewUserService(mockUserRepo, new(MockProductRepository))
		products, err := service.ListFavourites(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("empty list not nil", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByIDWithFavourites", mock.Anything, userID).Return(&model.User{ID: userID}, nil)

		service := NewUserService(mockUserRepo, new(MockProductRepository))
		products, err := service.ListFavourites(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("user missing", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByIDWithFavourites", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockUserRepo, new(MockProductRepository))
		products, err := service.ListFavourites(context.Background(), userID)

		assert.Equal(t, errors.ErrUserNotFound, err)
		assert.Nil(t, products)
	})
}

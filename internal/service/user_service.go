package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// UserService handles profile and favourites operations.
type UserService interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, password string) (*model.User, error)
	AddFavourite(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error
	ListFavourites(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
}

type userService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, productRepo repository.ProductRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// UpdateProfile updates username and/or password of the authenticated user.
// Empty fields are left untouched.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if username != "" {
		user.Username = username
	}
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// AddFavourite links a product to the user's favourites.
func (s *userService) AddFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}

	user, err := s.userRepo.FindByIDWithFavourites(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	for _, fav := range user.Favourites {
		if fav.ID == productID {
			return errors.ErrAlreadyFavourite
		}
	}

	if err := s.userRepo.AddFavourite(ctx, user, product); err != nil {
		return fmt.Errorf("add favourite: %w", err)
	}
	return nil
}

// RemoveFavourite unlinks a product from the user's favourites.
func (s *userService) RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	user, err := s.userRepo.FindByIDWithFavourites(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	var product *model.Product
	for i := range user.Favourites {
		if user.Favourites[i].ID == productID {
			product = &user.Favourites[i]
			break
		}
	}
	if product == nil {
		return errors.ErrNotFavourite
	}

	if err := s.userRepo.RemoveFavourite(ctx, user, product); err != nil {
		return fmt.Errorf("remove favourite: %w", err)
	}
	return nil
}

// ListFavourites returns the user's favourite products expanded.
func (s *userService) ListFavourites(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	user, err := s.userRepo.FindByIDWithFavourites(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Favourites == nil {
		return []model.Product{}, nil
	}
	return user.Favourites, nil
}

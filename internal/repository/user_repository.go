package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDWithFavourites(ctx context.Context, id uuid.UUID) (*model.User, error)
	AddFavourite(ctx context.Context, user *model.User, product *model.Product) error
	RemoveFavourite(ctx context.Context, user *model.User, product *model.Product) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithFavourites finds a user by ID with favourite products expanded.
func (r *userRepository) FindByIDWithFavourites(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Favourites").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddFavourite links a product to the user's favourites.
func (r *userRepository) AddFavourite(ctx context.Context, user *model.User, product *model.Product) error {
	return r.db.WithContext(ctx).Model(user).Association("Favourites").Append(product)
}

// RemoveFavourite unlinks a product from the user's favourites.
func (r *userRepository) RemoveFavourite(ctx context.Context, user *model.User, product *model.Product) error {
	return r.db.WithContext(ctx).Model(user).Association("Favourites").Delete(product)
}

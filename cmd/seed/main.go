package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	adminEmail    = "admin@storefront.local"
	adminUsername = "admin"
	adminPassword = "admin123"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Inventory   int
	Image       string
	Tags        []model.ProductTag
	Category    string
}

var seedCategories = []model.Category{
	{Name: "Electronics", Description: "Phones, laptops and accessories"},
	{Name: "Clothing", Description: "Apparel for all seasons"},
	{Name: "Home & Kitchen", Description: "Everything for the home"},
}

var seedProducts = []seedProduct{
	{
		Name:        "Wireless Headphones",
		Description: "Over-ear headphones with active noise cancellation",
		Price:       "129.99",
		Inventory:   50,
		Image:       "https://cdn.storefront.local/img/headphones.jpg",
		Tags:        []model.ProductTag{model.TagPopular, model.TagFeatured},
		Category:    "Electronics",
	},
	{
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless keyboard with hot-swappable switches",
		Price:       "89.50",
		Inventory:   30,
		Image:       "https://cdn.storefront.local/img/keyboard.jpg",
		Tags:        []model.ProductTag{model.TagNew},
		Category:    "Electronics",
	},
	{
		Name:        "Cotton T-Shirt",
		Description: "Plain crew-neck t-shirt, 100% cotton",
		Price:       "14.99",
		Inventory:   200,
		Image:       "https://cdn.storefront.local/img/tshirt.jpg",
		Tags:        []model.ProductTag{model.TagSale, model.TagDiscount},
		Category:    "Clothing",
	},
	{
		Name:        "Denim Jacket",
		Description: "Classic fit denim jacket",
		Price:       "59.00",
		Inventory:   40,
		Image:       "https://cdn.storefront.local/img/jacket.jpg",
		Tags:        []model.ProductTag{model.TagPopular},
		Category:    "Clothing",
	},
	{
		Name:        "Cast Iron Skillet",
		Description: "Pre-seasoned 12 inch skillet",
		Price:       "34.95",
		Inventory:   75,
		Image:       "https://cdn.storefront.local/img/skillet.jpg",
		Tags:        []model.ProductTag{model.TagFeatured},
		Category:    "Home & Kitchen",
	},
	{
		Name:        "French Press",
		Description: "1 litre borosilicate glass french press",
		Price:       "24.00",
		Inventory:   0,
		Image:       "https://cdn.storefront.local/img/frenchpress.jpg",
		Tags:        []model.ProductTag{model.TagLimited},
		Category:    "Home & Kitchen",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	categoriesByName, err := seedCatalogCategories(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	created, err := seedCatalogProducts(ctx, productRepo, categoriesByName)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Categories: %d", len(categoriesByName))
	log.Printf("  - New products created: %d", created)
}

// seedAdmin creates the admin user if it does not already exist.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	existing, err := repo.FindByEmail(ctx, adminEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("error checking admin user: %w", err)
	}
	if existing != nil {
		log.Println("Admin user already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &model.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}

	log.Printf("Admin user created: %s", adminEmail)
	return nil
}

// seedCatalogCategories creates missing categories and returns all of them by name.
func seedCatalogCategories(ctx context.Context, repo repository.CategoryRepository) (map[string]model.Category, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	byName := make(map[string]model.Category, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}

	for _, category := range seedCategories {
		if _, ok := byName[category.Name]; ok {
			continue
		}
		c := category
		if err := repo.Create(ctx, &c); err != nil {
			return nil, fmt.Errorf("error creating category %s: %w", c.Name, err)
		}
		byName[c.Name] = c
		log.Printf("Category created: %s", c.Name)
	}

	return byName, nil
}

// seedCatalogProducts creates the seed products that are not already present.
func seedCatalogProducts(ctx context.Context, repo repository.ProductRepository, categories map[string]model.Category) (int, error) {
	created := 0
	for _, sp := range seedProducts {
		category, ok := categories[sp.Category]
		if !ok {
			return created, fmt.Errorf("unknown category %s for product %s", sp.Category, sp.Name)
		}

		existing, _, err := repo.List(ctx, repository.ProductFilter{Search: sp.Name}, 1, 1)
		if err != nil {
			return created, fmt.Errorf("error checking product %s: %w", sp.Name, err)
		}
		if len(existing) > 0 {
			continue
		}

		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return created, fmt.Errorf("invalid price for product %s: %w", sp.Name, err)
		}

		product := &model.Product{
			Name:        sp.Name,
			Description: sp.Description,
			Price:       price,
			Inventory:   sp.Inventory,
			CategoryID:  category.ID,
			Image:       sp.Image,
			Tags:        sp.Tags,
		}
		if err := repo.Create(ctx, product); err != nil {
			return created, fmt.Errorf("error creating product %s: %w", sp.Name, err)
		}
		created++
		log.Printf("Product created: %s", sp.Name)
	}

	return created, nil
}

package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/errors"
	"storefront/internal/handler"
	"storefront/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	cartHandler *handler.CartHandler,
	paymentHandler *handler.PaymentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})

	// User routes
	users := api.Group("/users")
	users.POST("/signup", authHandler.Signup)
	users.POST("/login", authHandler.Login)
	users.POST("/refresh", authHandler.Refresh)
	users.POST("/logout", authHandler.Logout)

	user := api.Group("/user", jwtMiddleware)
	user.PUT("/updateprofile", userHandler.UpdateProfile)
	user.GET("/favourites", userHandler.Favourites)
	user.POST("/addFavourite", userHandler.AddFavourite)
	user.DELETE("/removeFavourite", userHandler.RemoveFavourite)

	// Catalog routes. Reads are public, writes are admin-only.
	products := api.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/products/category", productHandler.ProductsByCategory)
	products.GET("/products/popular", productHandler.PopularProducts)
	products.GET("/products/featured", productHandler.FeaturedProducts)
	products.GET("/products/tag/:tag", productHandler.ProductsByTag)
	products.GET("/:id", productHandler.GetProduct)

	productsAdmin := products.Group("", jwtMiddleware, AdminOnly)
	productsAdmin.POST("", productHandler.CreateProduct)
	productsAdmin.PUT("/:id", productHandler.UpdateProduct)
	productsAdmin.DELETE("/:id", productHandler.DeleteProduct)
	productsAdmin.PUT("/inventory/:id", productHandler.UpdateInventory)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	categoriesAdmin := categories.Group("", jwtMiddleware, AdminOnly)
	categoriesAdmin.POST("", categoryHandler.CreateCategory)
	categoriesAdmin.PUT("/:id", categoryHandler.UpdateCategory)
	categoriesAdmin.DELETE("/:id", categoryHandler.DeleteCategory)

	// Cart routes
	cart := api.Group("/cart", jwtMiddleware)
	cart.GET("/view", cartHandler.ViewCart)
	cart.POST("/add", cartHandler.AddToCart)
	cart.DELETE("/clear", cartHandler.ClearCart)
	cart.DELETE("/remove/:productId", cartHandler.RemoveFromCart)

	// Payment routes
	payment := api.Group("/payment", jwtMiddleware)
	payment.POST("/checkout", paymentHandler.Checkout)
	payment.POST("/create-payment", paymentHandler.CreatePayment)
	payment.POST("/confirm-payment", paymentHandler.ConfirmPayment)
}

// AdminOnly rejects requests whose token does not carry the admin role.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "invalid token",
				Code:  "UNAUTHORIZED",
			})
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != string(model.RoleAdmin) {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

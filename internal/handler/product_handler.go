package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" validate:"required"`
	Inventory   int      `json:"inventory" validate:"gte=0"`
	CategoryID  string   `json:"category_id" validate:"required,uuid"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

// UpdateProductRequest represents a partial product update. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Inventory   *int     `json:"inventory" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	Image       *string  `json:"image"`
	Tags        []string `json:"tags"`
}

// UpdateInventoryRequest represents an inventory override request.
type UpdateInventoryRequest struct {
	Inventory int `json:"inventory" validate:"gte=0"`
}

func toTags(raw []string) ([]model.ProductTag, error) {
	if raw == nil {
		return nil, nil
	}
	tags := make([]model.ProductTag, 0, len(raw))
	for _, t := range raw {
		tag := model.ProductTag(t)
		if !model.ValidTag(tag) {
			return nil, errors.ErrInvalidTag
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "INVALID_PRICE",
		})
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category_id",
			Code:  "INVALID_UUID",
		})
	}

	tags, err := toTags(req.Tags)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Inventory:   req.Inventory,
		CategoryID:  categoryID,
		Image:       req.Image,
		Tags:        tags,
	}

	created, err := h.productService.CreateProduct(c.Request().Context(), product)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid product id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Inventory:   req.Inventory,
		Image:       req.Image,
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid price",
				Code:  "INVALID_PRICE",
			})
		}
		patch.Price = &price
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid category_id",
				Code:  "INVALID_UUID",
			})
		}
		patch.CategoryID = &categoryID
	}

	if req.Tags != nil {
		tags, err := toTags(req.Tags)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		patch.Tags = tags
	}

	updated, err := h.productService.UpdateProduct(c.Request().Context(), id, patch)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid product id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProduct godoc
// @Summary Get a single product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid product id",
			Code:  "INVALID_UUID",
		})
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, product)
}

// ListProducts godoc
// @Summary List products with filtering and pagination
// @Tags products
// @Produce json
// @Param search query string false "Name substring, case-insensitive"
// @Param category query string false "Category ID"
// @Param minPrice query string false "Minimum price"
// @Param maxPrice query string false "Maximum price"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} service.ProductPage
// @Failure 400 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var filter repository.ProductFilter

	filter.Search = c.QueryParam("search")

	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid category",
				Code:  "INVALID_UUID",
			})
		}
		filter.CategoryID = &categoryID
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid minPrice",
				Code:  "INVALID_PRICE",
			})
		}
		filter.MinPrice = &minPrice
	}

	if raw := c.QueryParam("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid maxPrice",
				Code:  "INVALID_PRICE",
			})
		}
		filter.MaxPrice = &maxPrice
	}

	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid page",
			Code:  "INVALID_PAGINATION",
		})
	}

	pageSize, err := queryInt(c, "limit", defaultPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid limit",
			Code:  "INVALID_PAGINATION",
		})
	}

	result, err := h.productService.ListProducts(c.Request().Context(), filter, page, pageSize)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}

// ProductsByCategory godoc
// @Summary List all products in a category
// @Tags products
// @Produce json
// @Param category query string true "Category ID"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/products/category [get]
func (h *ProductHandler) ProductsByCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category",
			Code:  "INVALID_UUID",
		})
	}

	products, err := h.productService.GetProductsByCategory(c.Request().Context(), categoryID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, products)
}

// PopularProducts godoc
// @Summary List products tagged popular
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/products/popular [get]
func (h *ProductHandler) PopularProducts(c echo.Context) error {
	return h.productsByTag(c, model.TagPopular)
}

// FeaturedProducts godoc
// @Summary List products tagged featured
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/products/featured [get]
func (h *ProductHandler) FeaturedProducts(c echo.Context) error {
	return h.productsByTag(c, model.TagFeatured)
}

// ProductsByTag godoc
// @Summary List products carrying a tag
// @Tags products
// @Produce json
// @Param tag path string true "Tag name"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/products/tag/{tag} [get]
func (h *ProductHandler) ProductsByTag(c echo.Context) error {
	return h.productsByTag(c, model.ProductTag(c.Param("tag")))
}

func (h *ProductHandler) productsByTag(c echo.Context, tag model.ProductTag) error {
	products, err := h.productService.GetProductsByTag(c.Request().Context(), tag)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, products)
}

// UpdateInventory godoc
// @Summary Set a product's inventory level
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateInventoryRequest true "Inventory level"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/inventory/{id} [put]
func (h *ProductHandler) UpdateInventory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid product id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	product, err := h.productService.UpdateInventory(c.Request().Context(), id, req.Inventory)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, product)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

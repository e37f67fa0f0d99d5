package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/errors"
	"storefront/internal/service"
)

// PaymentHandler handles checkout and payment endpoints.
type PaymentHandler struct {
	checkoutService service.CheckoutService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(checkoutService service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkoutService: checkoutService}
}

// CheckoutItemRequest is a product reference with quantity.
type CheckoutItemRequest struct {
	ID       string `json:"id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest represents a hosted checkout request.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CheckoutResponse carries the hosted payment page URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PaymentItemRequest is a priced line for a direct payment intent.
type PaymentItemRequest struct {
	Price    string `json:"price" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreatePaymentRequest represents a direct payment intent request.
type CreatePaymentRequest struct {
	Items []PaymentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreatePaymentResponse carries the provider client secret.
type CreatePaymentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// ConfirmPaymentRequest represents a payment confirmation request.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// ConfirmPaymentResponse reports the resulting payment status.
type ConfirmPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// Checkout godoc
// @Summary Start a hosted checkout session for the cart
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest true "Cart items"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payment/checkout [post]
func (h *PaymentHandler) Checkout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token",
			Code:  "UNAUTHORIZED",
		})
	}

	var req CheckoutRequest
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

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid product id",
				Code:  "INVALID_UUID",
			})
		}
		items = append(items, service.CheckoutItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	url, err := h.checkoutService.Checkout(c.Request().Context(), userID, items)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CheckoutResponse{URL: url})
}

// CreatePayment godoc
// @Summary Create a direct payment intent for priced items
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentRequest true "Priced items"
// @Success 200 {object} CreatePaymentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payment/create-payment [post]
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token",
			Code:  "UNAUTHORIZED",
		})
	}

	var req CreatePaymentRequest
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

	items := make([]service.PaymentItem, 0, len(req.Items))
	for _, item := range req.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil || price.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid price",
				Code:  "INVALID_PRICE",
			})
		}
		items = append(items, service.PaymentItem{
			Price:    price,
			Quantity: item.Quantity,
		})
	}

	clientSecret, err := h.checkoutService.CreatePayment(c.Request().Context(), userID, items)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CreatePaymentResponse{ClientSecret: clientSecret})
}

// ConfirmPayment godoc
// @Summary Confirm a payment against the provider
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmPaymentRequest true "Transaction reference"
// @Success 200 {object} ConfirmPaymentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payment/confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	var req ConfirmPaymentRequest
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

	payment, err := h.checkoutService.ConfirmPayment(c.Request().Context(), req.TransactionID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ConfirmPaymentResponse{
		TransactionID: payment.TransactionID,
		Status:        string(payment.Status),
		Message:       "payment completed successfully",
	})
}

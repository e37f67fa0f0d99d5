package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCartNotFound is returned when the user has no cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a product is not in the cart.
	ErrCartItemNotFound = errors.New("product not found in cart")
	// ErrCartEmpty is returned when checkout finds no cart items to charge.
	ErrCartEmpty = errors.New("cart not found or cart is empty")
	// ErrInsufficientStock is returned when requested quantity exceeds inventory.
	ErrInsufficientStock = errors.New("not enough stock available")
	// ErrInvalidQuantity is returned when quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPaymentNotFound is returned when no payment matches a transaction id.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentNotCompleted is returned when the provider reports the
	// transaction as not (yet) paid.
	ErrPaymentNotCompleted = errors.New("payment not completed")
	// ErrInvalidAmount is returned when a computed total is not a valid amount.
	ErrInvalidAmount = errors.New("invalid total amount")
	// ErrAlreadyFavourite is returned when a product is already in favourites.
	ErrAlreadyFavourite = errors.New("product already in favourites")
	// ErrNotFavourite is returned when a product is not in favourites.
	ErrNotFavourite = errors.New("product not in favourites")
	// ErrInvalidTag is returned when a tag is outside the known enumeration.
	ErrInvalidTag = errors.New("unknown product tag")
	// ErrInvalidPagination is returned when page or page size is below 1.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse to
// a generic 500 so internal details are never echoed to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrProductNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrCartNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CART_NOT_FOUND")
	case ErrCartItemNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CART_ITEM_NOT_FOUND")
	case ErrCartEmpty:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CART_EMPTY")
	case ErrInsufficientStock:
		return NewHTTPError(http.StatusConflict, err.Error(), "INSUFFICIENT_STOCK")
	case ErrInvalidQuantity:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrPaymentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PAYMENT_NOT_FOUND")
	case ErrPaymentNotCompleted:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PAYMENT_NOT_COMPLETED")
	case ErrInvalidAmount:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case ErrAlreadyFavourite:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_FAVOURITE")
	case ErrNotFavourite:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_FAVOURITE")
	case ErrInvalidTag:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TAG")
	case ErrInvalidPagination:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PAGINATION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/payment"
	"storefront/internal/repository"
)

const checkoutCurrency = "usd"

// CheckoutItem is a client-supplied (product, quantity) pair used to build a
// cart when the user has none persisted.
type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// PaymentItem is a client-supplied priced line used by the direct payment
// intent path. Prices are taken as sent, not re-read from the catalog.
type PaymentItem struct {
	Price    decimal.Decimal
	Quantity int
}

// CheckoutService handles the cart-to-payment flow.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, items []CheckoutItem) (redirectURL string, err error)
	CreatePayment(ctx context.Context, userID uuid.UUID, items []PaymentItem) (clientSecret string, err error)
	ConfirmPayment(ctx context.Context, transactionID string) (*model.Payment, error)
}

type checkoutService struct {
	cartRepo    repository.CartRepository
	paymentRepo repository.PaymentRepository
	provider    payment.Provider
	frontendURL string
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	paymentRepo repository.PaymentRepository,
	provider payment.Provider,
	frontendURL string,
) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		paymentRepo: paymentRepo,
		provider:    provider,
		frontendURL: frontendURL,
	}
}

// Checkout expands the user's cart into provider line items, opens a hosted
// checkout session and records a pending payment keyed by the session id.
// The cart is left untouched: inventory was already reserved at add-to-cart
// and the items stay in place until the user clears them.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, items []CheckoutItem) (string, error) {
	if len(items) == 0 {
		return "", errors.ErrCartEmpty
	}

	cart, err := s.cartRepo.FindByUserWithProducts(ctx, userID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return "", fmt.Errorf("find cart: %w", err)
		}
		// No persisted cart: build one from the client-side items and
		// re-read it with product references expanded.
		newCart := &model.Cart{UserID: userID}
		for _, item := range items {
			newCart.Items = append(newCart.Items, model.CartItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := s.cartRepo.Create(ctx, newCart); err != nil {
			return "", fmt.Errorf("create cart: %w", err)
		}
		cart, err = s.cartRepo.FindByUserWithProducts(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("reload cart: %w", err)
		}
	}

	if cart == nil || len(cart.Items) == 0 {
		return "", errors.ErrCartEmpty
	}

	lineItems := make([]payment.LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		if product == nil {
			return "", fmt.Errorf("product details are missing for cart item %s", item.ID)
		}
		description := product.Description
		if description == "" {
			description = "No description available"
		}
		lineItems = append(lineItems, payment.LineItem{
			Name:        product.Name,
			Description: description,
			UnitAmount:  product.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
			Quantity:    int64(item.Quantity),
			Currency:    checkoutCurrency,
		})
	}

	session, err := s.provider.CreateCheckoutSession(
		ctx,
		lineItems,
		s.frontendURL+"/success?session_id={CHECKOUT_SESSION_ID}",
		s.frontendURL+"/cancel",
	)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			log.Printf("checkout: skipping cart item %s with invalid quantity %d", item.ID, item.Quantity)
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return "", errors.ErrInvalidAmount
	}

	pmt := &model.Payment{
		UserID:        userID,
		Amount:        total,
		Currency:      checkoutCurrency,
		Status:        model.PaymentStatusPending,
		TransactionID: session.ID,
	}
	if err := s.paymentRepo.Create(ctx, pmt); err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}

	return session.URL, nil
}

// CreatePayment opens a direct payment intent over client-supplied prices and
// records a pending payment keyed by the intent id. Totals are computed from
// what the client sent, mirroring the hosted-session path's line items.
func (s *checkoutService) CreatePayment(ctx context.Context, userID uuid.UUID, items []PaymentItem) (string, error) {
	if len(items) == 0 {
		return "", errors.ErrCartEmpty
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			log.Printf("create payment: skipping item with invalid quantity %d", item.Quantity)
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return "", errors.ErrInvalidAmount
	}

	amountMinor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	intent, err := s.provider.CreatePaymentIntent(ctx, amountMinor, checkoutCurrency, map[string]string{
		"user_id": userID.String(),
	})
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	pmt := &model.Payment{
		UserID:        userID,
		Amount:        total,
		Currency:      checkoutCurrency,
		Status:        model.PaymentStatusPending,
		TransactionID: intent.ID,
	}
	if err := s.paymentRepo.Create(ctx, pmt); err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}

	return intent.ClientSecret, nil
}

// ConfirmPayment checks the provider's actual outcome for the transaction and
// marks the payment completed only when the provider reports it paid.
func (s *checkoutService) ConfirmPayment(ctx context.Context, transactionID string) (*model.Payment, error) {
	pmt, err := s.paymentRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}

	paid, err := s.provider.VerifyTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}
	if !paid {
		return nil, errors.ErrPaymentNotCompleted
	}

	pmt.Status = model.PaymentStatusCompleted
	if err := s.paymentRepo.Update(ctx, pmt); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	return pmt, nil
}

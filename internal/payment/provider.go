package payment

import "context"

// LineItem is one chargeable (name, unit price, quantity) entry of a
// checkout session. UnitAmount is in minor currency units.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
	Currency    string
}

// CheckoutSession identifies a hosted checkout attempt at the provider.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentIntent identifies a direct charge authorization at the provider.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// Provider abstracts the external payment collaborator so services can be
// tested against a mock.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	// VerifyTransaction reports whether the provider considers the session
	// or intent behind transactionID paid.
	VerifyTransaction(ctx context.Context, transactionID string) (bool, error)
}

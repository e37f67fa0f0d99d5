package payment

import (
	"context"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	api *client.API
}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider creates a provider bound to one secret key.
func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// CreateCheckoutSession creates a hosted card checkout session.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(item.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
	}

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// CreatePaymentIntent creates a direct payment intent for amount minor units.
func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// VerifyTransaction asks Stripe for the actual outcome of a session or intent.
func (p *StripeProvider) VerifyTransaction(ctx context.Context, transactionID string) (bool, error) {
	params := &stripe.Params{Context: ctx}

	switch {
	case strings.HasPrefix(transactionID, "cs_"):
		session, err := p.api.CheckoutSessions.Get(transactionID, &stripe.CheckoutSessionParams{Params: *params})
		if err != nil {
			return false, fmt.Errorf("get checkout session: %w", err)
		}
		return session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
	case strings.HasPrefix(transactionID, "pi_"):
		intent, err := p.api.PaymentIntents.Get(transactionID, &stripe.PaymentIntentParams{Params: *params})
		if err != nil {
			return false, fmt.Errorf("get payment intent: %w", err)
		}
		return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
	default:
		return false, fmt.Errorf("unrecognized transaction id format")
	}
}

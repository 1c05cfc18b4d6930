// Package payment wraps the external payment processor behind a small
// gateway interface so the enrollment flow can be tested without network
// access.
package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeGateway creates payment intents against the Stripe API. It
// satisfies service.PaymentGateway.
type StripeGateway struct {
	log zerolog.Logger
}

// NewStripeGateway configures the Stripe client with the secret key.
func NewStripeGateway(secretKey string, log zerolog.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		log: log.With().Str("component", "stripe_gateway").Logger(),
	}
}

// CreateIntent creates a payment intent and returns its client secret for
// the browser-side confirmation step.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		g.log.Error().Err(err).Int64("amount_cents", amountCents).Msg("Payment intent creation failed")
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return pi.ClientSecret, nil
}

package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"rently/config"
	"rently/models"
)

// StripeProvider creates hosted checkout sessions for confirmed bookings.
// The global stripe.Key is set in main from config.
type StripeProvider struct {
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

func NewStripeProvider(logger *zap.Logger) *StripeProvider {
	return &StripeProvider{
		SuccessURL: config.AppConfig.PaymentSuccessURL,
		CancelURL:  config.AppConfig.PaymentCancelURL,
		Logger:     logger,
	}
}

// CreateCheckout builds a Stripe Checkout session for the booking total. The
// client is redirected to the hosted page and returns to the success/cancel
// URL carrying the booking id.
func (p *StripeProvider) CreateCheckout(ctx context.Context, bookingID string, amount float64, currency string) (*models.PaymentIntentHandle, error) {
	if currency == "" {
		currency = "USD"
	}
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(currency)),
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Car rental booking " + bookingID),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s?booking_id=%s", p.SuccessURL, bookingID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s?booking_id=%s", p.CancelURL, bookingID)),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	p.Logger.Info("checkout session created",
		zap.String("bookingId", bookingID),
		zap.String("sessionId", s.ID))

	return &models.PaymentIntentHandle{
		IntentID:    s.ID,
		BookingID:   bookingID,
		Amount:      amount,
		Currency:    currency,
		CheckoutURL: s.URL,
	}, nil
}

package booking

import (
	"context"
	"time"

	"rently/models"
	"rently/services/rentalapi"
)

// WizardService drives the multi-step booking flow: staged drafts, live
// pricing, and final submission with payment handoff.
type WizardService interface {
	StartSession(ctx context.Context, carID string) (string, *models.BookingDraft, error)
	GetDraft(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	UpdateStep(ctx context.Context, sessionID, stepKey string, partial map[string]any) (*models.BookingDraft, error)
	Quote(ctx context.Context, sessionID string) (*models.Quote, error)
	Confirm(ctx context.Context, sessionID string) (*models.BookingConfirmation, *models.PaymentIntentHandle, error)
	Cancel(ctx context.Context, sessionID string) error
}

// SubmissionGateway is the slice of the upstream client the wizard needs.
type SubmissionGateway interface {
	SubmitBooking(ctx context.Context, req rentalapi.BookingRequest) (*models.BookingConfirmation, error)
	CreatePaymentIntent(ctx context.Context, bookingID string, amount float64, successURL, cancelURL string) (*models.PaymentIntentHandle, error)
}

// PaymentProvider creates a provider-hosted checkout directly (e.g. Stripe)
// when this service, not the upstream API, owns the payment step.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, bookingID string, amount float64, currency string) (*models.PaymentIntentHandle, error)
}

// ReminderScheduler queues a pickup reminder for later delivery.
type ReminderScheduler interface {
	SchedulePickupReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

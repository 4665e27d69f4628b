package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rently/models"
	"rently/services/catalog"
	"rently/services/rentalapi"
)

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Drafts   DraftStore
	Catalog  catalog.Service
	Gateway  SubmissionGateway
	Payments PaymentProvider   // optional; falls back to the upstream intent endpoint
	Reminder ReminderScheduler // optional
	Logger   *zap.Logger

	SuccessURL string
	CancelURL  string
}

// StartSession creates a fresh draft, optionally seeded with a car selection.
func (svc *DefaultWizardService) StartSession(ctx context.Context, carID string) (string, *models.BookingDraft, error) {
	sessionID := uuid.New().String()

	if carID == "" {
		if err := svc.Drafts.Set(ctx, sessionID, models.BookingDraft{LastUpdated: time.Now()}); err != nil {
			return "", nil, err
		}
		draft, err := svc.Drafts.Get(ctx, sessionID)
		if err != nil {
			return "", nil, err
		}
		return sessionID, draft, nil
	}

	vehicle, err := svc.Catalog.GetVehicle(ctx, carID)
	if err != nil {
		return "", nil, fmt.Errorf("cannot start booking: %w", err)
	}
	draft, err := svc.Drafts.UpdateStep(ctx, sessionID, models.StepSelectedCar, map[string]any{
		"carId":       vehicle.ID,
		"name":        fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model),
		"pricePerDay": vehicle.PricePerDay,
		"currency":    vehicle.Currency,
		"imageUrl":    vehicle.ImageURL,
	})
	if err != nil {
		return "", nil, err
	}
	return sessionID, draft, nil
}

func (svc *DefaultWizardService) GetDraft(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	return svc.Drafts.Get(ctx, sessionID)
}

// UpdateStep merges a partial step update after checking the navigation gate:
// a step only accepts data when every previous step has some.
func (svc *DefaultWizardService) UpdateStep(ctx context.Context, sessionID, stepKey string, partial map[string]any) (*models.BookingDraft, error) {
	cur, err := svc.Drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	base := models.BookingDraft{}
	if cur != nil {
		base = *cur
	}
	if !CanEnterStep(base, stepKey) {
		return nil, NewStepGateError(stepKey)
	}
	return svc.Drafts.UpdateStep(ctx, sessionID, stepKey, partial)
}

// Quote derives the live price breakdown from the accumulated draft.
func (svc *DefaultWizardService) Quote(ctx context.Context, sessionID string) (*models.Quote, error) {
	draft, err := svc.Drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	priced, err := svc.price(ctx, *draft)
	if err != nil {
		return nil, err
	}
	return &priced.quote, nil
}

// Confirm resolves catalog ids, submits the booking upstream, hands off to
// the payment provider for card payments, queues a pickup reminder and clears
// the draft.
func (svc *DefaultWizardService) Confirm(ctx context.Context, sessionID string) (*models.BookingConfirmation, *models.PaymentIntentHandle, error) {
	draft, err := svc.Drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if draft == nil {
		return nil, nil, ErrDraftNotFound
	}
	if missing := FirstMissingStep(*draft); missing != "" {
		return nil, nil, NewIncompleteDraftError(missing)
	}

	priced, err := svc.price(ctx, *draft)
	if err != nil {
		return nil, nil, err
	}

	var packageID string
	if priced.plan != nil {
		packageID = priced.plan.ID
	}
	req := rentalapi.AssembleBookingRequest(*draft, priced.pickup, priced.ret, packageID, priced.lines)

	conf, err := svc.Gateway.SubmitBooking(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	var handle *models.PaymentIntentHandle
	if draft.Step4 != nil && draft.Step4.Method == "card" {
		handle, err = svc.createPayment(ctx, conf.BookingID, priced.quote)
		if err != nil {
			// The booking exists upstream; surface the payment failure but
			// keep the confirmation so the user can retry payment.
			svc.Logger.Error("payment handoff failed",
				zap.String("bookingId", conf.BookingID), zap.Error(err))
			return conf, nil, err
		}
	}

	svc.scheduleReminder(ctx, *draft, conf.BookingID, priced.pickup)

	if err := svc.Drafts.Clear(ctx, sessionID); err != nil {
		svc.Logger.Warn("failed to clear draft after confirmation",
			zap.String("session", sessionID), zap.Error(err))
	}
	return conf, handle, nil
}

func (svc *DefaultWizardService) Cancel(ctx context.Context, sessionID string) error {
	return svc.Drafts.Clear(ctx, sessionID)
}

// pricedDraft carries everything Confirm needs beyond the quote itself.
type pricedDraft struct {
	quote  models.Quote
	plan   *models.ProtectionPlan
	lines  []rentalapi.AddonLine
	pickup time.Time
	ret    time.Time
}

func (svc *DefaultWizardService) price(ctx context.Context, draft models.BookingDraft) (*pricedDraft, error) {
	if draft.SelectedCar == nil || draft.SelectedCar.CarID == "" {
		return nil, &WizardError{Code: "noCarSelected", Message: "select a car before requesting a price"}
	}
	if draft.Step1 == nil || draft.Step1.PickupAt == "" || draft.Step1.ReturnAt == "" {
		return nil, &WizardError{Code: "missingDates", Message: "pickup and return times are required"}
	}

	pickup, err := ParseDateTime(draft.Step1.PickupAt)
	if err != nil {
		return nil, &WizardError{Code: "badDate", Message: fmt.Sprintf("unparseable pickup time %q", draft.Step1.PickupAt)}
	}
	ret, err := ParseDateTime(draft.Step1.ReturnAt)
	if err != nil {
		return nil, &WizardError{Code: "badDate", Message: fmt.Sprintf("unparseable return time %q", draft.Step1.ReturnAt)}
	}
	days, err := DurationDays(pickup, ret)
	if err != nil {
		return nil, err
	}

	// The catalog is authoritative for the base rate; the snapshot in the
	// draft is only a display hint.
	basePerDay := draft.SelectedCar.PricePerDay
	currency := draft.SelectedCar.Currency
	if vehicle, err := svc.Catalog.GetVehicle(ctx, draft.SelectedCar.CarID); err == nil {
		basePerDay = vehicle.PricePerDay
		currency = vehicle.Currency
	} else {
		svc.Logger.Warn("vehicle lookup failed, pricing from draft snapshot",
			zap.String("carId", draft.SelectedCar.CarID), zap.Error(err))
	}
	if currency == "" {
		currency = "USD"
	}

	var plan *models.ProtectionPlan
	if draft.Step2 != nil && draft.Step2.PlanKey != "" {
		resolved, ok := ResolvePlan(svc.Catalog.ProtectionPlans(), draft.Step2.PlanKey)
		if ok {
			plan = resolved
		} else {
			svc.Logger.Warn("unknown protection plan ignored", zap.String("planKey", draft.Step2.PlanKey))
		}
	}

	var resolved []ResolvedAddOn
	var lines []rentalapi.AddonLine
	if draft.Step2 != nil && len(draft.Step2.AddOns) > 0 {
		addOnCatalog := svc.Catalog.AddOns(ctx)
		for _, sel := range draft.Step2.AddOns {
			addOn, ok := ResolveAddOn(addOnCatalog, sel.Key)
			if !ok {
				// Never submit a placeholder id.
				svc.Logger.Warn("unresolved add-on dropped", zap.String("key", sel.Key))
				continue
			}
			qty := sel.Quantity
			if qty < 1 {
				qty = 1
			}
			if addOn.MaxQuantity > 0 && qty > addOn.MaxQuantity {
				qty = addOn.MaxQuantity
			}
			resolved = append(resolved, ResolvedAddOn{AddOn: *addOn, Quantity: qty})
			lines = append(lines, rentalapi.AddonLine{ID: addOn.ID, Quantity: qty})
		}
	}

	quote := ComputeTotal(basePerDay, plan, resolved, days)
	quote.Currency = currency

	return &pricedDraft{
		quote:  quote,
		plan:   plan,
		lines:  lines,
		pickup: pickup,
		ret:    ret,
	}, nil
}

func (svc *DefaultWizardService) createPayment(ctx context.Context, bookingID string, quote models.Quote) (*models.PaymentIntentHandle, error) {
	if svc.Payments != nil {
		return svc.Payments.CreateCheckout(ctx, bookingID, quote.GrandTotal, quote.Currency)
	}
	successURL := fmt.Sprintf("%s?booking_id=%s", svc.SuccessURL, bookingID)
	cancelURL := fmt.Sprintf("%s?booking_id=%s", svc.CancelURL, bookingID)
	return svc.Gateway.CreatePaymentIntent(ctx, bookingID, quote.GrandTotal, successURL, cancelURL)
}

func (svc *DefaultWizardService) scheduleReminder(ctx context.Context, draft models.BookingDraft, bookingID string, pickup time.Time) {
	if svc.Reminder == nil {
		return
	}
	fireAt := pickup.Add(-24 * time.Hour)
	if !fireAt.After(time.Now()) {
		return
	}
	carName := ""
	if draft.SelectedCar != nil {
		carName = draft.SelectedCar.Name
	}
	payload := models.ReminderPayload{
		ReminderID: uuid.New().String(),
		BookingID:  bookingID,
		CarName:    carName,
		PickupAt:   rentalapi.FormatDateTime(pickup),
		Title:      "Your rental starts tomorrow",
		Body:       fmt.Sprintf("Pickup for %s is scheduled at %s.", carName, rentalapi.FormatDateTime(pickup)),
	}
	if err := svc.Reminder.SchedulePickupReminder(ctx, payload, fireAt); err != nil {
		svc.Logger.Warn("failed to queue pickup reminder",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}

package models

import "time"

// Step keys used by the booking wizard. Navigation state is never stored in
// the draft itself; only step data lives here.
const (
	StepSelectedCar = "selectedCar"
	StepTrip        = "step1"
	StepCoverage    = "step2"
	StepCustomer    = "step3"
	StepPayment     = "step4"
)

// CarSelection holds the vehicle chosen before the wizard starts.
type CarSelection struct {
	CarID       string  `json:"carId,omitempty"`
	Name        string  `json:"name,omitempty"`
	PricePerDay float64 `json:"pricePerDay,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// TripDetails is wizard step 1: where and when.
// Date-times are kept in the wire format "YYYY-MM-DD HH:mm:ss", local frame.
type TripDetails struct {
	PickupLocationID string `json:"pickupLocationId,omitempty"`
	ReturnLocationID string `json:"returnLocationId,omitempty"`
	PickupAt         string `json:"pickupAt,omitempty"`
	ReturnAt         string `json:"returnAt,omitempty"`
}

// CoverageSelection is wizard step 2: protection plan and add-ons.
type CoverageSelection struct {
	PlanKey string           `json:"planKey,omitempty"`
	AddOns  []AddOnSelection `json:"addOns,omitempty"`
}

// CustomerDetails is wizard step 3.
type CustomerDetails struct {
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	Country       string `json:"country,omitempty"`
}

// PaymentPreferences is wizard step 4.
type PaymentPreferences struct {
	Method        string `json:"method,omitempty"` // "card" or "cash"
	AcceptedTerms bool   `json:"acceptedTerms,omitempty"`
}

// BookingDraft is the in-progress aggregate of all wizard step data. A nil
// step pointer means the step has never been touched. The draft is the sole
// owner of step sub-records; pricing and resolution read snapshots of it.
type BookingDraft struct {
	SelectedCar *CarSelection       `json:"selectedCar,omitempty"`
	Step1       *TripDetails        `json:"step1,omitempty"`
	Step2       *CoverageSelection  `json:"step2,omitempty"`
	Step3       *CustomerDetails    `json:"step3,omitempty"`
	Step4       *PaymentPreferences `json:"step4,omitempty"`
	LastUpdated time.Time           `json:"lastUpdated,omitempty"`
}

// BookingConfirmation is the upstream API's answer to a successful submission.
type BookingConfirmation struct {
	BookingID  string    `json:"booking_id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

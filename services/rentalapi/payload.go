package rentalapi

import (
	"time"

	"rently/models"
)

// DateTimeLayout is the upstream API's textual date-time contract.
const DateTimeLayout = "2006-01-02 15:04:05"

// FormatDateTime renders a local date-time in the wire format
// "YYYY-MM-DD HH:mm:ss".
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// AddonLine is one resolved add-on in the outgoing payload. Unresolved
// add-ons must be dropped before assembly; a line never carries an empty id.
type AddonLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// BookingRequest is the flat payload for POST /bookings.
type BookingRequest struct {
	CarID            string      `json:"car_id"`
	PickupLocationID string      `json:"pickup_location_id"`
	ReturnLocationID string      `json:"return_location_id"`
	PickupDatetime   string      `json:"pickup_datetime"`
	ReturnDatetime   string      `json:"return_datetime"`
	PackageID        string      `json:"package_id,omitempty"`
	Addons           []AddonLine `json:"addons"`
	CustomerEmail    string      `json:"customer_email,omitempty"`
	CustomerName     string      `json:"customer_name,omitempty"`
}

// AssembleBookingRequest flattens the nested draft into the wire payload.
// The caller supplies already-resolved plan and add-on identifiers.
func AssembleBookingRequest(draft models.BookingDraft, pickup, ret time.Time, packageID string, addons []AddonLine) BookingRequest {
	req := BookingRequest{
		PickupDatetime: FormatDateTime(pickup),
		ReturnDatetime: FormatDateTime(ret),
		PackageID:      packageID,
		Addons:         addons,
	}
	if req.Addons == nil {
		req.Addons = []AddonLine{}
	}
	if draft.SelectedCar != nil {
		req.CarID = draft.SelectedCar.CarID
	}
	if draft.Step1 != nil {
		req.PickupLocationID = draft.Step1.PickupLocationID
		req.ReturnLocationID = draft.Step1.ReturnLocationID
	}
	if draft.Step3 != nil {
		req.CustomerEmail = draft.Step3.Email
		name := draft.Step3.FirstName
		if draft.Step3.LastName != "" {
			if name != "" {
				name += " "
			}
			name += draft.Step3.LastName
		}
		req.CustomerName = name
	}
	return req
}

// paymentIntentRequest is the payload for POST /payments/create-intent.
type paymentIntentRequest struct {
	BookingID  string  `json:"booking_id"`
	Amount     float64 `json:"amount"`
	SuccessURL string  `json:"success_url"`
	CancelURL  string  `json:"cancel_url"`
}

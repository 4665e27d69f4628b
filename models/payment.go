package models

// PaymentIntentHandle points the client at a provider-hosted payment page.
type PaymentIntentHandle struct {
	IntentID    string  `json:"intentId"`
	BookingID   string  `json:"bookingId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CheckoutURL string  `json:"checkoutUrl"`
}

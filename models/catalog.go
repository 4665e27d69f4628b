package models

// PricingKind tags how a plan or add-on price is applied.
type PricingKind string

const (
	// PricePerDay multiplies the price by the rental duration in days.
	PricePerDay PricingKind = "per_day"
	// PricePerBooking applies the price once per booking, times quantity.
	PricePerBooking PricingKind = "per_booking"
)

// ProtectionPlan is a coverage tier attached to a rental. Exactly one plan
// is active per booking.
type ProtectionPlan struct {
	Key            string      `json:"key"`  // UI-local key, e.g. "standard"
	ID             string      `json:"id"`   // backend package id
	Name           string      `json:"name"` // display name
	Price          float64     `json:"price"`
	PricingKind    PricingKind `json:"pricingKind"`
	Features       []string    `json:"features,omitempty"`
	IncludedAddOns []string    `json:"includedAddOns,omitempty"` // slugs covered at no charge
}

// AddOn is an optional extra priced per day or per booking.
type AddOn struct {
	ID          string      `json:"id"` // backend id; what submissions carry
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Price       float64     `json:"price"`
	PricingKind PricingKind `json:"pricingKind"`
	MaxQuantity int         `json:"maxQuantity,omitempty"` // 0 means 1
}

// AddOnSelection is a user's pick of an add-on inside the booking draft.
type AddOnSelection struct {
	Key      string `json:"key"` // name, slug or id as entered by the client
	Quantity int    `json:"quantity,omitempty"`
}

// Quote is the derived price breakdown for a draft.
type Quote struct {
	DurationDays int     `json:"durationDays"`
	BaseTotal    float64 `json:"baseTotal"`
	PlanTotal    float64 `json:"planTotal"`
	AddOnsTotal  float64 `json:"addOnsTotal"`
	GrandTotal   float64 `json:"grandTotal"`
	Currency     string  `json:"currency"`
}

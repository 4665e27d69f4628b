package booking

import (
	"math"
	"strings"
	"time"

	"rently/models"
)

// Layouts accepted for draft date-times. The wire contract carries seconds;
// clients commonly omit them.
const (
	dateTimeLayout        = "2006-01-02 15:04:05"
	dateTimeLayoutMinutes = "2006-01-02 15:04"
)

// ParseDateTime parses a draft date-time in the local frame.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateTimeLayoutMinutes, s, time.Local)
}

// DurationDays computes the billable rental duration in whole days.
// Any fractional day is charged as a full day: exactly 48h is 2 days,
// 48h01m is 3 days. Returns ErrInvalidRange when ret does not strictly
// follow pickup.
func DurationDays(pickup, ret time.Time) (int, error) {
	if !ret.After(pickup) {
		return 0, ErrInvalidRange
	}
	hours := ret.Sub(pickup).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// ResolvedAddOn pairs a catalog add-on with the quantity selected.
type ResolvedAddOn struct {
	AddOn    models.AddOn
	Quantity int
}

// ComputeTotal combines the base daily rate, the selected protection plan and
// the add-on contributions into a price breakdown. All inputs stay at full
// float precision; rounding happens once, at final aggregation (half-up, two
// decimals).
func ComputeTotal(basePerDay float64, plan *models.ProtectionPlan, addOns []ResolvedAddOn, days int) models.Quote {
	baseTotal := basePerDay * float64(days)

	var planTotal float64
	if plan != nil {
		switch plan.PricingKind {
		case models.PricePerBooking:
			planTotal = plan.Price
		default:
			planTotal = plan.Price * float64(days)
		}
	}

	var addOnsTotal float64
	for _, sel := range addOns {
		if plan != nil && planIncludes(plan, sel.AddOn) {
			// Covered by the plan tier; must not be charged twice.
			continue
		}
		switch sel.AddOn.PricingKind {
		case models.PricePerBooking:
			qty := sel.Quantity
			if qty < 1 {
				qty = 1
			}
			addOnsTotal += sel.AddOn.Price * float64(qty)
		default:
			addOnsTotal += sel.AddOn.Price * float64(days)
		}
	}

	return models.Quote{
		DurationDays: days,
		BaseTotal:    round2(baseTotal),
		PlanTotal:    round2(planTotal),
		AddOnsTotal:  round2(addOnsTotal),
		GrandTotal:   round2(baseTotal + planTotal + addOnsTotal),
	}
}

func planIncludes(plan *models.ProtectionPlan, addOn models.AddOn) bool {
	for _, slug := range plan.IncludedAddOns {
		if strings.EqualFold(slug, addOn.Slug) {
			return true
		}
	}
	return false
}

// round2 rounds half-up to two decimals. Amounts are non-negative.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/models"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseDateTime(s)
	require.NoError(t, err)
	return ts
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup string
		ret    string
		want   int
	}{
		{"exactly two days", "2026-01-20 11:00", "2026-01-22 11:00", 2},
		{"one minute over charges a full day", "2026-01-20 11:00", "2026-01-22 11:01", 3},
		{"one hour over two days", "2026-01-20 13:00", "2026-01-22 14:00", 3},
		{"under a day rounds up to one", "2026-01-20 09:00", "2026-01-20 17:30", 1},
		{"exactly one day", "2026-01-20 09:00", "2026-01-21 09:00", 1},
		{"with seconds", "2026-01-20 09:00:00", "2026-01-27 09:00:00", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := DurationDays(mustParse(t, tt.pickup), mustParse(t, tt.ret))
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestDurationDaysInvalidRange(t *testing.T) {
	pickup := mustParse(t, "2026-01-20 11:00")

	_, err := DurationDays(pickup, pickup)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = DurationDays(pickup, pickup.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDurationDaysMonotonic(t *testing.T) {
	pickup := mustParse(t, "2026-01-20 11:00")

	prev := 0
	for ret := pickup.Add(30 * time.Minute); ret.Before(pickup.Add(10 * 24 * time.Hour)); ret = ret.Add(90 * time.Minute) {
		days, err := DurationDays(pickup, ret)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, days, prev, "duration must not decrease as return time grows")
		prev = days
	}
}

func TestComputeTotal(t *testing.T) {
	standard := &models.ProtectionPlan{
		Key: "standard", ID: "2", Name: "Standard Protection",
		Price: 12, PricingKind: models.PricePerDay,
	}
	gps := models.AddOn{ID: "101", Name: "GPS Navigation", Slug: "gps-navigation", Price: 5, PricingKind: models.PricePerDay}
	childSeat := models.AddOn{ID: "102", Name: "Child Seat", Slug: "child-seat", Price: 25, PricingKind: models.PricePerBooking}

	quote := ComputeTotal(40, standard, []ResolvedAddOn{
		{AddOn: gps},
		{AddOn: childSeat, Quantity: 2},
	}, 3)

	assert.Equal(t, 3, quote.DurationDays)
	assert.InDelta(t, 120.0, quote.BaseTotal, 1e-9)
	assert.InDelta(t, 36.0, quote.PlanTotal, 1e-9)
	assert.InDelta(t, 65.0, quote.AddOnsTotal, 1e-9) // 5*3 + 25*2
	assert.InDelta(t, 221.0, quote.GrandTotal, 1e-9)
}

func TestComputeTotalFlatPlan(t *testing.T) {
	weekend := &models.ProtectionPlan{
		Key: "weekend", ID: "9", Name: "Weekend Bundle",
		Price: 99, PricingKind: models.PricePerBooking,
	}

	quote := ComputeTotal(50, weekend, nil, 5)
	assert.InDelta(t, 99.0, quote.PlanTotal, 1e-9)
	assert.InDelta(t, 349.0, quote.GrandTotal, 1e-9)
}

func TestComputeTotalPlanIncludedAddOnIsFree(t *testing.T) {
	premium := &models.ProtectionPlan{
		Key: "premium", ID: "3", Name: "Premium Protection",
		Price: 20, PricingKind: models.PricePerDay,
		IncludedAddOns: []string{"roadside-assistance"},
	}
	roadside := models.AddOn{ID: "104", Name: "Roadside Assistance", Slug: "roadside-assistance", Price: 6, PricingKind: models.PricePerDay}
	wifi := models.AddOn{ID: "105", Name: "WiFi Hotspot", Slug: "wifi-hotspot", Price: 4.5, PricingKind: models.PricePerDay}

	quote := ComputeTotal(30, premium, []ResolvedAddOn{
		{AddOn: roadside},
		{AddOn: wifi},
	}, 2)

	// Roadside assistance is covered by the tier; only wifi is charged.
	assert.InDelta(t, 9.0, quote.AddOnsTotal, 1e-9)
	assert.InDelta(t, 60.0+40.0+9.0, quote.GrandTotal, 1e-9)
}

func TestComputeTotalDefaultQuantity(t *testing.T) {
	fullTank := models.AddOn{ID: "106", Name: "Full Tank of Fuel", Slug: "full-tank", Price: 60, PricingKind: models.PricePerBooking}

	quote := ComputeTotal(40, nil, []ResolvedAddOn{{AddOn: fullTank}}, 4)
	assert.InDelta(t, 60.0, quote.AddOnsTotal, 1e-9)
}

func TestComputeTotalRoundsOnceAtAggregation(t *testing.T) {
	// 0.1 per day accumulates binary-float drift; the quote must come out
	// clean at two decimals.
	cheap := models.AddOn{ID: "999", Name: "Sticker", Slug: "sticker", Price: 0.1, PricingKind: models.PricePerDay}

	quote := ComputeTotal(33.33, nil, []ResolvedAddOn{{AddOn: cheap}}, 3)
	assert.InDelta(t, 0.3, quote.AddOnsTotal, 1e-9)
	assert.InDelta(t, 100.29, quote.GrandTotal, 1e-9)
}

package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/models"
)

var testAddOns = []models.AddOn{
	{ID: "101", Name: "GPS Navigation", Slug: "gps-navigation", Price: 5, PricingKind: models.PricePerDay},
	{ID: "102", Name: "Child Seat", Slug: "child-seat", Price: 25, PricingKind: models.PricePerBooking},
	{ID: "103", Name: "Additional Driver", Slug: "additional-driver", Price: 8, PricingKind: models.PricePerDay},
}

func TestResolveAddOnIDByNameSlugAndID(t *testing.T) {
	// Name, slug and exact id string must all land on the same backend id.
	for _, key := range []string{"Child Seat", "child-seat", "102"} {
		id, ok := ResolveAddOnID(testAddOns, key)
		require.True(t, ok, "key %q should resolve", key)
		assert.Equal(t, "102", id)
	}
}

func TestResolveAddOnCaseInsensitive(t *testing.T) {
	id, ok := ResolveAddOnID(testAddOns, "gps NAVIGATION")
	require.True(t, ok)
	assert.Equal(t, "101", id)
}

func TestResolveAddOnSubstringBothDirections(t *testing.T) {
	// Local key inside a catalog name.
	id, ok := ResolveAddOnID(testAddOns, "gps")
	require.True(t, ok)
	assert.Equal(t, "101", id)

	// Catalog name inside a local key.
	id, ok = ResolveAddOnID(testAddOns, "child seat (infant)")
	require.True(t, ok)
	assert.Equal(t, "102", id)
}

func TestResolveAddOnExactBeatsSubstring(t *testing.T) {
	catalog := []models.AddOn{
		{ID: "1", Name: "GPS Navigation Pro", Slug: "gps-pro"},
		{ID: "2", Name: "GPS", Slug: "gps"},
	}
	// "gps" is a substring of the first entry but an exact name match on the
	// second; the exact tier wins.
	id, ok := ResolveAddOnID(catalog, "gps")
	require.True(t, ok)
	assert.Equal(t, "2", id)
}

func TestResolveAddOnTieBreaksByCatalogOrder(t *testing.T) {
	catalog := []models.AddOn{
		{ID: "1", Name: "Roof Box Large", Slug: "roof-box-large"},
		{ID: "2", Name: "Roof Box Small", Slug: "roof-box-small"},
	}
	id, ok := ResolveAddOnID(catalog, "roof box")
	require.True(t, ok)
	assert.Equal(t, "1", id)
}

func TestResolveAddOnAbsent(t *testing.T) {
	_, ok := ResolveAddOnID(testAddOns, "jetpack")
	assert.False(t, ok)

	_, ok = ResolveAddOnID(nil, "gps")
	assert.False(t, ok)

	_, ok = ResolveAddOnID(testAddOns, "   ")
	assert.False(t, ok)
}

func TestResolvePlan(t *testing.T) {
	plans := []models.ProtectionPlan{
		{Key: "basic", ID: "1", Name: "Basic Cover"},
		{Key: "standard", ID: "2", Name: "Standard Protection"},
		{Key: "premium", ID: "3", Name: "Premium Protection"},
	}

	for _, key := range []string{"standard", "Standard Protection", "2"} {
		plan, ok := ResolvePlan(plans, key)
		require.True(t, ok, "key %q should resolve", key)
		assert.Equal(t, "2", plan.ID)
	}

	_, ok := ResolvePlan(plans, "platinum")
	assert.False(t, ok)
}

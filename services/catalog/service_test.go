package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rently/models"
	"rently/services/rentalapi"
)

func TestProtectionPlansAreCopied(t *testing.T) {
	svc := &DefaultCatalogService{Logger: zap.NewNop()}

	plans := svc.ProtectionPlans()
	require.Len(t, plans, 3)
	plans[0].Name = "mutated"

	fresh := svc.ProtectionPlans()
	assert.Equal(t, "Basic Cover", fresh[0].Name)
}

func TestProtectionPlanTiers(t *testing.T) {
	svc := &DefaultCatalogService{Logger: zap.NewNop()}
	plans := svc.ProtectionPlans()

	byKey := map[string]models.ProtectionPlan{}
	for _, p := range plans {
		byKey[p.Key] = p
	}

	assert.InDelta(t, 0.0, byKey["basic"].Price, 1e-9)
	assert.InDelta(t, 12.0, byKey["standard"].Price, 1e-9)
	assert.Contains(t, byKey["premium"].IncludedAddOns, "roadside-assistance")
}

func TestAddOnsStaticWithoutGateway(t *testing.T) {
	svc := &DefaultCatalogService{Logger: zap.NewNop()}

	addOns := svc.AddOns(context.Background())
	require.NotEmpty(t, addOns)

	slugs := map[string]bool{}
	for _, a := range addOns {
		slugs[a.Slug] = true
	}
	assert.True(t, slugs["gps-navigation"])
	assert.True(t, slugs["child-seat"])
}

func TestAddOnsFetchedAndCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]models.AddOn{
			{ID: "201", Name: "Ski Rack", Slug: "ski-rack", Price: 7, PricingKind: models.PricePerDay},
		})
	}))
	defer srv.Close()

	svc := &DefaultCatalogService{
		Gateway: rentalapi.NewClient(srv.URL, time.Second, nil, zap.NewNop()),
		Logger:  zap.NewNop(),
	}

	first := svc.AddOns(context.Background())
	second := svc.AddOns(context.Background())

	require.Len(t, first, 1)
	assert.Equal(t, "201", first[0].ID)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "the catalog is cached between calls")
}

func TestAddOnsFallBackWhenUpstreamFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := &DefaultCatalogService{
		Gateway: rentalapi.NewClient(srv.URL, time.Second, nil, zap.NewNop()),
		Logger:  zap.NewNop(),
	}

	addOns := svc.AddOns(context.Background())
	require.NotEmpty(t, addOns, "a failed refresh must not empty the catalog")
	assert.Equal(t, "101", addOns[0].ID)
}

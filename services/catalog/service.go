package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	vehicleRepo "rently/database/repository/vehicle"
	"rently/models"
	"rently/services/rentalapi"
)

// protectionPlans is the closed set of coverage tiers. Prices are per day in
// the default currency USD.
var protectionPlans = []models.ProtectionPlan{
	{
		Key:         "basic",
		ID:          "1",
		Name:        "Basic Cover",
		Price:       0,
		PricingKind: models.PricePerDay,
		Features:    []string{"Collision damage waiver", "Standard excess"},
	},
	{
		Key:         "standard",
		ID:          "2",
		Name:        "Standard Protection",
		Price:       12,
		PricingKind: models.PricePerDay,
		Features:    []string{"Collision damage waiver", "Theft protection", "Reduced excess"},
	},
	{
		Key:         "premium",
		ID:          "3",
		Name:        "Premium Protection",
		Price:       20,
		PricingKind: models.PricePerDay,
		Features: []string{
			"Collision damage waiver",
			"Theft protection",
			"Zero excess",
			"Roadside assistance included",
		},
		IncludedAddOns: []string{"roadside-assistance"},
	},
}

// defaultAddOns seeds the add-on catalog when the upstream API is not
// reachable. Ids mirror the backend's.
var defaultAddOns = []models.AddOn{
	{ID: "101", Name: "GPS Navigation", Slug: "gps-navigation", Price: 5, PricingKind: models.PricePerDay},
	{ID: "102", Name: "Child Seat", Slug: "child-seat", Price: 25, PricingKind: models.PricePerBooking, MaxQuantity: 3},
	{ID: "103", Name: "Additional Driver", Slug: "additional-driver", Price: 8, PricingKind: models.PricePerDay},
	{ID: "104", Name: "Roadside Assistance", Slug: "roadside-assistance", Price: 6, PricingKind: models.PricePerDay},
	{ID: "105", Name: "WiFi Hotspot", Slug: "wifi-hotspot", Price: 4.5, PricingKind: models.PricePerDay},
	{ID: "106", Name: "Full Tank of Fuel", Slug: "full-tank", Price: 60, PricingKind: models.PricePerBooking},
	{ID: "107", Name: "Cross-Border Permit", Slug: "cross-border-permit", Price: 35, PricingKind: models.PricePerBooking},
}

const addOnCacheTTL = 10 * time.Minute

// DefaultCatalogService implements Service over the Mongo vehicle repository
// and the upstream add-on catalog.
type DefaultCatalogService struct {
	VehicleRepo vehicleRepo.VehicleRepository
	Gateway     *rentalapi.Client // optional; nil means static add-ons only
	Logger      *zap.Logger

	mu         sync.Mutex
	addOnCache []models.AddOn
	cachedAt   time.Time
}

func (svc *DefaultCatalogService) ListVehicles(ctx context.Context, filter models.VehicleFilter) ([]models.Vehicle, error) {
	return svc.VehicleRepo.Search(filter)
}

func (svc *DefaultCatalogService) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return svc.VehicleRepo.GetByID(id)
}

// ProtectionPlans returns the closed plan enumeration.
func (svc *DefaultCatalogService) ProtectionPlans() []models.ProtectionPlan {
	plans := make([]models.ProtectionPlan, len(protectionPlans))
	copy(plans, protectionPlans)
	return plans
}

// AddOns returns the add-on catalog, refreshed from the upstream API when one
// is configured. Falls back to the static seed on any failure — the wizard
// should never lose its add-on step because the backend hiccuped.
func (svc *DefaultCatalogService) AddOns(ctx context.Context) []models.AddOn {
	if svc.Gateway == nil {
		return append([]models.AddOn(nil), defaultAddOns...)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.addOnCache != nil && time.Since(svc.cachedAt) < addOnCacheTTL {
		return append([]models.AddOn(nil), svc.addOnCache...)
	}

	fetched, err := svc.Gateway.FetchAddOns(ctx)
	if err != nil || len(fetched) == 0 {
		if err != nil && svc.Logger != nil {
			svc.Logger.Warn("add-on catalog refresh failed, using static seed", zap.Error(err))
		}
		return append([]models.AddOn(nil), defaultAddOns...)
	}
	svc.addOnCache = fetched
	svc.cachedAt = time.Now()
	return append([]models.AddOn(nil), fetched...)
}

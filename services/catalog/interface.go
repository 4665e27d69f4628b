package catalog

import (
	"context"

	"rently/models"
)

// Service exposes the vehicle, protection-plan and add-on catalogs to the
// booking wizard and the public API.
type Service interface {
	ListVehicles(ctx context.Context, filter models.VehicleFilter) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	ProtectionPlans() []models.ProtectionPlan
	AddOns(ctx context.Context) []models.AddOn
}

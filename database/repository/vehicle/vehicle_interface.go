package vehicleRepo

import "rently/models"

// VehicleRepository defines methods for vehicle catalog access.
type VehicleRepository interface {
	// GetByID retrieves a vehicle by its unique ID.
	GetByID(id string) (*models.Vehicle, error)
	// Search retrieves vehicles matching the filter, newest first.
	Search(filter models.VehicleFilter) ([]models.Vehicle, error)
	// Create inserts a new vehicle record.
	Create(v *models.Vehicle) error
	// Update modifies an existing vehicle record.
	Update(v *models.Vehicle) error
	// Delete removes a vehicle record by its ID.
	Delete(id string) error
}

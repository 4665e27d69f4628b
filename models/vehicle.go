package models

import "time"

// Vehicle represents a rentable car in the catalog.
type Vehicle struct {
	ID           string    `bson:"id" json:"id"`
	Make         string    `bson:"make" json:"make"`
	Model        string    `bson:"model" json:"model"`
	Year         int       `bson:"year" json:"year"`
	Category     string    `bson:"category" json:"category"` // e.g., "suv", "sedan", "compact"
	Transmission string    `bson:"transmission" json:"transmission"`
	FuelType     string    `bson:"fuel_type" json:"fuelType"`
	Seats        int       `bson:"seats" json:"seats"`
	Doors        int       `bson:"doors" json:"doors"`
	PricePerDay  float64   `bson:"price_per_day" json:"pricePerDay"`
	Currency     string    `bson:"currency" json:"currency"`
	LocationID   string    `bson:"location_id" json:"locationId"`
	ImageURL     string    `bson:"image_url" json:"imageUrl"`
	Features     []string  `bson:"features,omitempty" json:"features,omitempty"`
	Available    bool      `bson:"available" json:"available"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// VehicleFilter narrows catalog searches. Zero values mean "no constraint".
type VehicleFilter struct {
	Category     string  `form:"category" json:"category,omitempty"`
	Transmission string  `form:"transmission" json:"transmission,omitempty"`
	FuelType     string  `form:"fuelType" json:"fuelType,omitempty"`
	MinSeats     int     `form:"minSeats" json:"minSeats,omitempty"`
	MaxPrice     float64 `form:"maxPrice" json:"maxPrice,omitempty"`
	MinPrice     float64 `form:"minPrice" json:"minPrice,omitempty"`
	LocationID   string  `form:"locationId" json:"locationId,omitempty"`
	Query        string  `form:"q" json:"q,omitempty"` // free-text against make/model
	Limit        int64   `form:"limit" json:"limit,omitempty"`
	Offset       int64   `form:"offset" json:"offset,omitempty"`
}

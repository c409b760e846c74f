package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car represents a rental listing. Owner is nil after a soft-delete.
type Car struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Owner           *primitive.ObjectID `bson:"owner" json:"owner,omitempty"`
	Brand           string              `bson:"brand" json:"brand"`
	Model           string              `bson:"model" json:"model"`
	Year            int                 `bson:"year" json:"year"`
	Category        string              `bson:"category" json:"category"`
	SeatingCapacity int                 `bson:"seating_capacity" json:"seating_capacity"`
	FuelType        string              `bson:"fuel_type" json:"fuel_type"`
	Transmission    string              `bson:"transmission" json:"transmission"`
	Location        string              `bson:"location" json:"location"`
	PricePerDay     float64             `bson:"price_per_day" json:"price_per_day"`
	Description     string              `bson:"description" json:"description"`
	IsAvailable     bool                `bson:"is_available" json:"is_available"`
	Image           string              `bson:"image" json:"image"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// CarAttributes is the payload accepted when an owner lists a car.
type CarAttributes struct {
	Brand           string  `json:"brand" validate:"required"`
	Model           string  `json:"model" validate:"required"`
	Year            int     `json:"year" validate:"required,gte=1950"`
	Category        string  `json:"category"`
	SeatingCapacity int     `json:"seating_capacity" validate:"gte=0"`
	FuelType        string  `json:"fuel_type"`
	Transmission    string  `json:"transmission"`
	Location        string  `json:"location" validate:"required"`
	PricePerDay     float64 `json:"price_per_day" validate:"required,gt=0"`
	Description     string  `json:"description"`
}

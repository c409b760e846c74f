package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation of a car over a date range. Owner is
// copied from the car at creation time and never changes afterwards, even
// if the car is later reassigned or soft-deleted.
type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Car        primitive.ObjectID `bson:"car" json:"car"`
	Owner      primitive.ObjectID `bson:"owner" json:"owner"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	PickupDate time.Time          `bson:"pickup_date" json:"pickup_date"`
	ReturnDate time.Time          `bson:"return_date" json:"return_date"`
	Price      float64            `bson:"price" json:"price"`
	Status     BookingStatus      `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// BookingDetail is a booking enriched with its car and, for owner-facing
// listings, the renter. Renter serializes through User, whose password
// hash is never marshalled.
type BookingDetail struct {
	Booking
	CarDetail *Car  `json:"car_detail,omitempty"`
	Renter    *User `json:"renter,omitempty"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	Car        string `json:"car" validate:"required"`
	PickupDate string `json:"pickup_date" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
}

// ChangeStatusRequest is the payload for an owner updating a booking status.
type ChangeStatusRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// SearchRequest is the payload for a date-range availability search.
type SearchRequest struct {
	Location   string `json:"location" validate:"required"`
	PickupDate string `json:"pickup_date" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
}

// IsValidBookingStatus checks if a status is one the lifecycle allows
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	default:
		return false
	}
}

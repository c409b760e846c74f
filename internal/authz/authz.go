// Package authz holds the authorization predicates gating mutating
// operations. Each resource type gets one reusable predicate so the
// ownership rules cannot drift between call sites.
package authz

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/driveloop/carrental/internal/models"
)

// IsOwnerRole reports whether the role may use owner-facing operations.
func IsOwnerRole(role models.Role) bool {
	return role == models.RoleOwner
}

// CanManageCar reports whether the actor may mutate the car. A soft-deleted
// car has no owner, so nobody can manage it, including whoever listed it.
func CanManageCar(actorID primitive.ObjectID, car *models.Car) bool {
	if car == nil || car.Owner == nil {
		return false
	}
	return *car.Owner == actorID
}

// CanManageBooking reports whether the actor may change the booking's
// status. Only the owner recorded on the booking at creation time may.
func CanManageBooking(actorID primitive.ObjectID, booking *models.Booking) bool {
	if booking == nil {
		return false
	}
	return booking.Owner == actorID
}

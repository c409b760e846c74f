package authz

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/driveloop/carrental/internal/models"
)

func TestIsOwnerRole(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		expected bool
	}{
		{"owner role", models.RoleOwner, true},
		{"renter role", models.RoleRenter, false},
		{"empty role", "", false},
		{"unknown role", "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOwnerRole(tt.role); got != tt.expected {
				t.Errorf("IsOwnerRole(%s) = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}

func TestCanManageCar(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tests := []struct {
		name     string
		actor    primitive.ObjectID
		car      *models.Car
		expected bool
	}{
		{"owner manages own car", owner, &models.Car{Owner: &owner}, true},
		{"stranger cannot manage", stranger, &models.Car{Owner: &owner}, false},
		{"nobody manages a soft-deleted car", owner, &models.Car{Owner: nil}, false},
		{"nil car", owner, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageCar(tt.actor, tt.car); got != tt.expected {
				t.Errorf("CanManageCar() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanManageBooking(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tests := []struct {
		name     string
		actor    primitive.ObjectID
		booking  *models.Booking
		expected bool
	}{
		{"booking owner may manage", owner, &models.Booking{Owner: owner}, true},
		{"stranger may not", stranger, &models.Booking{Owner: owner}, false},
		{"nil booking", owner, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageBooking(tt.actor, tt.booking); got != tt.expected {
				t.Errorf("CanManageBooking() = %v, want %v", got, tt.expected)
			}
		})
	}
}

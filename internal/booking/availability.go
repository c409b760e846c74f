package booking

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/driveloop/carrental/internal/db"
)

// AvailabilityChecker answers whether a car is free over a date range. It is
// the single source of truth for conflict detection: both search filtering
// and create-time validation go through it.
type AvailabilityChecker struct {
	bookings db.BookingCollection
}

// NewAvailabilityChecker creates a checker over the booking store.
func NewAvailabilityChecker(bookings db.BookingCollection) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

// IsAvailable reports whether no stored booking for the car overlaps the
// requested range. Overlap is inclusive on both ends: ranges touching at a
// boundary conflict. Every stored booking blocks its range regardless of
// status; cancelled bookings are not filtered out.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, carID primitive.ObjectID, pickup, ret time.Time) (bool, error) {
	n, err := c.bookings.CountOverlapping(ctx, carID, pickup, ret)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

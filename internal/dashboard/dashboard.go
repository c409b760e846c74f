// Package dashboard computes owner-facing summary statistics. Cars and
// bookings are fetched once; all aggregation happens in memory over the
// fetched set.
package dashboard

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/authz"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/models"
)

const recentBookingsLimit = 3

// Aggregator builds dashboard summaries for owners.
type Aggregator struct {
	cars     db.CarCollection
	bookings db.BookingCollection

	// now is swappable so month-boundary revenue can be tested.
	now func() time.Time
}

// NewAggregator creates a dashboard aggregator over the given stores.
func NewAggregator(cars db.CarCollection, bookings db.BookingCollection) *Aggregator {
	return &Aggregator{cars: cars, bookings: bookings, now: time.Now}
}

// Data computes the owner's dashboard. Soft-deleted cars still count toward
// totalCars; monthly revenue covers confirmed bookings created within the
// current calendar month at call time.
func (a *Aggregator) Data(ctx context.Context, ownerID primitive.ObjectID, role models.Role) (*models.Dashboard, error) {
	if !authz.IsOwnerRole(role) {
		return nil, apperr.Unauthorizedf("owner role required")
	}

	cars, err := a.cars.FindCars(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, err
	}
	bookings, err := a.bookings.FindBookings(ctx, bson.M{"owner": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	d := &models.Dashboard{
		TotalCars:      len(cars),
		TotalBookings:  len(bookings),
		RecentBookings: []models.Booking{},
	}

	now := a.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	for _, b := range bookings {
		switch b.Status {
		case models.BookingPending:
			d.PendingBookings++
		case models.BookingConfirmed:
			d.CompletedBookings++
			if !b.CreatedAt.Before(startOfMonth) && b.CreatedAt.Before(endOfMonth) {
				d.MonthlyRevenue += b.Price
			}
		}
	}

	limit := recentBookingsLimit
	if len(bookings) < limit {
		limit = len(bookings)
	}
	d.RecentBookings = bookings[:limit]

	return d, nil
}

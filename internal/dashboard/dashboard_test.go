package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/models"
)

// MockCarCollection is a mock implementation of db.CarCollection
type MockCarCollection struct {
	mock.Mock
}

func (m *MockCarCollection) InsertCar(ctx context.Context, car models.Car) (primitive.ObjectID, error) {
	args := m.Called(ctx, car)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarCollection) FindCars(ctx context.Context, filter bson.M) ([]models.Car, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarCollection) SetAvailability(ctx context.Context, id string, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockCarCollection) ReleaseOwner(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingCollection is a mock implementation of db.BookingCollection
type MockBookingCollection struct {
	mock.Mock
}

func (m *MockBookingCollection) InsertBooking(ctx context.Context, booking models.Booking) (primitive.ObjectID, error) {
	args := m.Called(ctx, booking)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockBookingCollection) FindBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingCollection) FindBookings(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingCollection) CountOverlapping(ctx context.Context, carID primitive.ObjectID, pickup, ret time.Time) (int64, error) {
	args := m.Called(ctx, carID, pickup, ret)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingCollection) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func TestAggregator_Data(t *testing.T) {
	ownerID := primitive.NewObjectID()

	t.Run("renter role is rejected", func(t *testing.T) {
		agg := NewAggregator(new(MockCarCollection), new(MockBookingCollection))

		_, err := agg.Data(context.Background(), ownerID, models.RoleRenter)

		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("aggregates counts, recent bookings and monthly revenue", func(t *testing.T) {
		cars := new(MockCarCollection)
		bookings := new(MockBookingCollection)
		agg := NewAggregator(cars, bookings)

		// Fixed clock: mid-July 2026.
		now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
		agg.now = func() time.Time { return now }

		deleted := models.Car{ID: primitive.NewObjectID(), Owner: nil}
		active := models.Car{ID: primitive.NewObjectID(), Owner: &ownerID}
		cars.On("FindCars", mock.Anything, bson.M{"owner": ownerID}).
			Return([]models.Car{active, deleted}, nil)

		// Newest first, as the store returns them.
		stored := []models.Booking{
			{Status: models.BookingPending, Price: 100, CreatedAt: now.AddDate(0, 0, -1)},
			{Status: models.BookingConfirmed, Price: 200, CreatedAt: now.AddDate(0, 0, -2)},
			{Status: models.BookingCancelled, Price: 400, CreatedAt: now.AddDate(0, 0, -3)},
			{Status: models.BookingConfirmed, Price: 300, CreatedAt: now.AddDate(0, -2, 0)},
		}
		bookings.On("FindBookings", mock.Anything, bson.M{"owner": ownerID}).Return(stored, nil)

		d, err := agg.Data(context.Background(), ownerID, models.RoleOwner)

		require.NoError(t, err)
		assert.Equal(t, 2, d.TotalCars, "soft-deleted cars still count")
		assert.Equal(t, 4, d.TotalBookings)
		assert.Equal(t, 1, d.PendingBookings)
		assert.Equal(t, 2, d.CompletedBookings)
		require.Len(t, d.RecentBookings, 3)
		assert.Equal(t, stored[0], d.RecentBookings[0])
		// Only the confirmed booking created this month counts.
		assert.Equal(t, float64(200), d.MonthlyRevenue)
	})

	t.Run("month boundaries are inclusive of the last second", func(t *testing.T) {
		cars := new(MockCarCollection)
		bookings := new(MockBookingCollection)
		agg := NewAggregator(cars, bookings)

		now := time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)
		agg.now = func() time.Time { return now }

		cars.On("FindCars", mock.Anything, mock.Anything).Return([]models.Car{}, nil)
		bookings.On("FindBookings", mock.Anything, mock.Anything).Return([]models.Booking{
			// Last second of the month: included.
			{Status: models.BookingConfirmed, Price: 150, CreatedAt: time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)},
			// First instant of the month: included.
			{Status: models.BookingConfirmed, Price: 50, CreatedAt: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
			// The next day is the next month: excluded.
			{Status: models.BookingConfirmed, Price: 999, CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)

		d, err := agg.Data(context.Background(), ownerID, models.RoleOwner)

		require.NoError(t, err)
		assert.Equal(t, float64(200), d.MonthlyRevenue)
	})

	t.Run("fewer than three bookings returns them all", func(t *testing.T) {
		cars := new(MockCarCollection)
		bookings := new(MockBookingCollection)
		agg := NewAggregator(cars, bookings)

		cars.On("FindCars", mock.Anything, mock.Anything).Return([]models.Car{}, nil)
		bookings.On("FindBookings", mock.Anything, mock.Anything).Return([]models.Booking{
			{Status: models.BookingPending},
		}, nil)

		d, err := agg.Data(context.Background(), ownerID, models.RoleOwner)

		require.NoError(t, err)
		assert.Len(t, d.RecentBookings, 1)
	})
}

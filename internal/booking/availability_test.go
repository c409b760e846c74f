package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAvailabilityChecker_IsAvailable(t *testing.T) {
	carID := primitive.NewObjectID()
	pickup := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ret := pickup.AddDate(0, 0, 2)

	t.Run("available when no booking overlaps", func(t *testing.T) {
		bookings := new(MockBookingCollection)
		bookings.On("CountOverlapping", mock.Anything, carID, pickup, ret).Return(int64(0), nil)

		ok, err := NewAvailabilityChecker(bookings).IsAvailable(context.Background(), carID, pickup, ret)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("blocked by any overlapping booking", func(t *testing.T) {
		bookings := new(MockBookingCollection)
		bookings.On("CountOverlapping", mock.Anything, carID, pickup, ret).Return(int64(1), nil)

		ok, err := NewAvailabilityChecker(bookings).IsAvailable(context.Background(), carID, pickup, ret)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store error propagates", func(t *testing.T) {
		bookings := new(MockBookingCollection)
		bookings.On("CountOverlapping", mock.Anything, carID, pickup, ret).
			Return(int64(0), assert.AnError)

		ok, err := NewAvailabilityChecker(bookings).IsAvailable(context.Background(), carID, pickup, ret)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

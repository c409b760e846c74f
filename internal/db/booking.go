package db

import (
	"context"
	"fmt"
	"time"

	"github.com/driveloop/carrental/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingCollection defines the interface for booking store operations
type BookingCollection interface {
	InsertBooking(ctx context.Context, booking models.Booking) (primitive.ObjectID, error)
	FindBookingByID(ctx context.Context, id string) (*models.Booking, error)
	FindBookings(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error)
	CountOverlapping(ctx context.Context, carID primitive.ObjectID, pickup, ret time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}

// MongoBookingCollection implements BookingCollection for MongoDB
type MongoBookingCollection struct {
	Collection *mongo.Collection
}

// InsertBooking inserts a booking and returns its generated id
func (c *MongoBookingCollection) InsertBooking(ctx context.Context, booking models.Booking) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	res, err := c.Collection.InsertOne(ctx, booking)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindBookingByID finds a booking by its ID
func (c *MongoBookingCollection) FindBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	var booking models.Booking
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindBookings queries bookings matching the given filter
func (c *MongoBookingCollection) FindBookings(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountOverlapping counts bookings for the car whose stored range intersects
// the requested one. The comparison is inclusive on both ends: ranges that
// merely touch at a boundary count as overlapping.
func (c *MongoBookingCollection) CountOverlapping(ctx context.Context, carID primitive.ObjectID, pickup, ret time.Time) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	return c.Collection.CountDocuments(ctx, bson.M{
		"car":         carID,
		"pickup_date": bson.M{"$lte": ret},
		"return_date": bson.M{"$gte": pickup},
	})
}

// UpdateStatus sets the status of a booking
func (c *MongoBookingCollection) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid booking ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

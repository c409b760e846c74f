package db

import (
	"context"
	"fmt"
	"time"

	"github.com/driveloop/carrental/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CarCollection defines the interface for car store operations
type CarCollection interface {
	InsertCar(ctx context.Context, car models.Car) (primitive.ObjectID, error)
	FindCarByID(ctx context.Context, id string) (*models.Car, error)
	FindCars(ctx context.Context, filter bson.M) ([]models.Car, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	ReleaseOwner(ctx context.Context, id string) error
}

// MongoCarCollection implements CarCollection for MongoDB
type MongoCarCollection struct {
	Collection *mongo.Collection
}

// InsertCar inserts a car listing and returns its generated id
func (c *MongoCarCollection) InsertCar(ctx context.Context, car models.Car) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, car)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindCarByID finds a car by its ID
func (c *MongoCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID: %w", err)
	}

	var car models.Car
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&car)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// FindCars queries car listings matching the given filter
func (c *MongoCarCollection) FindCars(ctx context.Context, filter bson.M) ([]models.Car, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// SetAvailability sets the availability flag of a car
func (c *MongoCarCollection) SetAvailability(ctx context.Context, id string, available bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid car ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"is_available": available, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReleaseOwner soft-deletes a car: the owner reference is cleared and the
// listing is marked unavailable. The record itself is kept so existing
// bookings stay resolvable.
func (c *MongoCarCollection) ReleaseOwner(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid car ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"owner": nil, "is_available": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

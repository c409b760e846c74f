// Package cars manages car listings: creation with image upload, the
// availability flag, soft-deletion and owner/public listing queries.
package cars

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/assets"
	"github.com/driveloop/carrental/internal/authz"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/models"
)

const carImageWidth = 1280

// Service manages car listings.
type Service struct {
	cars   db.CarCollection
	assets assets.Store
}

// NewService creates a car listing service.
func NewService(cars db.CarCollection, store assets.Store) *Service {
	return &Service{cars: cars, assets: store}
}

// Add uploads the listing image to the asset store, derives an optimized
// delivery URL and persists the car with the actor as owner. New listings
// start available.
func (s *Service) Add(ctx context.Context, ownerID primitive.ObjectID, attrs models.CarAttributes, image []byte, imageName string) (*models.Car, error) {
	if attrs.PricePerDay <= 0 {
		return nil, apperr.Validationf("price per day must be positive")
	}

	asset, err := s.assets.Upload(ctx, image, imageName, "/cars")
	if err != nil {
		return nil, err
	}
	imageURL := s.assets.BuildURL(asset, assets.Transform{
		Width:   carImageWidth,
		Quality: "auto",
		Format:  "webp",
	})

	car := models.Car{
		Owner:           &ownerID,
		Brand:           attrs.Brand,
		Model:           attrs.Model,
		Year:            attrs.Year,
		Category:        attrs.Category,
		SeatingCapacity: attrs.SeatingCapacity,
		FuelType:        attrs.FuelType,
		Transmission:    attrs.Transmission,
		Location:        attrs.Location,
		PricePerDay:     attrs.PricePerDay,
		Description:     attrs.Description,
		IsAvailable:     true,
		Image:           imageURL,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	id, err := s.cars.InsertCar(ctx, car)
	if err != nil {
		return nil, err
	}
	car.ID = id

	log.WithFields(log.Fields{"car": id.Hex(), "owner": ownerID.Hex()}).Info("car listed")
	return &car, nil
}

// ToggleAvailability flips the listing flag. Only the car's owner may.
func (s *Service) ToggleAvailability(ctx context.Context, carID string, actorID primitive.ObjectID) error {
	car, err := s.load(ctx, carID)
	if err != nil {
		return err
	}
	if !authz.CanManageCar(actorID, car) {
		return apperr.Unauthorizedf("only the owner can manage this car")
	}
	return s.cars.SetAvailability(ctx, carID, !car.IsAvailable)
}

// Remove soft-deletes a car: the owner reference is cleared and the car is
// marked unavailable. Bookings referencing the car are untouched.
func (s *Service) Remove(ctx context.Context, carID string, actorID primitive.ObjectID) error {
	car, err := s.load(ctx, carID)
	if err != nil {
		return err
	}
	if !authz.CanManageCar(actorID, car) {
		return apperr.Unauthorizedf("only the owner can manage this car")
	}
	return s.cars.ReleaseOwner(ctx, carID)
}

// OwnerCars lists all cars belonging to the owner.
func (s *Service) OwnerCars(ctx context.Context, ownerID primitive.ObjectID) ([]models.Car, error) {
	return s.cars.FindCars(ctx, bson.M{"owner": ownerID})
}

// AvailableCars lists every car currently flagged available, for the public
// catalogue.
func (s *Service) AvailableCars(ctx context.Context) ([]models.Car, error) {
	return s.cars.FindCars(ctx, bson.M{"is_available": true})
}

func (s *Service) load(ctx context.Context, carID string) (*models.Car, error) {
	car, err := s.cars.FindCarByID(ctx, carID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundf("car not found")
		}
		return nil, err
	}
	return car, nil
}

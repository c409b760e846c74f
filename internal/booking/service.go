package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/authz"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/models"
)

// Service orchestrates the booking lifecycle: availability checks, price
// computation, creation and owner-driven status transitions.
type Service struct {
	cars     db.CarCollection
	bookings db.BookingCollection
	users    db.UserCollection
	checker  *AvailabilityChecker
}

// NewService creates a booking service over the given stores.
func NewService(cars db.CarCollection, bookings db.BookingCollection, users db.UserCollection) *Service {
	return &Service{
		cars:     cars,
		bookings: bookings,
		users:    users,
		checker:  NewAvailabilityChecker(bookings),
	}
}

// SearchAvailableCars returns cars at the location that are flagged
// available and have no booking overlapping the requested range. Per-car
// checks run concurrently; each writes to its own slot, results merge after
// all finish.
func (s *Service) SearchAvailableCars(ctx context.Context, location string, pickup, ret time.Time) ([]models.Car, error) {
	if ret.Before(pickup) {
		return nil, apperr.Validationf("return date cannot be before pickup date")
	}

	cars, err := s.cars.FindCars(ctx, bson.M{"location": location, "is_available": true})
	if err != nil {
		return nil, err
	}

	free := make([]bool, len(cars))
	errs := make([]error, len(cars))
	var wg sync.WaitGroup
	for i := range cars {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			free[i], errs[i] = s.checker.IsAvailable(ctx, cars[i].ID, pickup, ret)
		}(i)
	}
	wg.Wait()

	available := make([]models.Car, 0, len(cars))
	for i, car := range cars {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if free[i] {
			available = append(available, car)
		}
	}
	return available, nil
}

// Create books the car for the renter over the given range. The availability
// check must pass before anything is written; if the insert fails, no
// booking exists. The owner on the booking is copied from the car at this
// moment and stays fixed afterwards.
func (s *Service) Create(ctx context.Context, carID string, pickup, ret time.Time, renterID primitive.ObjectID) (*models.Booking, error) {
	if ret.Before(pickup) {
		return nil, apperr.Validationf("return date cannot be before pickup date")
	}

	carObjectID, err := primitive.ObjectIDFromHex(carID)
	if err != nil {
		return nil, apperr.Validationf("invalid car id")
	}

	available, err := s.checker.IsAvailable(ctx, carObjectID, pickup, ret)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperr.Conflictf("car is not available for the requested dates")
	}

	car, err := s.cars.FindCarByID(ctx, carID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundf("car not found")
		}
		return nil, err
	}
	if car.Owner == nil {
		return nil, apperr.NotFoundf("car is no longer listed")
	}

	b := models.Booking{
		Car:        carObjectID,
		Owner:      *car.Owner,
		User:       renterID,
		PickupDate: pickup,
		ReturnDate: ret,
		Price:      ComputePrice(car.PricePerDay, pickup, ret),
		Status:     models.BookingPending,
		CreatedAt:  time.Now(),
	}

	id, err := s.bookings.InsertBooking(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id

	log.WithFields(log.Fields{
		"booking": id.Hex(),
		"car":     carID,
		"price":   b.Price,
	}).Info("booking created")
	return &b, nil
}

// ListForRenter returns the renter's bookings, newest first, each enriched
// with its car.
func (s *Service) ListForRenter(ctx context.Context, renterID primitive.ObjectID) ([]models.BookingDetail, error) {
	bookings, err := s.bookings.FindBookings(ctx, bson.M{"user": renterID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings, false)
}

// ListForOwner returns bookings against the owner's cars, newest first,
// enriched with car and renter. Only actors with the owner role may call it.
func (s *Service) ListForOwner(ctx context.Context, ownerID primitive.ObjectID, actorRole models.Role) ([]models.BookingDetail, error) {
	if !authz.IsOwnerRole(actorRole) {
		return nil, apperr.Unauthorizedf("owner role required")
	}

	bookings, err := s.bookings.FindBookings(ctx, bson.M{"owner": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings, true)
}

// ChangeStatus updates a booking's status. Only the owner recorded on the
// booking may transition it.
func (s *Service) ChangeStatus(ctx context.Context, bookingID string, status models.BookingStatus, actorID primitive.ObjectID) error {
	if !models.IsValidBookingStatus(status) {
		return apperr.Validationf("unknown booking status %q", status)
	}

	b, err := s.bookings.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFoundf("booking not found")
		}
		return err
	}

	if !authz.CanManageBooking(actorID, b) {
		return apperr.Unauthorizedf("only the owner can update this booking")
	}

	return s.bookings.UpdateStatus(ctx, bookingID, status)
}

// enrich attaches each booking's car, and the renter when withRenter is set.
// Cars and renters are fetched once per batch with $in filters.
func (s *Service) enrich(ctx context.Context, bookings []models.Booking, withRenter bool) ([]models.BookingDetail, error) {
	details := make([]models.BookingDetail, len(bookings))
	if len(bookings) == 0 {
		return details, nil
	}

	carIDs := make([]primitive.ObjectID, 0, len(bookings))
	userIDs := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		carIDs = append(carIDs, b.Car)
		userIDs = append(userIDs, b.User)
	}

	cars, err := s.cars.FindCars(ctx, bson.M{"_id": bson.M{"$in": carIDs}})
	if err != nil {
		return nil, err
	}
	carsByID := make(map[primitive.ObjectID]models.Car, len(cars))
	for _, c := range cars {
		carsByID[c.ID] = c
	}

	usersByID := make(map[primitive.ObjectID]models.User)
	if withRenter {
		users, err := s.users.FindUsers(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	for i, b := range bookings {
		details[i] = models.BookingDetail{Booking: b}
		if car, ok := carsByID[b.Car]; ok {
			details[i].CarDetail = &car
		}
		if withRenter {
			if u, ok := usersByID[b.User]; ok {
				details[i].Renter = &u
			}
		}
	}
	return details, nil
}

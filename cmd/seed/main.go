// Seeds the database with demo owners, renters, car listings and bookings
// so the dashboard and search endpoints have data to show.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveloop/carrental/internal/booking"
	"github.com/driveloop/carrental/internal/config"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/models"
)

var locations = []string{"London", "New York", "Madrid", "Paris", "Berlin", "Tokyo"}

var carCatalogue = []struct {
	Brand    string
	Model    string
	Category string
	Fuel     string
	Price    float64
}{
	{"Toyota", "Corolla", "sedan", "petrol", 55},
	{"BMW", "X5", "suv", "diesel", 130},
	{"Tesla", "Model 3", "sedan", "electric", 110},
	{"Volkswagen", "Golf", "hatchback", "petrol", 48},
	{"Ford", "Transit", "van", "diesel", 85},
	{"Audi", "A4", "sedan", "petrol", 95},
}

func main() {
	cfg := config.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.MongoDB)
	userColl := &db.MongoUserCollection{Collection: database.Collection(db.UsersCollection)}
	carColl := &db.MongoCarCollection{Collection: database.Collection(db.CarsCollection)}
	bookingColl := &db.MongoBookingCollection{Collection: database.Collection(db.BookingsCollection)}

	ownerCount := envInt("SEED_OWNERS", 3)
	renterCount := envInt("SEED_RENTERS", 6)
	carsPerOwner := envInt("SEED_CARS_PER_OWNER", 4)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	owners := seedUsers(ctx, userColl, "owner", models.RoleOwner, ownerCount)
	renters := seedUsers(ctx, userColl, "renter", models.RoleRenter, renterCount)

	var carIDs []primitive.ObjectID
	carOwners := map[primitive.ObjectID]primitive.ObjectID{}
	carPrices := map[primitive.ObjectID]float64{}
	for _, ownerID := range owners {
		for i := 0; i < carsPerOwner; i++ {
			tpl := carCatalogue[rand.Intn(len(carCatalogue))]
			oid := ownerID
			car := models.Car{
				Owner:           &oid,
				Brand:           tpl.Brand,
				Model:           tpl.Model,
				Year:            2015 + rand.Intn(10),
				Category:        tpl.Category,
				SeatingCapacity: 4 + rand.Intn(4),
				FuelType:        tpl.Fuel,
				Transmission:    []string{"manual", "automatic"}[rand.Intn(2)],
				Location:        locations[rand.Intn(len(locations))],
				PricePerDay:     tpl.Price,
				Description:     fmt.Sprintf("%s %s demo listing", tpl.Brand, tpl.Model),
				IsAvailable:     true,
				Image:           "https://placehold.co/1280x720",
			}
			id, err := carColl.InsertCar(ctx, car)
			if err != nil {
				log.WithError(err).Fatal("failed to insert car")
			}
			carIDs = append(carIDs, id)
			carOwners[id] = ownerID
			carPrices[id] = tpl.Price
		}
	}
	log.WithField("cars", len(carIDs)).Info("seeded car listings")

	statuses := []models.BookingStatus{models.BookingPending, models.BookingConfirmed, models.BookingCancelled}
	bookingsCreated := 0
	for _, carID := range carIDs {
		// Sequential non-overlapping windows per car keep the seed data
		// consistent with the conflict invariant.
		cursor := time.Now().AddDate(0, 0, rand.Intn(7))
		for i := 0; i < 1+rand.Intn(3); i++ {
			days := 1 + rand.Intn(5)
			pickup := cursor
			ret := pickup.AddDate(0, 0, days)
			cursor = ret.AddDate(0, 0, 1+rand.Intn(4))

			b := models.Booking{
				Car:        carID,
				Owner:      carOwners[carID],
				User:       renters[rand.Intn(len(renters))],
				PickupDate: pickup,
				ReturnDate: ret,
				Price:      booking.ComputePrice(carPrices[carID], pickup, ret),
				Status:     statuses[rand.Intn(len(statuses))],
				CreatedAt:  time.Now().AddDate(0, 0, -rand.Intn(40)),
			}
			if _, err := bookingColl.InsertBooking(ctx, b); err != nil {
				log.WithError(err).Fatal("failed to insert booking")
			}
			bookingsCreated++
		}
	}
	log.WithField("bookings", bookingsCreated).Info("seeded bookings")
}

func seedUsers(ctx context.Context, coll db.UserCollection, prefix string, role models.Role, n int) []primitive.ObjectID {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash seed password")
	}

	ids := make([]primitive.ObjectID, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Name:         fmt.Sprintf("Demo %s %d", prefix, i+1),
			Email:        fmt.Sprintf("%s%d@example.com", prefix, i+1),
			PasswordHash: string(hash),
			Role:         role,
		}
		id, err := coll.InsertUser(ctx, user)
		if err != nil {
			log.WithError(err).Fatal("failed to insert user")
		}
		ids = append(ids, id)
	}
	log.WithFields(log.Fields{"role": role, "count": n}).Info("seeded users")
	return ids
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

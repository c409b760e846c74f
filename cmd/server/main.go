package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/driveloop/carrental/internal/assets"
	"github.com/driveloop/carrental/internal/auth"
	"github.com/driveloop/carrental/internal/booking"
	"github.com/driveloop/carrental/internal/cars"
	"github.com/driveloop/carrental/internal/config"
	"github.com/driveloop/carrental/internal/dashboard"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/handlers"
	"github.com/driveloop/carrental/internal/middleware"
	"github.com/driveloop/carrental/internal/models"
	"github.com/driveloop/carrental/internal/users"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg := config.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("connected to MongoDB")

	database := client.Database(cfg.MongoDB)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		cancel()
		log.WithError(err).Fatal("failed to create indexes")
	}
	cancel()

	userColl := &db.MongoUserCollection{Collection: database.Collection(db.UsersCollection)}
	carColl := &db.MongoCarCollection{Collection: database.Collection(db.CarsCollection)}
	bookingColl := &db.MongoBookingCollection{Collection: database.Collection(db.BookingsCollection)}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	assetStore := assets.NewClient(cfg.ImageKitUploadURL, cfg.ImageKitURLEndpoint, cfg.ImageKitPrivateKey)

	bookingService := booking.NewService(carColl, bookingColl, userColl)
	carService := cars.NewService(carColl, assetStore)
	userService := users.NewService(userColl, assetStore)
	dashboardAgg := dashboard.NewAggregator(carColl, bookingColl)

	authHandler := handlers.NewAuthHandler(authService, userColl, userService)
	carsHandler := handlers.NewCarsHandler(carService)
	bookingsHandler := handlers.NewBookingsHandler(bookingService)
	ownerHandler := handlers.NewOwnerHandler(carService, userService, dashboardAgg)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/me", authHandler.Me)
	mux.HandleFunc("/api/auth/image", authHandler.UpdateImage)

	mux.HandleFunc("/api/cars", carsHandler.List)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	ownerOnly := authMiddleware.RequireRole(models.RoleOwner)

	mux.HandleFunc("/api/bookings/search", bookingsHandler.Search)
	mux.HandleFunc("/api/bookings/create", bookingsHandler.Create)
	mux.HandleFunc("/api/bookings/me", bookingsHandler.ListMine)
	mux.Handle("/api/bookings/owner", ownerOnly(http.HandlerFunc(bookingsHandler.ListForOwner)))
	mux.HandleFunc("/api/bookings/status", bookingsHandler.ChangeStatus)

	mux.HandleFunc("/api/owner/change-role", ownerHandler.ChangeRole)
	mux.HandleFunc("/api/owner/cars", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ownerHandler.ListCars(w, r)
		case http.MethodPost:
			ownerHandler.AddCar(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/owner/cars/toggle", ownerHandler.ToggleCar)
	mux.HandleFunc("/api/owner/cars/delete", ownerHandler.DeleteCar)
	mux.Handle("/api/owner/dashboard", ownerOnly(http.HandlerFunc(ownerHandler.Dashboard)))

	rateLimiter := middleware.NewRateLimitMiddleware()

	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = rateLimiter.RateLimit(100, 60)(handler)
	handler = middleware.RequestLogger(handler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.WithField("addr", addr).Info("HTTP server listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

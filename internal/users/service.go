// Package users covers profile operations outside registration and login:
// role promotion and profile image updates.
package users

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/assets"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/models"
)

const profileImageWidth = 400

// Service manages user profiles.
type Service struct {
	users  db.UserCollection
	assets assets.Store
}

// NewService creates a user profile service.
func NewService(users db.UserCollection, store assets.Store) *Service {
	return &Service{users: users, assets: store}
}

// ChangeRoleToOwner promotes the user to the owner role, allowing them to
// list cars.
func (s *Service) ChangeRoleToOwner(ctx context.Context, userID string) error {
	err := s.users.UpdateRole(ctx, userID, models.RoleOwner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFoundf("user not found")
	}
	if err != nil {
		return err
	}
	log.WithField("user", userID).Info("user promoted to owner")
	return nil
}

// UpdateImage uploads a new profile image and stores its optimized delivery
// URL on the user.
func (s *Service) UpdateImage(ctx context.Context, userID string, image []byte, imageName string) (string, error) {
	asset, err := s.assets.Upload(ctx, image, imageName, "/users")
	if err != nil {
		return "", err
	}
	url := s.assets.BuildURL(asset, assets.Transform{
		Width:   profileImageWidth,
		Quality: "auto",
		Format:  "webp",
	})

	if err := s.users.UpdateImage(ctx, userID, url); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperr.NotFoundf("user not found")
		}
		return "", err
	}
	return url, nil
}

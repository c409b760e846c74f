package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/middleware"
	"github.com/driveloop/carrental/internal/models"
)

var validate = validator.New()

// bindJSON decodes the request body into dst and runs struct validation.
func bindJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperr.Validationf("failed to read request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Validationf("invalid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		return apperr.Validationf("%s", err.Error())
	}
	return nil
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperr.Validationf("invalid date %q", s)
	}
	return t, nil
}

func errBadUpload(err error) error {
	return apperr.Validationf("invalid upload: %s", err.Error())
}

// actor pulls the authenticated identity the middleware injected.
func actor(r *http.Request) (primitive.ObjectID, *models.Claims, error) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, nil, apperr.Unauthorizedf("not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, nil, apperr.Unauthorizedf("invalid actor id")
	}
	return id, claims, nil
}

package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/driveloop/carrental/internal/auth"
	"github.com/driveloop/carrental/internal/db"
	"github.com/driveloop/carrental/internal/models"
	"github.com/driveloop/carrental/internal/users"
)

const maxImageBytes = 10 << 20

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	authService *auth.Service
	users       db.UserCollection
	profile     *users.Service
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, userCollection db.UserCollection, profile *users.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       userCollection,
		profile:     profile,
	}
}

// Register handles user registration. New accounts start as renters.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.RegisterRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.authService.ValidatePassword(req.Password); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	if _, err := h.users.FindUserByEmail(r.Context(), req.Email); err == nil {
		respondJSON(w, http.StatusConflict, Response{Success: false, Message: "user already exists"})
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleRenter,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	id, err := h.users.InsertUser(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	user.ID = id

	token, err := h.authService.GenerateToken(&user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, models.AuthResponse{Token: token, User: user})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "invalid credentials"})
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, models.AuthResponse{Token: token, User: *user})
}

// Me returns the authenticated user's record
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	_, claims, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, user)
}

// UpdateImage replaces the authenticated user's profile image
func (h *AuthHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, claims, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	data, name, err := readImage(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.profile.UpdateImage(r.Context(), claims.UserID, data, name); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "image updated")
}

// readImage pulls the uploaded file out of a multipart form.
func readImage(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, "", errBadUpload(err)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", errBadUpload(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, "", errBadUpload(err)
	}
	return data, header.Filename, nil
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/comfyui-plus/backend/internal/logger"
	"github.com/comfyui-plus/backend/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
	Login(ctx context.Context, identifier, password string) (string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Register handles POST /auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload."})
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: registration rejected",
			"username", req.Username,
			"error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"username", user.Username,
		"user_id", user.ID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully.",
		"user": userResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	})
}

// Login handles POST /auth/login. The identifier is taken from the
// identifier, email or username field, whichever is present first.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload."})
		return
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		identifier = req.Username
	}

	tokenString, err := h.authService.Login(r.Context(), identifier, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login rejected",
			"identifier", identifier)
		writeError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed",
		"identifier", identifier)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful.",
		"token":   tokenString,
	})
}

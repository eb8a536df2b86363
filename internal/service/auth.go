package service

import (
	"context"
	"errors"
	"strings"

	"github.com/comfyui-plus/backend/internal/apperr"
	"github.com/comfyui-plus/backend/internal/logger"
	"github.com/comfyui-plus/backend/internal/model"
)

// Auth orchestrates user registration and login. It holds no mutable
// state and is safe for concurrent use.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	logger    *logger.Logger
}

// NewAuth creates an Auth service with its collaborators injected.
func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register validates input, checks uniqueness, hashes the password and
// persists a new user. The returned user never carries the password
// hash. Failures are reported as *apperr.Error values.
func (a *Auth) Register(ctx context.Context, username, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if len(username) < 3 {
		return model.User{}, apperr.NewValidation("Username must be at least 3 characters long.")
	}
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, apperr.NewValidation("Email must be a valid email address.")
	}
	if len(password) < 8 {
		return model.User{}, apperr.NewValidation("Password must be at least 8 characters long.")
	}

	exists, err := a.userStore.Exists(ctx, username, email)
	if err != nil {
		a.logger.Error("Auth service: failed to check user existence",
			"username", username,
			"error", err.Error())
		return model.User{}, apperr.NewInternal("Failed to register user. Please try again.", err)
	}
	if exists {
		a.logger.Info("Auth service: username or email already registered",
			"username", username)
		return model.User{}, apperr.NewConflict("Username or email already exists.")
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return model.User{}, apperr.NewInternal("Failed to register user. Please try again.", err)
	}

	user, err := a.userStore.Create(ctx, username, email, passwordHash)
	if err != nil {
		// Two concurrent registrations can both pass the existence
		// check; the store's uniqueness constraint decides the winner.
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: concurrent registration lost uniqueness race",
				"username", username)
			return model.User{}, apperr.NewConflict("Username or email already exists.")
		}
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, apperr.NewInternal("Failed to register user. Please try again.", err)
	}

	a.logger.Info("Auth service: user registered successfully",
		"username", username,
		"user_id", user.ID)

	return user.Safe(), nil
}

// Login resolves the identifier to a user, verifies the password and
// issues a session token. Unknown identifier and wrong password
// produce identical outcomes so callers cannot enumerate accounts.
func (a *Auth) Login(ctx context.Context, identifier, password string) (string, error) {
	if identifier == "" || password == "" {
		return "", apperr.NewValidation("Email/Username and password cannot be empty.")
	}

	user, err := a.resolveUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login attempt for unknown identifier",
				"identifier", identifier)
			return "", apperr.NewUnauthorized()
		}
		a.logger.Error("Auth service: failed to resolve login identifier",
			"identifier", identifier,
			"error", err.Error())
		return "", apperr.NewInternal("Login failed. Please try again.", err)
	}

	storedHash, err := a.userStore.GetPasswordHash(ctx, identifier)
	if err != nil || storedHash == "" {
		// The user resolved but has no usable hash: a data integrity
		// fault, not a credential failure.
		a.logger.Error("Auth service: user has no stored password hash",
			"identifier", identifier,
			"user_id", user.ID)
		return "", apperr.NewInternal("Login failed. Account issue.", err)
	}

	if !a.hasher.Verify(password, storedHash) {
		a.logger.Info("Auth service: failed login attempt",
			"username", user.Username)
		return "", apperr.NewUnauthorized()
	}

	tokenString, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue session token",
			"username", user.Username,
			"error", err.Error())
		return "", apperr.NewInternal("Login failed: Could not issue session token.", err)
	}

	a.logger.Info("Auth service: user logged in successfully",
		"username", user.Username)

	return tokenString, nil
}

// resolveUser finds the account behind a login identifier. Identifiers
// containing '@' are tried as email first; username lookup is the
// universal fallback.
func (a *Auth) resolveUser(ctx context.Context, identifier string) (model.User, error) {
	if strings.Contains(identifier, "@") {
		user, err := a.userStore.GetByEmail(ctx, identifier)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
	}

	return a.userStore.GetByUsername(ctx, identifier)
}

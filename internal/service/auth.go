package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// minPasswordLength is the minimum accepted password length at
// registration time.
const minPasswordLength = 8

// Auth handles user registration and login. It is the only service
// that touches the credential store; regular CRUD never does.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger.WithComponent("auth"),
	}
}

// Register creates a user with a salted hash of the password and
// returns a fresh access token. The plaintext is never persisted or
// logged.
func (a *Auth) Register(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("starting user registration", "email", email)

	if email == "" || password == "" {
		return "", model.NewInvalidInput("email and password are required")
	}
	if len(password) < minPasswordLength {
		return "", model.NewInvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("registration rejected, email already taken", "email", email)
		return "", model.NewConflict("user already exists")
	}
	if !model.IsKind(err, model.KindNotFound) {
		a.logger.Error("failed to check existing user", "email", email, "error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("failed to hash password", "email", email, "error", err.Error())
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// A concurrent registration can still hit the unique index.
		if model.IsKind(err, model.KindConflict) {
			return "", model.NewConflict("user already exists")
		}
		a.logger.Error("failed to create user", "email", email, "error", err.Error())
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenManager.Issue(user.ID, user.Email)
	if err != nil {
		a.logger.Error("failed to issue token", "user_id", user.ID, "error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	return token, nil
}

// Login verifies credentials and returns a fresh access token. The
// failure is identical for an unknown email and a wrong password so
// callers cannot enumerate accounts.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("starting login", "email", email)

	if email == "" || password == "" {
		return "", model.NewInvalidInput("email and password are required")
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if model.IsKind(err, model.KindNotFound) {
			return "", model.NewUnauthenticated("invalid credentials")
		}
		a.logger.Error("failed to get user by email", "email", email, "error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", model.NewUnauthenticated("invalid credentials")
	}

	token, err := a.tokenManager.Issue(user.ID, user.Email)
	if err != nil {
		a.logger.Error("failed to issue token", "user_id", user.ID, "error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)

	return token, nil
}

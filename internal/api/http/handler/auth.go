package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// AuthService defines registration and login operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Auth handles the public authentication endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a fresh token.
func (h *Auth) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	token, err := h.service.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

// Login verifies credentials and returns a fresh token.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	token, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// claimsKey is the Locals key the verified claims are stored under.
const claimsKey = "claims"

// TokenParser verifies access tokens and returns their claims.
type TokenParser interface {
	Parse(token string) (*model.Claims, error)
}

// Authenticate rejects requests without a valid bearer token before
// any protected handler runs. A missing credential is 401; a present
// but invalid or expired one is 403.
type Authenticate struct {
	parser TokenParser
	logger *logger.Logger
}

// NewAuthenticate creates the authorization gate middleware.
func NewAuthenticate(parser TokenParser, logger *logger.Logger) *Authenticate {
	return &Authenticate{parser: parser, logger: logger}
}

// Handle extracts the bearer token from the Authorization header,
// verifies it and stores the claims in the request context.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization token required"})
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization token required"})
	}

	claims, err := m.parser.Parse(tokenString)
	if err != nil {
		m.logger.Debug("rejected token", "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals(claimsKey, claims)

	return c.Next()
}

// ClaimsFromCtx returns the verified claims attached by Authenticate.
func ClaimsFromCtx(c *fiber.Ctx) (*model.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*model.Claims)
	return claims, ok
}

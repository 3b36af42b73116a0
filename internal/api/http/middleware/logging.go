package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/logger"
)

// Logging logs every HTTP request with its method, path, status and
// duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle runs the rest of the chain and logs the outcome.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	duration := time.Since(start)
	status := c.Response().StatusCode()

	l.logger.Info("http request completed",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", duration.Milliseconds())

	if err != nil {
		l.logger.Error("http request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error())
	}

	return err
}

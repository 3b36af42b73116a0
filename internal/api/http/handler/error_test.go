package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillagra/gradebook-server/internal/model"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid input", err: model.NewInvalidInput("bad"), status: fiber.StatusBadRequest},
		{name: "unauthenticated", err: model.NewUnauthenticated("who"), status: fiber.StatusUnauthorized},
		{name: "forbidden", err: model.NewForbidden("no"), status: fiber.StatusForbidden},
		{name: "not found", err: model.NewNotFound("gone"), status: fiber.StatusNotFound},
		{name: "conflict", err: model.NewConflict("dup"), status: fiber.StatusConflict},
		{name: "unavailable", err: model.NewUnavailable("down", nil), status: fiber.StatusServiceUnavailable},
		{name: "unclassified", err: errors.New("boom"), status: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return handleError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestHandleError_WrappedErrorKeepsKind(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		wrapped := errors.Join(errors.New("context"), model.NewNotFound("student not found"))
		return handleError(c, wrapped)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

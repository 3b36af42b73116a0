package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillagra/gradebook-server/internal/model"
	"github.com/mvillagra/gradebook-server/internal/testutil"
)

type fakeParser struct {
	claims *model.Claims
	err    error
}

func (f *fakeParser) Parse(token string) (*model.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newTestApp(parser TokenParser) *fiber.App {
	app := fiber.New()
	authenticate := NewAuthenticate(parser, testutil.MakeNoopLogger())
	app.Get("/protected", authenticate.Handle, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"email": claims.Email})
	})
	return app
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	app := newTestApp(&fakeParser{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	app := newTestApp(&fakeParser{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	app := newTestApp(&fakeParser{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-or-garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	claims := &model.Claims{UserID: uuid.New(), Email: "ana@example.com"}
	app := newTestApp(&fakeParser{claims: claims})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

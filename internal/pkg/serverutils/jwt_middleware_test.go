package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newGuardedApp(t *testing.T) (*fiber.App, *bool) {
	t.Helper()
	reached := false

	app := fiber.New()
	app.Get("/protected", JwtProtected(testSecret), func(c *fiber.Ctx) error {
		reached = true
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})

	return app, &reached
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJwtProtectedRejectsMissingToken(t *testing.T) {
	app, reached := newGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, *reached, "handler must not run without a session")
}

func TestJwtProtectedRejectsBadSignature(t *testing.T) {
	app, reached := newGuardedApp(t)

	token := signToken(t, "wrong-secret", jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, *reached)
}

func TestJwtProtectedRejectsExpiredToken(t *testing.T) {
	app, reached := newGuardedApp(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, *reached)
}

func TestJwtProtectedPassesValidTokenAndSetsUserId(t *testing.T) {
	app, reached := newGuardedApp(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "deadbeef-user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, *reached)
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitByIP(t *testing.T) {
	m := NewRateLimitMiddleware(ratelimit.NewMemoryRateLimiter())
	app := fiber.New()
	app.Get("/", m.LimitByIP(ratelimit.Rate{Requests: 2, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	send := func(ip string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").StatusCode)
	second := send("10.0.0.1")
	assert.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "0", second.Header.Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1").StatusCode)

	assert.Equal(t, http.StatusOK, send("10.0.0.2").StatusCode)
}

func TestAuthAdmin(t *testing.T) {
	cfg := &infrastructures.AppConfig{AdminAPIKey: "admin_key_for_tests", AdminRateLimit: 10}
	m := NewAdminKeyMiddleware(cfg, ratelimit.NewMemoryRateLimiter())

	app := fiber.New()
	app.Get("/", m.AuthAdmin, m.LimitAdmin, func(c *fiber.Ctx) error {
		return c.SendString(GetAdminIdentifier(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Admin-Key", "admin_key_for_tests")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

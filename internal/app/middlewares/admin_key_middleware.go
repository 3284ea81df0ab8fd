package middlewares

import (
	"fmt"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/apikey"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

const adminIdentifierLocal = "admin_identifier"

// AdminKeyMiddleware guards the back-office routes with the shared admin key
// and a per-IP rate limit.
type AdminKeyMiddleware struct {
	adminKey    string
	rateLimiter ratelimit.RateLimiter
	limit       ratelimit.Rate
}

func NewAdminKeyMiddleware(cfg *infrastructures.AppConfig, rateLimiter ratelimit.RateLimiter) *AdminKeyMiddleware {
	return &AdminKeyMiddleware{
		adminKey:    cfg.AdminAPIKey,
		rateLimiter: rateLimiter,
		limit:       ratelimit.PerMinute(cfg.AdminRateLimit),
	}
}

func (m *AdminKeyMiddleware) AuthAdmin(c *fiber.Ctx) error {
	key := c.Get("X-Admin-Key")
	if !apikey.Matches(key, m.adminKey) {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Invalid admin key"))
	}

	// only the masked form is ever stored
	c.Locals(adminIdentifierLocal, apikey.Mask(key))

	return c.Next()
}

func (m *AdminKeyMiddleware) LimitAdmin(c *fiber.Ctx) error {
	allowed, info := m.rateLimiter.Allow("admin:"+getIPAddress(c), m.limit)

	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

	if !allowed {
		return pkg.ErrorResponse(c, errors.NewTooManyRequestsError("Rate limit exceeded. Try again in a minute.", info.Limit, info.Reset.Unix()))
	}

	return c.Next()
}

// GetAdminIdentifier returns the masked admin key stored by AuthAdmin.
func GetAdminIdentifier(c *fiber.Ctx) string {
	identifier, _ := c.Locals(adminIdentifierLocal).(string)
	if identifier == "" {
		return "masked"
	}
	return identifier
}

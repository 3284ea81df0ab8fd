package injector

import (
	"github.com/caceasy/caceasy-core/internal/app/deliveries"
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

const rateLimitKeyPrefix = "caceasy"

// Application holds every handler the HTTP server mounts.
type Application struct {
	Config              *infrastructures.AppConfig
	HealthHandler       *deliveries.HealthHandler
	AuthHandler         *deliveries.AuthHandler
	ScanHandler         *deliveries.ScanHandler
	UserHandler         *deliveries.UserHandler
	DealerHandler       *deliveries.DealerHandler
	CouponHandler       *deliveries.CouponHandler
	AdminHandler        *deliveries.AdminHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	router.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.PublicAPILimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AuthHandler.RegisterRoutes(router)
	app.ScanHandler.RegisterRoutes(router)
	app.UserHandler.RegisterRoutes(router)
	app.DealerHandler.RegisterRoutes(router)
	app.CouponHandler.RegisterRoutes(router)
	app.AdminHandler.RegisterRoutes(router)
}

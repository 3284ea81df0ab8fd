//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/caceasy/caceasy-core/internal/app/deliveries"
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/google/wire"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewAppConfig,
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewMetrics,
	infrastructures.NewTokenService,
	wire.Value(rateLimitKeyPrefix),
	ratelimit.NewRedisRateLimiter,
	wire.Bind(new(ratelimit.RateLimiter), new(*ratelimit.RedisRateLimiter)),
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewUserService,
	services.NewDealerService,
	services.NewAuditService,
	services.NewCreditingPolicy,
	services.NewRedemptionService,
	services.NewWalletService,
	services.NewPayoutService,
	services.NewCouponService,
	services.NewAuthService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewAdminKeyMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuthHandler,
	deliveries.NewScanHandler,
	deliveries.NewUserHandler,
	deliveries.NewDealerHandler,
	deliveries.NewCouponHandler,
	deliveries.NewAdminHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}

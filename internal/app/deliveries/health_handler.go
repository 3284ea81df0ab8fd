package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

type HealthHandler struct {
	cfg *infrastructures.AppConfig
}

func NewHealthHandler(cfg *infrastructures.AppConfig) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.GetHealth)
	router.Get("/version", h.GetVersion)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, fiber.Map{"status": "ok"})
}

func (h *HealthHandler) GetVersion(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, fiber.Map{"version": version, "env": h.cfg.AppEnv})
}

package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService         *services.AuthService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewAuthHandler(authService *services.AuthService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimitMiddleware: rateLimitMiddleware}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authGroup := router.Group("/auth", h.rateLimitMiddleware.LimitByIP(ratelimit.AuthLimit))

	authGroup.Post("/otp", h.RequestOTP)
	authGroup.Post("/verify", h.VerifyOTP)
}

func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req models.OtpRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.authService.RequestOTP(c.UserContext(), &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.AcceptedResponse(c, fiber.Map{"message": "OTP sent"})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.OtpVerifyRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response, err := h.authService.VerifyOTP(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, response)
}

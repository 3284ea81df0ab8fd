package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/gofiber/fiber/v2"
)

type CouponHandler struct {
	couponService      *services.CouponService
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewCouponHandler(couponService *services.CouponService, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *CouponHandler {
	return &CouponHandler{couponService: couponService, adminKeyMiddleware: adminKeyMiddleware}
}

func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponGroup := router.Group("/coupons")

	couponGroup.Post("/generate", h.adminKeyMiddleware.AuthAdmin, h.adminKeyMiddleware.LimitAdmin, h.GenerateCoupons)
	couponGroup.Get("/:token", h.GetCoupon)
}

func (h *CouponHandler) GenerateCoupons(c *fiber.Ctx) error {
	var req models.CouponGenerateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response, err := h.couponService.GenerateCoupons(c.UserContext(), middlewares.GetAdminIdentifier(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, response)
}

func (h *CouponHandler) GetCoupon(c *fiber.Ctx) error {
	coupon, err := h.couponService.GetCoupon(c.UserContext(), c.Params("token"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, coupon)
}

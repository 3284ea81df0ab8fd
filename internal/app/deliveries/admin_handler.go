package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler is the back-office surface. Every route requires X-Admin-Key.
type AdminHandler struct {
	payoutService      *services.PayoutService
	couponService      *services.CouponService
	auditService       *services.AuditService
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewAdminHandler(payoutService *services.PayoutService, couponService *services.CouponService, auditService *services.AuditService, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *AdminHandler {
	return &AdminHandler{
		payoutService:      payoutService,
		couponService:      couponService,
		auditService:       auditService,
		adminKeyMiddleware: adminKeyMiddleware,
	}
}

func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminGroup := router.Group("/admin", h.adminKeyMiddleware.AuthAdmin, h.adminKeyMiddleware.LimitAdmin)

	adminGroup.Post("/batch", h.CreateBatch)
	adminGroup.Get("/batches", h.ListBatches)

	adminGroup.Get("/payouts", h.ListPayouts)
	adminGroup.Post("/payouts/:id/approve", h.ApprovePayout)
	adminGroup.Post("/payouts/:id/reject", h.RejectPayout)

	adminGroup.Get("/dealer-payouts", h.ListDealerPayouts)
	adminGroup.Post("/dealer-payouts/:id/approve", h.ApproveDealerPayout)

	adminGroup.Get("/audit", h.ListAudit)
}

func (h *AdminHandler) CreateBatch(c *fiber.Ctx) error {
	var req models.BatchCreateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	batch, err := h.couponService.CreateBatch(c.UserContext(), middlewares.GetAdminIdentifier(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, batch)
}

func (h *AdminHandler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.couponService.ListBatches(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, batches)
}

func (h *AdminHandler) ListPayouts(c *fiber.Ctx) error {
	var status *models.PayoutStatus
	if raw := c.Query("status"); raw != "" {
		s := models.PayoutStatus(raw)
		switch s {
		case models.PayoutStatusPending, models.PayoutStatusApproved, models.PayoutStatusRejected:
			status = &s
		default:
			return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid status filter"))
		}
	}

	payouts, err := h.payoutService.ListPayouts(c.UserContext(), status, nil)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, payouts)
}

func (h *AdminHandler) ListDealerPayouts(c *fiber.Ctx) error {
	dealer := models.PartyTypeDealer
	payouts, err := h.payoutService.ListPayouts(c.UserContext(), nil, &dealer)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, payouts)
}

func (h *AdminHandler) ApprovePayout(c *fiber.Ctx) error {
	payoutID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.PayoutApproveRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	payout, err := h.payoutService.Approve(c.UserContext(), payoutID, middlewares.GetAdminIdentifier(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, payout)
}

func (h *AdminHandler) RejectPayout(c *fiber.Ctx) error {
	payoutID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.PayoutRejectRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	payout, err := h.payoutService.Reject(c.UserContext(), payoutID, middlewares.GetAdminIdentifier(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, payout)
}

func (h *AdminHandler) ApproveDealerPayout(c *fiber.Ctx) error {
	payoutID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.PayoutApproveRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	payout, err := h.payoutService.ApproveDealerPayout(c.UserContext(), payoutID, middlewares.GetAdminIdentifier(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, payout)
}

func (h *AdminHandler) ListAudit(c *fiber.Ctx) error {
	entries, err := h.auditService.List(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, entries)
}

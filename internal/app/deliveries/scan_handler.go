package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ScanHandler exposes the two redemption paths: a mason scanning directly and
// a dealer scanning on a mason's behalf.
type ScanHandler struct {
	redemptionService   *services.RedemptionService
	walletService       *services.WalletService
	validator           *infrastructures.Validator
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewScanHandler(redemptionService *services.RedemptionService, walletService *services.WalletService, validator *infrastructures.Validator, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *ScanHandler {
	return &ScanHandler{
		redemptionService:   redemptionService,
		walletService:       walletService,
		validator:           validator,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *ScanHandler) RegisterRoutes(router fiber.Router) {
	limit := h.rateLimitMiddleware.LimitByPrincipal(ratelimit.ScanLimit)

	router.Post("/scan", h.authMiddleware.AuthBearer, h.authMiddleware.RequireMason, limit, h.Scan)
	router.Post("/dealer/scan-proxy", h.authMiddleware.AuthBearer, h.authMiddleware.RequireDealer, limit, h.ScanProxy)
}

func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	principal := middlewares.GetPrincipal(c)

	var req models.ScanRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	gps, err := parseGPS(req.GPS)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.redemptionService.Redeem(c.UserContext(), req.Token, models.MasonActor(principal.ID), models.ScanContext{
		DeviceID:   req.DeviceID,
		GPS:        gps,
		ClientTime: req.ClientTime,
	})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	// read after commit, the redemption already stands if this fails
	balance, err := h.walletService.Balance(c.UserContext(), principal.ID, models.PartyTypeUser)
	if err != nil {
		logrus.WithError(err).WithField("user_id", principal.ID).Warn("failed to read balance after redemption")
	}

	return pkg.SuccessResponse(c, models.ScanResponse{
		Success:         true,
		PointsCredited:  result.PointsCredited,
		NewWalletPoints: balance,
	})
}

func (h *ScanHandler) ScanProxy(c *fiber.Ctx) error {
	principal := middlewares.GetPrincipal(c)

	var req models.ProxyScanRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	gps, err := parseGPS(req.GPS)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	hasMason := req.MasonPhone != nil && *req.MasonPhone != ""
	if hasMason == req.CreditToDealer {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Exactly one of mason_phone or credit_to_dealer is required"))
	}

	actor := models.DealerActor(principal.ID, req.MasonPhone, req.CashPaid, req.CreditToDealer)
	result, err := h.redemptionService.Redeem(c.UserContext(), req.Token, actor, models.ScanContext{
		DeviceID:   req.DeviceID,
		GPS:        gps,
		ClientTime: req.ClientTime,
	})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, models.ProxyScanResponse{
		Success: true,
		Points:  result.PointsCredited,
	})
}

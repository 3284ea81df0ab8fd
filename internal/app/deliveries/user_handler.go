package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	walletService  *services.WalletService
	userService    *services.UserService
	validator      *infrastructures.Validator
	authMiddleware *middlewares.AuthMiddleware
}

func NewUserHandler(walletService *services.WalletService, userService *services.UserService, validator *infrastructures.Validator, authMiddleware *middlewares.AuthMiddleware) *UserHandler {
	return &UserHandler{
		walletService:  walletService,
		userService:    userService,
		validator:      validator,
		authMiddleware: authMiddleware,
	}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userGroup := router.Group("/users")

	userGroup.Get("/:id/wallet", h.authMiddleware.AuthBearer, h.authMiddleware.RequireMason, h.authMiddleware.RequireSelf, h.GetWallet)
	userGroup.Post("/:id/redeem", h.authMiddleware.AuthBearer, h.authMiddleware.RequireMason, h.authMiddleware.RequireSelf, h.RequestPayout)
	userGroup.Get("/:id/scans", h.authMiddleware.AuthBearer, h.authMiddleware.RequireMason, h.authMiddleware.RequireSelf, h.GetScans)
}

func (h *UserHandler) GetWallet(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	wallet, err := h.walletService.UserWallet(c.UserContext(), userID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, wallet)
}

func (h *UserHandler) RequestPayout(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.WithdrawalRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	payout, err := h.walletService.RequestWithdrawal(c.UserContext(), userID, models.PartyTypeUser, req.Amount, models.PayoutDetails{
		Method:  &req.Method,
		Account: &req.Account,
	})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.AcceptedResponse(c, models.WithdrawalResponse{
		PayoutID: payout.ID,
		Status:   payout.Status,
	})
}

func (h *UserHandler) GetScans(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	scans, err := h.userService.RecentScans(c.UserContext(), userID, c.QueryInt("limit", 50))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, scans)
}

package deliveries

import (
	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/gofiber/fiber/v2"
)

type DealerHandler struct {
	dealerService  *services.DealerService
	walletService  *services.WalletService
	validator      *infrastructures.Validator
	authMiddleware *middlewares.AuthMiddleware
}

func NewDealerHandler(dealerService *services.DealerService, walletService *services.WalletService, validator *infrastructures.Validator, authMiddleware *middlewares.AuthMiddleware) *DealerHandler {
	return &DealerHandler{
		dealerService:  dealerService,
		walletService:  walletService,
		validator:      validator,
		authMiddleware: authMiddleware,
	}
}

func (h *DealerHandler) RegisterRoutes(router fiber.Router) {
	dealerGroup := router.Group("/dealer")

	dealerGroup.Post("/register", h.Register)
	dealerGroup.Get("/:id/wallet", h.authMiddleware.AuthBearer, h.authMiddleware.RequireDealer, h.authMiddleware.RequireSelf, h.GetWallet)
	dealerGroup.Post("/:id/reimburse", h.authMiddleware.AuthBearer, h.authMiddleware.RequireDealer, h.authMiddleware.RequireSelf, h.Reimburse)
}

func (h *DealerHandler) Register(c *fiber.Ctx) error {
	var req models.DealerRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	dealer, err := h.dealerService.Register(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, dealer)
}

func (h *DealerHandler) GetWallet(c *fiber.Ctx) error {
	dealerID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	wallet, err := h.walletService.DealerWallet(c.UserContext(), dealerID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, wallet)
}

func (h *DealerHandler) Reimburse(c *fiber.Ctx) error {
	dealerID, err := parseUUIDParam(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.ReimburseRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	payout, err := h.walletService.RequestWithdrawal(c.UserContext(), dealerID, models.PartyTypeDealer, req.Amount, models.PayoutDetails{
		Note: req.Note,
	})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, models.ReimburseResponse{
		Success:  true,
		PayoutID: payout.ID,
	})
}

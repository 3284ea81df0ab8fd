package middlewares

import (
	"strings"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/gofiber/fiber/v2"
)

const principalLocal = "principal"

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// AuthBearer validates the bearer token and stores the caller in locals.
func (m *AuthMiddleware) AuthBearer(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("No token provided"))
	}

	principal, err := m.authService.Authenticate(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Locals(principalLocal, principal)

	return c.Next()
}

func (m *AuthMiddleware) RequireMason(c *fiber.Ctx) error {
	return requireRole(c, models.RoleMason, "Access denied. Masons only.")
}

func (m *AuthMiddleware) RequireDealer(c *fiber.Ctx) error {
	return requireRole(c, models.RoleDealer, "Access denied. Dealers only.")
}

// RequireSelf only lets callers reach routes whose :id is their own.
func (m *AuthMiddleware) RequireSelf(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("User is not authenticated"))
	}
	if c.Params("id") != principal.ID.String() {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("You can only access your own wallet"))
	}
	return c.Next()
}

func requireRole(c *fiber.Ctx, role models.Role, message string) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("User is not authenticated"))
	}
	if principal.Role != role {
		return pkg.ErrorResponse(c, errors.NewForbiddenError(message))
	}
	return c.Next()
}

// GetPrincipal returns the authenticated caller or nil.
func GetPrincipal(c *fiber.Ctx) *models.Principal {
	principal, _ := c.Locals(principalLocal).(*models.Principal)
	return principal
}

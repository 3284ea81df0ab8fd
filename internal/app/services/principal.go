package services

import (
	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/pkg/authtoken"
	"github.com/google/uuid"
)

func principalFromClaims(claims *authtoken.Claims) (*models.Principal, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid token subject")
	}

	role := models.Role(claims.Role)
	switch role {
	case models.RoleMason, models.RoleDealer:
	case "", "user":
		role = models.RoleMason
	default:
		return nil, errors.NewUnauthorizedError("Invalid token role")
	}

	return &models.Principal{ID: id, Phone: claims.Phone, Role: role}, nil
}

package services

import (
	"context"
	stdErrors "errors"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DealerService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewDealerService(db *gorm.DB, validator *infrastructures.Validator) *DealerService {
	return &DealerService{db: db, validator: validator}
}

func (s *DealerService) Register(ctx context.Context, req *models.DealerRegisterRequest) (*models.Dealer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var dealer *models.Dealer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Dealer{}).Where("phone = ?", req.Phone).Count(&count).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to register dealer")
		}
		if count > 0 {
			return errors.NewConflictError("Phone number already registered")
		}

		dealer = &models.Dealer{
			Name:  req.Name,
			Phone: req.Phone,
			GST:   req.GST,
		}
		if err := tx.Create(dealer).Error; err != nil {
			if stdErrors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.NewConflictError("Phone number already registered")
			}
			return errors.NewInternalServerError(err, "Failed to register dealer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"dealer_id": dealer.ID}).Info("dealer registered")
	return dealer, nil
}

func (s *DealerService) GetDealer(ctx context.Context, dealerID uuid.UUID) (*models.Dealer, error) {
	var dealer models.Dealer
	err := s.db.WithContext(ctx).Where("id = ?", dealerID).First(&dealer).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Dealer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get dealer")
	}
	return &dealer, nil
}

func (s *DealerService) FindByPhone(ctx context.Context, phone string) (*models.Dealer, error) {
	var dealer models.Dealer
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&dealer).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Dealer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get dealer")
	}
	return &dealer, nil
}

package services

import (
	"context"
	stdErrors "errors"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}
	return &user, nil
}

// FindOrCreateByPhone runs on the caller's transaction. A first-seen phone
// creates a mason with no verification step.
func (s *UserService) FindOrCreateByPhone(tx *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	err := tx.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewInternalServerError(err, "Failed to look up user")
	}

	created := &models.User{Phone: phone}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoNothing: true,
	}).Create(created)
	if res.Error != nil {
		return nil, errors.NewInternalServerError(res.Error, "Failed to create user")
	}
	if res.RowsAffected == 1 {
		logrus.WithFields(logrus.Fields{
			"user_id": created.ID,
			"phone":   phone,
		}).Info("mason created from phone")
		return created, nil
	}

	// lost a concurrent insert for the same phone
	var existing models.User
	if err := tx.Where("phone = ?", phone).First(&existing).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to look up user")
	}
	return &existing, nil
}

// RecentScans lists the newest successful scans credited to a mason.
func (s *UserService) RecentScans(ctx context.Context, userID uuid.UUID, limit int) ([]models.Scan, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var scans []models.Scan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND success = ?", userID, true).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&scans).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get scans")
	}
	return scans, nil
}

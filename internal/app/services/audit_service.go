package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// Log writes an admin_audit row on tx so the entry commits or rolls back with
// the change it describes.
func (s *AuditService) Log(tx *gorm.DB, adminIdentifier string, action models.AuditAction, payload interface{}) error {
	var payloadJSON *string
	if payload != nil {
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return errors.NewInternalServerError(fmt.Errorf("failed to marshal audit payload: %w", err), "Failed to write audit log")
		}
		strJSON := string(jsonBytes)
		payloadJSON = &strJSON
	}

	entry := &models.AdminAudit{
		AdminIdentifier: adminIdentifier,
		Action:          action,
		Payload:         payloadJSON,
	}

	if err := tx.Create(entry).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to write audit log")
	}

	return nil
}

func (s *AuditService) List(ctx context.Context, limit int) ([]models.AdminAudit, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var entries []models.AdminAudit
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit logs")
	}
	return entries, nil
}

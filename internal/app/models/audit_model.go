package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionPayoutApproved       AuditAction = "payout_approved"
	AuditActionPayoutRejected       AuditAction = "payout_rejected"
	AuditActionDealerPayoutApproved AuditAction = "dealer_payout_approved"
	AuditActionBatchCreated         AuditAction = "batch_created"
	AuditActionCouponsGenerated     AuditAction = "coupons_generated"
)

// AdminAudit records every admin mutation. Payload is stored as jsonb.
type AdminAudit struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	AdminIdentifier string      `json:"admin_identifier" gorm:"type:varchar(64);not null"`
	Action          AuditAction `json:"action" gorm:"type:varchar(50);not null"`
	Payload         *string     `json:"payload" gorm:"type:jsonb"`
	CreatedAt       time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}

func (AdminAudit) TableName() string {
	return "admin_audit"
}

func (a *AdminAudit) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scan is the audit record of a successful redemption. Failed attempts are not stored.
type Scan struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Token      string     `gorm:"type:varchar(128);index;not null" json:"token"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	DealerID   *uuid.UUID `gorm:"type:uuid;index" json:"dealer_id,omitempty"`
	DeviceID   *string    `json:"device_id,omitempty"`
	GPS        *string    `gorm:"column:gps;type:jsonb" json:"gps,omitempty"`
	ClientTime *time.Time `json:"client_time,omitempty"`
	Success    bool       `gorm:"not null" json:"success"`
	ScannedAt  time.Time  `gorm:"autoCreateTime" json:"scanned_at"`
}

func (s *Scan) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

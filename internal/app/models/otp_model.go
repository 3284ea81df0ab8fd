package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Otp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Phone     string    `gorm:"type:varchar(20);index;not null" json:"phone"`
	CodeHash  string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (o *Otp) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}

type OtpRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type OtpVerifyRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

type Role string

const (
	RoleMason  Role = "mason"
	RoleDealer Role = "dealer"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Phone string    `json:"phone"`
	Role  Role      `json:"role"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
}
